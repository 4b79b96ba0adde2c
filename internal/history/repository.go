package history

import (
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

// Create stores a history record. Duplicate events for the same session are
// ignored, so redelivery is safe.
func (r *Repository) Create(record *InterviewHistory) error {
	var existing InterviewHistory

	err := r.DB.Where("session_id = ?", record.SessionID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.DB.Create(record).Error
}

// GetByUserID retrieves a user's history, most recent first.
func (r *Repository) GetByUserID(userID string) ([]InterviewHistory, error) {
	records := []InterviewHistory{}
	err := r.DB.Where("user_id = ?", userID).
		Order("ended_at DESC").
		Find(&records).Error
	return records, err
}

// GetBySessionID retrieves the record for one session.
func (r *Repository) GetBySessionID(sessionID string) (*InterviewHistory, error) {
	var record InterviewHistory
	if err := r.DB.Where("session_id = ?", sessionID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
