package mongo

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"peerprep/interview/internal/models"
	"peerprep/interview/internal/repositories"
)

// Repo wraps the interview sessions collection
type Repo struct{ col *mongo.Collection }

// NewSessionRepo connects to Mongo and ensures a unique index on session_id
func NewSessionRepo(c *Client) (*Repo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	colName := os.Getenv("INTERVIEWS_COLLECTION")
	if colName == "" {
		colName = "interview_sessions"
	}

	col := db.Collection(colName)
	r := &Repo{col: col}

	_, _ = r.col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	_, _ = r.col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})

	return r, nil
}

// Insert stores a new session
func (r *Repo) Insert(ctx context.Context, session *models.InterviewSession) error {
	_, err := r.col.InsertOne(ctx, session)
	return err
}

// Get retrieves a session by its id
func (r *Repo) Get(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Save replaces the stored session only when the version matches, then bumps
// the version. A missed match on an existing session is a conflict.
func (r *Repo) Save(ctx context.Context, session *models.InterviewSession) error {
	currentVersion := session.Version
	session.Version++
	session.UpdatedAt = time.Now().UTC()

	result, err := r.col.ReplaceOne(ctx, bson.M{
		"session_id": session.SessionID,
		"version":    currentVersion,
	}, session)
	if err != nil {
		session.Version = currentVersion
		return err
	}
	if result.MatchedCount == 0 {
		session.Version = currentVersion
		exists, countErr := r.col.CountDocuments(ctx, bson.M{"session_id": session.SessionID})
		if countErr != nil {
			return countErr
		}
		if exists == 0 {
			return repositories.ErrNotFound
		}
		return repositories.ErrConflict
	}
	return nil
}

// ListByUser retrieves all sessions belonging to a user, newest first
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]models.InterviewSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InterviewSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListInProgressBefore retrieves in-progress sessions last touched before the
// cutoff, used by the reaper
func (r *Repo) ListInProgressBefore(ctx context.Context, cutoff time.Time) ([]models.InterviewSession, error) {
	cur, err := r.col.Find(ctx, bson.M{
		"status":     models.StatusInProgress,
		"updated_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InterviewSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
