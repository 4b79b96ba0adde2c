package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"peerprep/interview/internal/history"
	"peerprep/interview/internal/middleware"
	"peerprep/interview/internal/models"
	"peerprep/interview/internal/utils"
)

// HistoryHandler serves the relational record of finished sessions.
type HistoryHandler struct {
	repo   *history.Repository
	logger *zap.Logger
}

func NewHistoryHandler(repo *history.Repository, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{repo: repo, logger: logger}
}

// ListHandler returns the caller's finished interviews, newest first.
func (h *HistoryHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.GetByUserID(middleware.UserID(r))
	if err != nil {
		h.logger.Error("failed to fetch history", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to fetch interview history",
		})
		return
	}
	utils.JSON(w, http.StatusOK, records)
}
