package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/planit/internal/notify"
	"gorm.io/gorm"
)

type Handler struct {
	logger *slog.Logger
	notify *notify.Service
	now    func() time.Time
}

func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		notify: notify.NewService(db, logger),
		now:    time.Now,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeNotificationPurge, h.HandleNotificationPurge)
}

// HandleNotificationPurge deletes read notifications older than the
// retention window.
func (h *Handler) HandleNotificationPurge(ctx context.Context, t *asynq.Task) error {
	var payload NotificationPurgePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	if payload.RetentionDays <= 0 {
		h.logger.Debug("notification purge disabled")
		return nil
	}

	cutoff := h.now().Add(-time.Duration(payload.RetentionDays) * 24 * time.Hour)
	if _, err := h.notify.Purge(ctx, cutoff); err != nil {
		return fmt.Errorf("purge notifications: %w", err)
	}
	return nil
}
