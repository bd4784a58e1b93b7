package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeNotificationPurge = "notifications:purge"
)

// NotificationPurgePayload carries the retention window. A zero window
// turns the task into a no-op.
type NotificationPurgePayload struct {
	RetentionDays int `json:"retention_days"`
}

func NewNotificationPurgeTask(retentionDays int) (*asynq.Task, error) {
	data, err := json.Marshal(NotificationPurgePayload{RetentionDays: retentionDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationPurge, data, asynq.MaxRetry(3), asynq.Timeout(5*time.Minute)), nil
}
