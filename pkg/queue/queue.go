package queue

import (
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/planit/pkg/config"
)

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
	}
}

func NewServer(cfg *config.RedisConfig, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 10
	}

	return asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
		},
	)
}

// NewScheduler builds a scheduler that enqueues periodic tasks in UTC.
func NewScheduler(cfg *config.RedisConfig, logger *slog.Logger) *asynq.Scheduler {
	return asynq.NewScheduler(redisOpt(cfg), &asynq.SchedulerOpts{
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger.Error("failed to enqueue periodic task", "error", err)
				return
			}
			logger.Debug("periodic task enqueued", "type", info.Type, "id", info.ID)
		},
	})
}
