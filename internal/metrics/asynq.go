package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	taskOutcomeOK      = "ok"
	taskOutcomeFailed  = "failed"
	taskOutcomeSkipped = "skipped"
)

var (
	taskTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "tasks_total",
			Help:      "后台任务处理总数，按结果区分，skipped 表示不再重试。",
		},
		[]string{"task_type", "outcome"},
	)

	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "task_duration_seconds",
			Help:      "后台任务耗时分布（秒）。",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"task_type"},
	)
)

// AsynqMetricsMiddleware 按任务类型与结果记录 worker 指标。
func AsynqMetricsMiddleware() asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
			start := time.Now()
			err := next.ProcessTask(ctx, task)
			taskDuration.WithLabelValues(task.Type()).Observe(time.Since(start).Seconds())
			taskTotal.WithLabelValues(task.Type(), taskOutcome(err)).Inc()
			return err
		})
	}
}

func taskOutcome(err error) string {
	switch {
	case err == nil:
		return taskOutcomeOK
	case errors.Is(err, asynq.SkipRetry):
		return taskOutcomeSkipped
	default:
		return taskOutcomeFailed
	}
}
