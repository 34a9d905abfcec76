package notify

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// QueueDefault is the only queue the worker drains.
const QueueDefault = "default"

// Worker wraps the Asynq server that drains the notification queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// NewWorker constructs a Worker against the given Redis connection.
func NewWorker(redisOpt asynq.RedisClientOpt, logger *slog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypePush, HandlePushTask(logger))
	return &Worker{server: srv, mux: mux, logger: logger}
}

// Run processes tasks until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
