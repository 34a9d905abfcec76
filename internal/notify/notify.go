// Package notify carries the operational notifications raised by entity
// workflows. Messages are enqueued as background tasks and drained by
// the worker binary, so a slow or absent consumer never stalls a
// request.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hibiken/asynq"
)

// TaskTypePush is the queue task carrying one notification message.
const TaskTypePush = "notify:push"

// Publisher is the send side of the notification stream.
type Publisher interface {
	Publish(ctx context.Context, message string) error
}

// PushPayload is the task body.
type PushPayload struct {
	Message string `json:"message"`
}

// NewPushTask wraps a message into a queue task.
func NewPushTask(message string) (*asynq.Task, error) {
	payload, err := json.Marshal(PushPayload{Message: message})
	if err != nil {
		return nil, fmt.Errorf("notify: marshal payload: %w", err)
	}
	return asynq.NewTask(TaskTypePush, payload), nil
}

// QueuePublisher enqueues notifications on the shared Redis queue.
type QueuePublisher struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewQueuePublisher builds the publisher against the given Redis
// connection options.
func NewQueuePublisher(redisOpt asynq.RedisClientOpt, logger *slog.Logger) *QueuePublisher {
	return &QueuePublisher{client: asynq.NewClient(redisOpt), logger: logger}
}

// Publish enqueues one message. Failures are logged and returned;
// callers on the request path treat them as non-fatal.
func (p *QueuePublisher) Publish(ctx context.Context, message string) error {
	task, err := NewPushTask(message)
	if err != nil {
		return err
	}
	if _, err := p.client.EnqueueContext(ctx, task); err != nil {
		p.logger.Warn("notification enqueue failed", "error", err)
		return fmt.Errorf("notify: enqueue: %w", err)
	}
	return nil
}

// Close releases the queue connection.
func (p *QueuePublisher) Close() error { return p.client.Close() }

// HandlePushTask consumes push tasks on the worker side. The sink is the
// worker's structured log.
func HandlePushTask(logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload PushPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("notify: unmarshal payload: %w", err)
		}
		logger.Info("notification", "message", payload.Message)
		return nil
	}
}

// MemoryPublisher collects messages in memory for tests.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []string
}

// Publish records the message.
func (p *MemoryPublisher) Publish(ctx context.Context, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	return nil
}

// Messages returns a copy of everything published so far.
func (p *MemoryPublisher) Messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	copy(out, p.messages)
	return out
}
