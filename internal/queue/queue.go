package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/unclebandit/totallook-bridge/internal/model"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers to subscribers of the same process, with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	logger   *slog.Logger

	// RetryDelay is multiplied by the attempt number between retries
	RetryDelay time.Duration
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(logger *slog.Logger) *InMemoryQueue {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		logger:     logger,
		RetryDelay: 500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Topic      string
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{
			Topic:      topic,
			Payload:    payload,
			MaxRetries: 3,
		}
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for {
		err := handler(job.Payload)
		if err == nil {
			return
		}

		job.RetryCount++
		if job.RetryCount > job.MaxRetries {
			q.logger.Error("job permanently failed",
				"topic", job.Topic, "attempts", job.RetryCount, "error", err)
			return
		}

		q.logger.Warn("job failed, retrying",
			"topic", job.Topic, "attempt", job.RetryCount, "max_retries", job.MaxRetries, "error", err)
		time.Sleep(time.Duration(job.RetryCount) * q.RetryDelay)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// DecodeClientEvent accepts an event as published in-process or as the JSON
// body of a broker delivery.
func DecodeClientEvent(payload any) (model.ClientEvent, error) {
	switch p := payload.(type) {
	case model.ClientEvent:
		return p, nil
	case *model.ClientEvent:
		if p == nil {
			return model.ClientEvent{}, fmt.Errorf("nil client event")
		}
		return *p, nil
	case []byte:
		var ev model.ClientEvent
		if err := json.Unmarshal(p, &ev); err != nil {
			return model.ClientEvent{}, fmt.Errorf("decode client event: %w", err)
		}
		return ev, nil
	default:
		return model.ClientEvent{}, fmt.Errorf("unexpected payload type %T", payload)
	}
}

// StartClientEventLogger writes every client event on topic to logger.
// Undecodable payloads are logged and dropped, not retried.
func StartClientEventLogger(q Queue, topic string, logger *slog.Logger) error {
	return q.Subscribe(topic, func(payload any) error {
		ev, err := DecodeClientEvent(payload)
		if err != nil {
			logger.Warn("dropping client event", "topic", topic, "error", err)
			return nil
		}

		logger.Info("client event",
			"event_id", ev.ID,
			"type", ev.Type,
			"client_id", ev.ClientID,
			"occurred_at", ev.OccurredAt)
		return nil
	})
}
