// cmd/worker/main.go consumes client events from RabbitMQ and writes them to
// the log as an audit trail.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/unclebandit/totallook-bridge/internal/config"
	"github.com/unclebandit/totallook-bridge/internal/logger"
	"github.com/unclebandit/totallook-bridge/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.LogLevel)

	if cfg.AMQPURL == "" {
		log.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	q, err := queue.DialAMQP(cfg.AMQPURL, log)
	if err != nil {
		log.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer q.Close()

	if err := queue.StartClientEventLogger(q, cfg.EventsTopic, log); err != nil {
		log.Error("failed to start consumer", "topic", cfg.EventsTopic, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("worker running, waiting for client events", "topic", cfg.EventsTopic)

	select {
	case <-ctx.Done():
		log.Info("worker stopping")
	case amqpErr := <-q.NotifyClose():
		log.Error("rabbitmq connection closed", "error", amqpErr)
	}
}
