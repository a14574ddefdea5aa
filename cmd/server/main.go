// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unclebandit/totallook-bridge/internal/config"
	"github.com/unclebandit/totallook-bridge/internal/controller"
	"github.com/unclebandit/totallook-bridge/internal/handler"
	"github.com/unclebandit/totallook-bridge/internal/logger"
	"github.com/unclebandit/totallook-bridge/internal/queue"
	"github.com/unclebandit/totallook-bridge/internal/repository"
	"github.com/unclebandit/totallook-bridge/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.LogLevel)

	if cfg.Jotform.APIKey == "" || cfg.Jotform.FormID == "" {
		log.Warn("jotform not fully configured, client routes will answer 500",
			"api_key_set", cfg.Jotform.APIKey != "",
			"form_id_set", cfg.Jotform.FormID != "")
	}

	q, closeQueue, err := newQueue(cfg, log)
	if err != nil {
		log.Error("failed to set up event queue", "error", err)
		os.Exit(1)
	}
	defer closeQueue()

	clientService := &service.ClientService{
		Jotform:        cfg.Jotform,
		SubmissionRepo: repository.NewSubmissionRepository(cfg.Jotform),
		Queue:          q,
		EventsTopic:    cfg.EventsTopic,
		Logger:         log,
	}

	clientController := &controller.ClientController{
		ClientService: clientService,
		Logger:        log,
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.NewRouter(clientController, cfg.CORSAllowedOrigins, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("totallook-jotform-bridge listening",
			"addr", srv.Addr,
			"jotform_base_url", cfg.Jotform.BaseURL,
			"list_mode", cfg.Jotform.ListMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
}

// newQueue picks RabbitMQ when AMQP_URL is set. The in-memory queue gets an
// audit subscriber here; with RabbitMQ that job belongs to cmd/worker.
func newQueue(cfg *config.Config, log *slog.Logger) (queue.Queue, func(), error) {
	if cfg.AMQPURL == "" {
		q := queue.NewInMemoryQueue(log)
		if err := queue.StartClientEventLogger(q, cfg.EventsTopic, log); err != nil {
			return nil, nil, err
		}
		return q, func() {}, nil
	}

	q, err := queue.DialAMQP(cfg.AMQPURL, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("publishing client events to rabbitmq", "topic", cfg.EventsTopic)

	return q, func() {
		if err := q.Close(); err != nil {
			log.Warn("failed to close rabbitmq connection", "error", err)
		}
	}, nil
}
