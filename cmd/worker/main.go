package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/clinicware/admin-api/internal/config"
	"github.com/clinicware/admin-api/internal/email"
	"github.com/clinicware/admin-api/internal/repository/postgres"
	"github.com/clinicware/admin-api/pkg/logger"
	"github.com/clinicware/admin-api/pkg/messaging/redis"
	"github.com/clinicware/admin-api/pkg/metrics"
	"github.com/clinicware/admin-api/pkg/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load worker config")
	}

	zlog.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	log := logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Output: os.Stdout})

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewBroker(redis.Config{
		URL:        cfg.RedisURL,
		MaxRetries: cfg.RetryAttempts,
	}, &zlog.Logger)
	if err != nil {
		log.Fatal(err, "failed to create redis broker")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)
	apptRepo := postgres.NewAppointmentRepository(db)
	patientRepo := postgres.NewPatientRepository(db)

	m := metrics.NewMetrics("clinicware", "worker")

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:       cfg.BatchSize,
		PollInterval:    cfg.PollInterval,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      cfg.RetryDelay,
		RetentionPeriod: cfg.RetentionPeriod,
	}, log, m)

	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	reminders := worker.NewReminderWorker(apptRepo, patientRepo, sender, worker.ReminderConfig{
		Interval:  cfg.ReminderInterval,
		Lookahead: cfg.ReminderLookahead,
	}, log, m)

	startHealthServer(cfg.HealthPort, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processor.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		reminders.Start(ctx)
	}()
	wg.Wait()
}

func startHealthServer(port int, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			log.Error(err, "health server failed")
		}
	}()
}
