package worker

import (
	"context"
	"time"

	"github.com/clinicware/admin-api/internal/email"
	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/repository"
	"github.com/clinicware/admin-api/pkg/logger"
	"github.com/clinicware/admin-api/pkg/metrics"
)

type ReminderConfig struct {
	Interval  time.Duration
	Lookahead time.Duration
}

// ReminderWorker emails patients about upcoming appointments. Each run
// covers appointments whose date falls inside the lookahead window;
// cancelled appointments are skipped. Duplicate sends across runs are
// tolerated rather than tracked.
type ReminderWorker struct {
	apptRepo    repository.AppointmentRepository
	patientRepo repository.PatientRepository
	sender      email.Sender
	config      ReminderConfig
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewReminderWorker(
	apptRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	sender email.Sender,
	config ReminderConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) *ReminderWorker {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.Lookahead <= 0 {
		config.Lookahead = 24 * time.Hour
	}
	return &ReminderWorker{
		apptRepo:    apptRepo,
		patientRepo: patientRepo,
		sender:      sender,
		config:      config,
		logger:      log,
		metrics:     m,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.logger.Info("reminder worker started", map[string]interface{}{
		"interval":  w.config.Interval.String(),
		"lookahead": w.config.Lookahead.String(),
	})

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker shutting down")
			return
		case <-ticker.C:
			if err := w.run(ctx); err != nil {
				w.logger.Error(err, "reminder run failed")
			}
		}
	}
}

func (w *ReminderWorker) run(ctx context.Context) error {
	now := time.Now()
	start := now.Format("2006-01-02")
	end := now.Add(w.config.Lookahead).Format("2006-01-02")

	appointments, err := w.apptRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return err
	}

	for _, appt := range appointments {
		if appt.Status == model.AppointmentStatusCancelled {
			continue
		}

		patient, err := w.patientRepo.Get(ctx, appt.PatientID)
		if err != nil || patient.Email == "" {
			continue
		}

		if err := w.sender.SendAppointmentReminder(patient.Email, appt); err != nil {
			w.metrics.RemindersFailed.Inc()
			w.logger.Warn("failed to send reminder", map[string]interface{}{
				"appointment_id": appt.ID,
				"error":          err.Error(),
			})
			continue
		}
		w.metrics.RemindersSent.Inc()
	}
	return nil
}
