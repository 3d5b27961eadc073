package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/clinicware/admin-api/internal/model"
)

// Sender delivers clinic emails. The SMTP implementation is the only real
// one; tests substitute a recorder.
type Sender interface {
	SendAppointmentReminder(to string, appt *model.Appointment) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) SendAppointmentReminder(to string, appt *model.Appointment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Appointment reminder for %s", appt.Date))
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nThis is a reminder of your %s appointment with %s on %s at %s.\n\nIf you need to reschedule, please contact the clinic.\n",
		appt.PatientName, appt.Type, appt.DentistName, appt.Date, appt.StartTime,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
