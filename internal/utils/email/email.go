package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/serenity-wellness/booking-service/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBookingConfirmation confirms a freshly booked appointment
func (s *Sender) SendBookingConfirmation(to, username, appointmentType string, timestamp int64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Appointment Confirmation"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your %s appointment is confirmed for %s.\n"+
			"You can review your appointments on your profile page.\n"+
			"\nBest regards,\nSerenity Wellness",
		username, appointmentType, time.Unix(timestamp, 0).UTC().Format("2006-01-02 15:04"),
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendAppointmentReminder reminds a user of an upcoming appointment
func (s *Sender) SendAppointmentReminder(to, username, appointmentType string, timestamp int64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Upcoming Appointment Reminder"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"This is a reminder that your %s appointment is scheduled for %s.\n"+
			"If you need to make changes, please contact us.\n"+
			"\nBest regards,\nSerenity Wellness",
		username, appointmentType, time.Unix(timestamp, 0).UTC().Format("2006-01-02 15:04"),
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
