// Package reminder implements the cron job that mails users about
// appointments happening within the next 24 hours.
package reminder

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/serenity-wellness/booking-service/internal/models"
)

// Store lists the appointments due for a reminder
type Store interface {
	DueReminders(ctx context.Context, from, to int64) ([]models.Reminder, error)
}

// Sender delivers reminder emails
type Sender interface {
	SendAppointmentReminder(to, username, appointmentType string, timestamp int64) error
}

// Job mails reminders for appointments in the next 24 hours. It satisfies
// cron.Job.
type Job struct {
	store  Store
	sender Sender
	log    *logrus.Logger
	now    func() time.Time
}

// NewJob creates a reminder job
func NewJob(store Store, sender Sender, log *logrus.Logger) *Job {
	return &Job{store: store, sender: sender, log: log, now: time.Now}
}

// Run sends one reminder per due appointment. Delivery failures are logged
// and do not stop the batch.
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	from := j.now().Unix()
	to := from + int64(24*time.Hour/time.Second)

	reminders, err := j.store.DueReminders(ctx, from, to)
	if err != nil {
		j.log.Errorf("Failed to list due reminders: %v", err)
		return
	}

	sent := 0
	for _, r := range reminders {
		seconds, err := strconv.ParseInt(r.AppointmentTime, 10, 64)
		if err != nil {
			j.log.Errorf("Skipping reminder %d: bad timestamp %q", r.ID, r.AppointmentTime)
			continue
		}
		if err := j.sender.SendAppointmentReminder(r.Email, r.Username, r.Type, seconds); err != nil {
			continue
		}
		sent++
	}
	j.log.Infof("Reminder run complete: %d due, %d sent", len(reminders), sent)
}
