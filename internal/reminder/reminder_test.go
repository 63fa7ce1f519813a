package reminder

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/serenity-wellness/booking-service/internal/models"
)

type fakeStore struct {
	reminders []models.Reminder
	err       error
	from, to  int64
}

func (f *fakeStore) DueReminders(_ context.Context, from, to int64) ([]models.Reminder, error) {
	f.from, f.to = from, to
	return f.reminders, f.err
}

type fakeSender struct {
	sent []string
	fail map[string]bool
}

func (f *fakeSender) SendAppointmentReminder(to, username, appointmentType string, timestamp int64) error {
	if f.fail[to] {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, to)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRun_SendsForNext24Hours(t *testing.T) {
	store := &fakeStore{reminders: []models.Reminder{
		{Appointment: models.Appointment{ID: 1, Type: "massage", AppointmentTime: "1718443800", Username: "alice"}, Email: "alice@example.com"},
		{Appointment: models.Appointment{ID: 2, Type: "facial", AppointmentTime: "1718450000", Username: "bob"}, Email: "bob@example.com"},
	}}
	sender := &fakeSender{}
	job := NewJob(store, sender, testLogger())
	now := time.Unix(1718400000, 0)
	job.now = func() time.Time { return now }

	job.Run()

	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, sender.sent)
	assert.Equal(t, int64(1718400000), store.from)
	assert.Equal(t, int64(1718400000+86400), store.to)
}

func TestRun_SkipsBadTimestampAndFailures(t *testing.T) {
	store := &fakeStore{reminders: []models.Reminder{
		{Appointment: models.Appointment{ID: 1, Type: "massage", AppointmentTime: "garbage", Username: "alice"}, Email: "alice@example.com"},
		{Appointment: models.Appointment{ID: 2, Type: "facial", AppointmentTime: "1718450000", Username: "bob"}, Email: "bob@example.com"},
		{Appointment: models.Appointment{ID: 3, Type: "massage", AppointmentTime: "1718460000", Username: "cara"}, Email: "cara@example.com"},
	}}
	sender := &fakeSender{fail: map[string]bool{"bob@example.com": true}}
	job := NewJob(store, sender, testLogger())

	job.Run()

	assert.Equal(t, []string{"cara@example.com"}, sender.sent)
}

func TestRun_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	sender := &fakeSender{}
	job := NewJob(store, sender, testLogger())

	job.Run()

	assert.Empty(t, sender.sent)
}
