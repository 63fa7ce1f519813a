package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTimestamp(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "epoch", date: "1970-01-01T00:00", want: "0"},
		{name: "known instant", date: "2024-01-01T00:00", want: "1704067200"},
		{name: "with minutes", date: "2024-06-15T09:30", want: "1718443800"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToTimestamp(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToTimestamp_Malformed(t *testing.T) {
	for _, date := range []string{"not-a-date", "2024-01-01", "2024-01-01 10:00", ""} {
		_, err := ToTimestamp(date)
		assert.ErrorIs(t, err, ErrInvalidDate, "date %q", date)
	}
}

func TestSchedule_BookedThenConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "s3cret", "")
	require.NoError(t, err)

	booked, err := svc.Schedule(ctx, "massage", "2024-06-15T09:30", "alice")
	require.NoError(t, err)
	assert.Equal(t, "1718443800", booked.AppointmentTime)

	_, err = svc.Schedule(ctx, "facial", "2024-06-15T09:30", "alice")
	assert.ErrorIs(t, err, ErrSlotTaken)

	appointments, err := svc.Appointments(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "massage", appointments[0].Type)
}

func TestSchedule_SameSlotDifferentUsers(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Schedule(ctx, "massage", "2024-06-15T09:30", "alice")
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, "massage", "2024-06-15T09:30", "bob")
	assert.NoError(t, err)
}

func TestSchedule_MalformedDateWritesNothing(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.Schedule(ctx, "massage", "not-a-date", "alice")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Empty(t, store.appointments)
}

func TestSchedule_LostRaceSurfacesAsConflict(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.Schedule(ctx, "massage", "2024-06-15T09:30", "alice")
	require.NoError(t, err)

	// The existence check reports a stale miss; the unique index still
	// rejects the second write.
	store.staleReads = true
	_, err = svc.Schedule(ctx, "facial", "2024-06-15T09:30", "alice")
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Len(t, store.appointments, 1)
}

type recordingNotifier struct {
	to              string
	username        string
	appointmentType string
	timestamp       int64
	calls           int
}

func (n *recordingNotifier) SendBookingConfirmation(to, username, appointmentType string, timestamp int64) error {
	n.to = to
	n.username = username
	n.appointmentType = appointmentType
	n.timestamp = timestamp
	n.calls++
	return nil
}

func TestSchedule_SendsConfirmationWhenUserHasEmail(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{}
	svc := NewService(store, notifier, testLogger())
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "s3cret", "alice@example.com")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "bob", "s3cret", "")
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, "massage", "2024-06-15T09:30", "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "alice@example.com", notifier.to)
	assert.Equal(t, int64(1718443800), notifier.timestamp)

	// No email on file, no mail.
	_, err = svc.Schedule(ctx, "massage", "2024-06-15T10:30", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.calls)
}
