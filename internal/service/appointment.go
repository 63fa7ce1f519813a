package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/serenity-wellness/booking-service/internal/models"
	"github.com/serenity-wellness/booking-service/internal/repository"
)

// dateLayout is the wall-clock format submitted by the scheduling form
const dateLayout = "2006-01-02T15:04"

// ToTimestamp parses a YYYY-MM-DDTHH:MM date string as UTC and returns the
// elapsed seconds since the Unix epoch as a string
func ToTimestamp(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return strconv.FormatInt(t.Unix(), 10), nil
}

// Schedule books an appointment for the user at the given wall-clock date.
// Returns ErrSlotTaken when the user already holds that slot; the check is a
// read before the write, so a lost race is caught by the unique slot index.
func (s *Service) Schedule(ctx context.Context, appointmentType, date, username string) (*models.Appointment, error) {
	timestamp, err := ToTimestamp(date)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.AppointmentExists(ctx, timestamp, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlotTaken
	}

	appointment := &models.Appointment{
		Type:            appointmentType,
		AppointmentTime: timestamp,
		Username:        username,
	}
	if err := s.store.CreateAppointment(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.notifyBooked(ctx, appointment)

	s.log.Infof("Appointment booked for %s at %s", username, timestamp)
	return appointment, nil
}

// Appointments returns all appointments booked by the given user
func (s *Service) Appointments(ctx context.Context, username string) ([]models.Appointment, error) {
	return s.store.ListAppointmentsFor(ctx, username)
}

func (s *Service) notifyBooked(ctx context.Context, a *models.Appointment) {
	if s.notifier == nil {
		return
	}
	user, err := s.store.FindUserByUsername(ctx, a.Username)
	if err != nil || user.Email == "" {
		return
	}
	seconds, err := strconv.ParseInt(a.AppointmentTime, 10, 64)
	if err != nil {
		return
	}
	if err := s.notifier.SendBookingConfirmation(user.Email, a.Username, a.Type, seconds); err != nil {
		s.log.Errorf("Failed to send booking confirmation to %s: %v", user.Email, err)
	}
}
