package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/serenity-wellness/booking-service/internal/models"
)

var (
	// ErrUsernameTaken is returned by Signup when the username is in use
	ErrUsernameTaken = errors.New("username is taken")
	// ErrInvalidCredentials is returned by Login on a bad username or password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSlotTaken is returned by Schedule when the slot is already booked
	ErrSlotTaken = errors.New("appointment slot is taken")
	// ErrInvalidDate is returned by Schedule on a malformed date string
	ErrInvalidDate = errors.New("invalid date")
	// ErrEmptyField is returned when a required form field is blank
	ErrEmptyField = errors.New("required field is empty")
)

// Store is the record store the service operates on
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	AppendVisit(ctx context.Context, username, timestamp string) error
	RecentVisits(ctx context.Context, username string) ([]string, error)
	CreateTestimonial(ctx context.Context, t *models.Testimonial) error
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	AppointmentExists(ctx context.Context, timestamp, username string) (bool, error)
	ListAppointmentsFor(ctx context.Context, username string) ([]models.Appointment, error)
}

// Notifier sends booking notifications. It may be nil when SMTP is not
// configured; the service treats delivery as best-effort either way.
type Notifier interface {
	SendBookingConfirmation(to, username, appointmentType string, timestamp int64) error
}

// Service handles business logic
type Service struct {
	store    Store
	notifier Notifier
	log      *logrus.Logger
}

// NewService initializes a new service
func NewService(store Store, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{store: store, notifier: notifier, log: log}
}
