package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/serenity-wellness/booking-service/internal/models"
)

var (
	// ErrNotFound is returned when a record expected to exist is absent
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when an insert violates a unique index
	ErrAlreadyExists = errors.New("record already exists")
)

// uniqueViolation is the Postgres error code for unique_violation
const uniqueViolation = "23505"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.Email).
		Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, password_hash, email, created_at
		FROM users
		WHERE username = $1`
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UsernameExists reports whether at least one user has the given username
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// AppendVisit records a visit timestamp for the given user.
// The visit log is append-only; rows are never updated or removed.
func (r *Repository) AppendVisit(ctx context.Context, username, timestamp string) error {
	exists, err := r.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	query := `INSERT INTO visits (username, visited_at) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, username, timestamp); err != nil {
		return fmt.Errorf("failed to append visit: %w", err)
	}
	return nil
}

// RecentVisits returns the user's visit timestamps in insertion order
func (r *Repository) RecentVisits(ctx context.Context, username string) ([]string, error) {
	exists, err := r.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	query := `SELECT visited_at FROM visits WHERE username = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	var visits []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}

// CreateTestimonial creates a new testimonial in the database
func (r *Repository) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	query := `
		INSERT INTO testimonials (author, message, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, t.Author, t.Message).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

// ListTestimonials returns all testimonials in store order
func (r *Repository) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	query := `SELECT id, author, message, created_at FROM testimonials`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	var testimonials []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Message, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		testimonials = append(testimonials, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

// CreateAppointment creates a new appointment in the database
func (r *Repository) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	query := `
		INSERT INTO appointments (type, appointment_time, username)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, a.Type, a.AppointmentTime, a.Username).
		Scan(&a.ID)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// AppointmentExists reports whether the user already booked the given slot
func (r *Repository) AppointmentExists(ctx context.Context, timestamp, username string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE appointment_time = $1 AND username = $2
		)`
	if err := r.db.QueryRowContext(ctx, query, timestamp, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check appointment: %w", err)
	}
	return exists, nil
}

// ListAppointmentsFor returns all appointments booked by the given user
func (r *Repository) ListAppointmentsFor(ctx context.Context, username string) ([]models.Appointment, error) {
	query := `
		SELECT id, type, appointment_time, username
		FROM appointments
		WHERE username = $1`
	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []models.Appointment
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.Type, &a.AppointmentTime, &a.Username); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// DueReminders returns appointments whose time falls in [from, to),
// joined with the owner's email. Users without an email are skipped.
func (r *Repository) DueReminders(ctx context.Context, from, to int64) ([]models.Reminder, error) {
	query := `
		SELECT a.id, a.type, a.appointment_time, a.username, u.email
		FROM appointments a
		JOIN users u ON u.username = a.username
		WHERE u.email <> ''
		  AND CAST(a.appointment_time AS BIGINT) >= $1
		  AND CAST(a.appointment_time AS BIGINT) < $2`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var rem models.Reminder
		if err := rows.Scan(&rem.ID, &rem.Type, &rem.AppointmentTime, &rem.Username, &rem.Email); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	return reminders, nil
}
