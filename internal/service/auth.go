package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/serenity-wellness/booking-service/internal/models"
	"github.com/serenity-wellness/booking-service/internal/repository"
)

// Signup creates a new user with a hashed password and records a first visit.
// The username check is advisory; the unique index on usernames is what
// actually rejects a concurrent duplicate.
func (s *Service) Signup(ctx context.Context, username, password, email string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	taken, err := s.store.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Email:        email,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	if err := s.RecordVisit(ctx, username); err != nil {
		s.log.Errorf("Failed to record signup visit for %s: %v", username, err)
	}

	s.log.Infof("User registered: %s", username)
	return user, nil
}

// Login verifies the username/password pair and records a visit on success
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.RecordVisit(ctx, username); err != nil {
		s.log.Errorf("Failed to record login visit for %s: %v", username, err)
	}

	s.log.Infof("User logged in: %s", username)
	return user, nil
}

// RecordVisit appends the current time to the user's visit log
func (s *Service) RecordVisit(ctx context.Context, username string) error {
	return s.store.AppendVisit(ctx, username, strconv.FormatInt(time.Now().Unix(), 10))
}

// RecentVisits returns the user's visit timestamps in recording order
func (s *Service) RecentVisits(ctx context.Context, username string) ([]string, error) {
	return s.store.RecentVisits(ctx, username)
}
