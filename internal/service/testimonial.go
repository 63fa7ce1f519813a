package service

import (
	"context"

	"github.com/serenity-wellness/booking-service/internal/models"
)

// SubmitTestimonial stores a new testimonial
func (s *Service) SubmitTestimonial(ctx context.Context, author, message string) (*models.Testimonial, error) {
	if author == "" || message == "" {
		return nil, ErrEmptyField
	}
	t := &models.Testimonial{Author: author, Message: message}
	if err := s.store.CreateTestimonial(ctx, t); err != nil {
		return nil, err
	}
	s.log.Infof("Testimonial submitted by %s", author)
	return t, nil
}

// Testimonials returns all testimonials in store order
func (s *Service) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.store.ListTestimonials(ctx)
}
