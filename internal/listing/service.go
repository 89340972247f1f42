package listing

import (
	"context"
	"strings"

	"github.com/you/tutor-marketplace/pkg/apperr"
)

type Service struct{ repo *Repo }

func NewService(r *Repo) *Service { return &Service{repo: r} }

type CreateInput struct {
	Title       string
	Subject     string
	CourseCode  string
	HourlyRate  int64
	Description string
	Location    string
}

func (s *Service) Create(ctx context.Context, tutorID string, in CreateInput) (*Listing, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Subject) == "" {
		return nil, apperr.Validation("title and subject are required")
	}
	if in.HourlyRate <= 0 {
		return nil, apperr.Validation("hourly_rate must be positive")
	}
	l := &Listing{
		TutorID:     tutorID,
		Title:       strings.TrimSpace(in.Title),
		Subject:     strings.TrimSpace(in.Subject),
		CourseCode:  strings.TrimSpace(in.CourseCode),
		HourlyRate:  in.HourlyRate,
		Description: in.Description,
		Location:    in.Location,
		Active:      true,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

type UpdateInput struct {
	HourlyRate  *int64
	Description *string
	Location    *string
	Active      *bool
}

// Update lets the owning tutor adjust rate, description, location and the
// active flag. Title, subject and ownership are fixed once the listing exists,
// bookings reference them.
func (s *Service) Update(ctx context.Context, id, tutorID string, in UpdateInput) (*Listing, error) {
	l, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.TutorID != tutorID {
		return nil, apperr.Forbidden("listing %s is not yours", id)
	}
	fields := map[string]any{}
	if in.HourlyRate != nil {
		if *in.HourlyRate <= 0 {
			return nil, apperr.Validation("hourly_rate must be positive")
		}
		fields["hourly_rate"] = *in.HourlyRate
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Active != nil {
		fields["active"] = *in.Active
	}
	if len(fields) == 0 {
		return nil, apperr.Validation("no listing fields to update")
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

func (s *Service) Get(ctx context.Context, id string) (*Listing, error) {
	return s.repo.ByID(ctx, id)
}

func (s *Service) Search(ctx context.Context, q string, page, size int32) ([]Listing, int64, error) {
	return s.repo.Search(ctx, q, page, size)
}

// Resolve maps a listing to its owning tutor and rate for the booking
// lifecycle manager. Inactive listings cannot take new bookings.
func (s *Service) Resolve(ctx context.Context, listingID string) (tutorID string, hourlyRate int64, err error) {
	l, err := s.repo.ByID(ctx, listingID)
	if err != nil {
		return "", 0, err
	}
	if !l.Active {
		return "", 0, apperr.NotFound("listing %s is no longer active", listingID)
	}
	return l.TutorID, l.HourlyRate, nil
}
