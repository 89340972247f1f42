package booking

import (
	"context"
	"time"

	"github.com/you/tutor-marketplace/pkg/apperr"
)

// ListingResolver maps a listing to its owning tutor; the listing package
// satisfies it.
type ListingResolver interface {
	Resolve(ctx context.Context, listingID string) (tutorID string, hourlyRate int64, err error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type Service struct {
	repo     *Repo
	listings ListingResolver
	pub      EventPublisher
}

func NewService(r *Repo, listings ListingResolver, pub EventPublisher) *Service {
	return &Service{repo: r, listings: listings, pub: pub}
}

func (s *Service) Create(ctx context.Context, studentID, listingID string, start, end time.Time, note string) (*Booking, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperr.Validation("start_time and end_time are required")
	}
	if !end.After(start) {
		return nil, apperr.Validation("end_time must be after start_time")
	}
	tutorID, _, err := s.listings.Resolve(ctx, listingID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		StudentID: studentID,
		TutorID:   tutorID,
		ListingID: listingID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Status:    StatusPending,
		Note:      note,
	}
	if err := s.repo.CreateIfFree(ctx, b); err != nil {
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, "booking.created", map[string]any{
		"booking_id": b.ID, "student_id": b.StudentID, "tutor_id": b.TutorID,
		"listing_id": b.ListingID, "start": b.StartTime.Unix(), "end": b.EndTime.Unix(),
	})
	return b, nil
}

// Accept moves a PENDING booking to CONFIRMED. Tutor only.
func (s *Service) Accept(ctx context.Context, bookingID, tutorID string) (*Booking, error) {
	b, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.TutorID != tutorID {
		return nil, apperr.Forbidden("booking %s is not yours to accept", bookingID)
	}
	if b.Status != StatusPending {
		return nil, apperr.InvalidTransition("cannot accept a %s booking", b.Status)
	}
	b, err = s.repo.UpdateStatus(ctx, bookingID, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	_ = s.pub.PublishJSON(ctx, "booking.accepted", map[string]any{"booking_id": b.ID})
	return b, nil
}

// Cancel is open to either participant, from PENDING or CONFIRMED.
func (s *Service) Cancel(ctx context.Context, bookingID, userID string) (*Booking, error) {
	b, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.StudentID != userID && b.TutorID != userID {
		return nil, apperr.Forbidden("booking %s is not yours to cancel", bookingID)
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return nil, apperr.InvalidTransition("cannot cancel a %s booking", b.Status)
	}
	b, err = s.repo.UpdateStatus(ctx, bookingID, StatusCancelled)
	if err != nil {
		return nil, err
	}
	_ = s.pub.PublishJSON(ctx, "booking.cancelled", map[string]any{"booking_id": b.ID})
	return b, nil
}

// Complete moves a CONFIRMED booking to COMPLETED. Tutor only. Completing an
// already-COMPLETED booking is a no-op success.
func (s *Service) Complete(ctx context.Context, bookingID, tutorID string) (*Booking, error) {
	b, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.TutorID != tutorID {
		return nil, apperr.Forbidden("booking %s is not yours to complete", bookingID)
	}
	if b.Status == StatusCompleted {
		return b, nil
	}
	if b.Status != StatusConfirmed {
		return nil, apperr.InvalidTransition("cannot complete a %s booking", b.Status)
	}
	b, err = s.repo.UpdateStatus(ctx, bookingID, StatusCompleted)
	if err != nil {
		return nil, err
	}
	_ = s.pub.PublishJSON(ctx, "booking.completed", map[string]any{"booking_id": b.ID})
	return b, nil
}

// Get returns the booking to its participants only.
func (s *Service) Get(ctx context.Context, bookingID, userID string) (*Booking, error) {
	b, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.StudentID != userID && b.TutorID != userID {
		return nil, apperr.Forbidden("booking %s is not yours", bookingID)
	}
	return b, nil
}

// List returns the caller's bookings. role decides which side of the booking
// the caller is on; statusFilter is optional.
func (s *Service) List(ctx context.Context, userID, role, statusFilter string) ([]Booking, error) {
	column := "student_id"
	if role == "TUTOR" {
		column = "tutor_id"
	}
	var status Status
	if statusFilter != "" {
		st, ok := ParseStatus(statusFilter)
		if !ok {
			return nil, apperr.Validation("unknown status %q", statusFilter)
		}
		status = st
	}
	return s.repo.List(ctx, column, userID, status)
}

// Lookup is the unguarded read used inside the process (the review gate);
// HTTP callers go through Get.
func (s *Service) Lookup(ctx context.Context, bookingID string) (*Booking, error) {
	return s.repo.ByID(ctx, bookingID)
}
