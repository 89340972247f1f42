package review

import (
	"context"

	"github.com/you/tutor-marketplace/internal/booking"
	"github.com/you/tutor-marketplace/pkg/apperr"
)

// BookingGate is the slice of the booking service the review gate needs.
type BookingGate interface {
	Lookup(ctx context.Context, bookingID string) (*booking.Booking, error)
}

type Service struct {
	repo     *Repo
	bookings BookingGate
}

func NewService(r *Repo, bookings BookingGate) *Service {
	return &Service{repo: r, bookings: bookings}
}

// Create admits a review only when the booking exists, the reviewer is its
// student and the booking has reached COMPLETED. The tutor is always the
// reviewee.
func (s *Service) Create(ctx context.Context, bookingID, reviewerID string, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("rating must be an integer between 1 and 5")
	}
	b, err := s.bookings.Lookup(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.StudentID != reviewerID {
		return nil, apperr.Forbidden("only the booking's student may leave a review")
	}
	if b.Status != booking.StatusCompleted {
		return nil, apperr.InvalidTransition("booking must be COMPLETED before it can be reviewed")
	}

	rv := &Review{
		BookingID:  bookingID,
		ReviewerID: reviewerID,
		RevieweeID: b.TutorID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.repo.CreateOnce(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) ForTutor(ctx context.Context, tutorID string, page, pageSize int32) (*TutorReviews, error) {
	if tutorID == "" {
		return nil, apperr.Validation("tutorId is required")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}
	return s.repo.PageForTutor(ctx, tutorID, page, pageSize)
}
