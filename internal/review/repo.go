package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/tutor-marketplace/pkg/apperr"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Migrate() error {
	return r.db.AutoMigrate(&Review{})
}

// CreateOnce inserts rv unless the booking already has a review. The check
// runs in the same transaction as the insert; the unique index on booking_id
// backs it up.
func (r *Repo) CreateOnce(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Review{}).Where("booking_id = ?", rv.BookingID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("booking %s already has a review", rv.BookingID)
		}
		if rv.ID == "" {
			rv.ID = uuid.NewString()
		}
		return tx.Create(rv).Error
	})
}

type aggregate struct {
	AverageRating *float64
	Total         int64
}

type entryRow struct {
	Rating    int
	Comment   string
	CreatedAt time.Time
	FirstName string
	LastName  string
}

// PageForTutor returns one page of reviews for the tutor, newest first, with
// reviewer names pulled from the profiles table, plus the aggregate over all
// of the tutor's reviews.
func (r *Repo) PageForTutor(ctx context.Context, tutorID string, page, size int32) (*TutorReviews, error) {
	var agg aggregate
	err := r.db.WithContext(ctx).Model(&Review{}).
		Select("ROUND(AVG(rating), 1) AS average_rating, COUNT(*) AS total").
		Where("reviewee_id = ?", tutorID).
		Take(&agg).Error
	if err != nil {
		return nil, err
	}

	var rows []entryRow
	err = r.db.WithContext(ctx).Model(&Review{}).
		Select(`reviews.rating, reviews.comment, reviews.created_at,
			COALESCE(profiles.first_name, '') AS first_name,
			COALESCE(profiles.last_name, '') AS last_name`).
		Joins("LEFT JOIN profiles ON profiles.user_id = reviews.reviewer_id").
		Where("reviews.reviewee_id = ?", tutorID).
		Order("reviews.created_at DESC").
		Limit(int(size)).Offset(int((page - 1) * size)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &TutorReviews{
		TutorID:       tutorID,
		AverageRating: agg.AverageRating,
		Total:         agg.Total,
		Page:          page,
		PageSize:      size,
		Reviews:       make([]Entry, 0, len(rows)),
	}
	for _, row := range rows {
		out.Reviews = append(out.Reviews, Entry{
			Rating:    row.Rating,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt,
			Reviewer:  ReviewerName{FirstName: row.FirstName, LastName: row.LastName},
		})
	}
	return out, nil
}
