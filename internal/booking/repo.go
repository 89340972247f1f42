package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/tutor-marketplace/pkg/apperr"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Migrate() error {
	return r.db.AutoMigrate(&Booking{})
}

var holdStatuses = []Status{StatusPending, StatusConfirmed}

// CreateIfFree inserts b unless the tutor already holds an overlapping
// PENDING or CONFIRMED booking. Half-open intervals: an existing booking
// conflicts iff existing.start < b.end AND existing.end > b.start, so
// touching endpoints never collide. Check and insert run in one serializable
// transaction so two concurrent requests for the same window cannot both pass
// the check.
func (r *Repo) CreateIfFree(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		err := tx.Model(&Booking{}).
			Where("tutor_id = ? AND status IN ?", b.TutorID, holdStatuses).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("requested window overlaps an existing booking")
		}
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		return tx.Create(b).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (r *Repo) ByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("booking %s not found", id)
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, to Status) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return err
		}
		b.Status = to
		return tx.Save(&b).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("booking %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns the caller's bookings, as student or tutor per column, ordered
// by start time.
func (r *Repo) List(ctx context.Context, column, userID string, status Status) ([]Booking, error) {
	qb := r.db.WithContext(ctx).Model(&Booking{}).Where(column+" = ?", userID)
	if status != "" {
		qb = qb.Where("status = ?", status)
	}
	var out []Booking
	if err := qb.Order("start_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
