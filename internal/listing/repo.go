package listing

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/tutor-marketplace/pkg/apperr"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Migrate() error {
	return r.db.AutoMigrate(&Listing{})
}

func (r *Repo) Create(ctx context.Context, l *Listing) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *Repo) ByID(ctx context.Context, id string) (*Listing, error) {
	var l Listing
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("listing %s not found", id)
		}
		return nil, err
	}
	return &l, nil
}

func (r *Repo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*Listing, error) {
	if err := r.db.WithContext(ctx).Model(&Listing{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

// Search returns active listings matching q as a case-insensitive substring of
// title, subject, description or location. lower(...) LIKE keeps the query
// portable across postgres and the sqlite test store.
func (r *Repo) Search(ctx context.Context, q string, page, size int32) ([]Listing, int64, error) {
	if size <= 0 {
		size = 25
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&Listing{}).Where("active = ?", true)
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		qb = qb.Where(
			"(lower(title) LIKE ? OR lower(subject) LIKE ? OR lower(description) LIKE ? OR lower(location) LIKE ?)",
			like, like, like, like,
		)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []Listing
	if err := qb.Order("updated_at DESC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
