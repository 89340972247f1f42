package account

import (
	"context"
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
	return r.db.AutoMigrate(&User{}, &Profile{})
}

// CreateUser inserts the user together with its empty profile row.
func (r *Repo) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return tx.Create(&Profile{UserID: u.ID}).Error
	})
}

func (r *Repo) UserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) UserByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %s not found", id)
		}
		return nil, err
	}
	return &u, nil
}

// VerifyByToken flips is_verified for the matching user and burns the token.
// Returns NotFound when no user carries the token.
func (r *Repo) VerifyByToken(ctx context.Context, token string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, "verification_token = ?", token).Error; err != nil {
			return err
		}
		u.IsVerified = true
		u.VerificationToken = ""
		return tx.Save(&u).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("verification token not recognized")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) UpsertProfile(ctx context.Context, userID string, fields map[string]any) error {
	p := Profile{UserID: userID}
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Assign(fields).
		FirstOrCreate(&p).Error
}

func (r *Repo) ProfileView(ctx context.Context, userID string) (*ProfileView, error) {
	var v ProfileView
	err := r.db.WithContext(ctx).Model(&User{}).
		Select(`users.id AS user_id, users.email, users.role, users.is_verified AS verified,
			profiles.first_name, profiles.last_name, profiles.university, profiles.major,
			profiles.year, profiles.bio, profiles.avatar_url`).
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("users.id = ?", userID).
		Take(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("profile %s not found", userID)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
