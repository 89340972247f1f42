package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/you/tutor-marketplace/pkg/apperr"
	"github.com/you/tutor-marketplace/pkg/auth"
)

// Campus accounts only: the address must end in .edu.
var eduEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.edu$`)

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type Service struct {
	repo   *Repo
	pub    EventPublisher
	jwtTTL time.Duration
}

func NewService(r *Repo, pub EventPublisher, jwtTTL time.Duration) *Service {
	return &Service{repo: r, pub: pub, jwtTTL: jwtTTL}
}

func strongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, c := range p {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

func (s *Service) Register(ctx context.Context, email, password, role string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !eduEmailRe.MatchString(email) {
		return nil, apperr.Validation("a .edu email address is required")
	}
	if !strongPassword(password) {
		return nil, apperr.Validation("password must be at least 8 characters with upper, lower and digit")
	}
	r, ok := ParseRole(strings.ToUpper(role))
	if !ok {
		return nil, apperr.Validation("role must be STUDENT or TUTOR")
	}

	if _, err := s.repo.UserByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	tok := make([]byte, 24)
	if _, err := rand.Read(tok); err != nil {
		return nil, err
	}

	u := &User{
		Email:             email,
		PasswordHash:      string(hash),
		Role:              r,
		VerificationToken: hex.EncodeToString(tok),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, "account.registered", map[string]any{
		"user_id": u.ID, "email": u.Email, "verification_token": u.VerificationToken,
	})
	return u, nil
}

func (s *Service) Verify(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return apperr.Validation("verification token required")
	}
	if _, err := s.repo.VerifyByToken(ctx, token); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.Validation("invalid or expired verification token")
		}
		return err
	}
	return nil
}

// Login returns the user plus a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Unauthorized("invalid email or password")
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}
	token, err := auth.CreateAccessToken(u.ID, string(u.Role), u.Email, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

type ProfileUpdate struct {
	FirstName  *string
	LastName   *string
	University *string
	Major      *string
	Year       *string
	Bio        *string
	AvatarURL  *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*ProfileView, error) {
	fields := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			fields[col] = strings.TrimSpace(*v)
		}
	}
	set("first_name", in.FirstName)
	set("last_name", in.LastName)
	set("university", in.University)
	set("major", in.Major)
	set("year", in.Year)
	set("bio", in.Bio)
	set("avatar_url", in.AvatarURL)
	if len(fields) == 0 {
		return nil, apperr.Validation("no profile fields to update")
	}
	if err := s.repo.UpsertProfile(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.repo.ProfileView(ctx, userID)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*ProfileView, error) {
	return s.repo.ProfileView(ctx, userID)
}
