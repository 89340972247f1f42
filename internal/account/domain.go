package account

import "time"

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleTutor:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID                string `gorm:"primaryKey"`
	Email             string `gorm:"uniqueIndex"`
	PasswordHash      string `json:"-"`
	Role              Role   `gorm:"index"`
	IsVerified        bool
	VerificationToken string `gorm:"index" json:"-"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Profile is created empty at registration and filled in by its owner later.
type Profile struct {
	UserID     string `gorm:"primaryKey"`
	FirstName  string
	LastName   string
	University string
	Major      string
	Year       string
	Bio        string
	AvatarURL  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProfileView is the joined users+profiles shape returned over the API.
type ProfileView struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Verified   bool   `json:"verified"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	University string `json:"university"`
	Major      string `json:"major"`
	Year       string `json:"year"`
	Bio        string `json:"bio"`
	AvatarURL  string `json:"avatar_url"`
}
