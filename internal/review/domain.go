package review

import "time"

// One review per booking, written once, never edited.
type Review struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	BookingID  string    `gorm:"uniqueIndex" json:"booking_id"`
	ReviewerID string    `gorm:"index" json:"reviewer_id"`
	RevieweeID string    `gorm:"index" json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewerName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Entry struct {
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Reviewer  ReviewerName `json:"reviewer"`
}

// TutorReviews is one page of a tutor's reviews plus the running aggregate.
// AverageRating is nil until the first review lands.
type TutorReviews struct {
	TutorID       string   `json:"tutor_id"`
	AverageRating *float64 `json:"average_rating"`
	Total         int64    `json:"total"`
	Page          int32    `json:"page"`
	PageSize      int32    `json:"page_size"`
	Reviews       []Entry  `json:"reviews"`
}
