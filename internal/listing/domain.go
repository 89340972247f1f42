package listing

import "time"

type Listing struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	TutorID     string    `gorm:"index" json:"tutor_id"`
	Title       string    `json:"title"`
	Subject     string    `gorm:"index" json:"subject"`
	CourseCode  string    `json:"course_code,omitempty"`
	HourlyRate  int64     `json:"hourly_rate"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Active      bool      `gorm:"index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
