package booking

import "time"

// Status is the single canonical booking state set, uppercase everywhere:
// storage, API and events. CANCELLED and COMPLETED are terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

// Bookings are never deleted, only status-transitioned.
type Booking struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"index" json:"student_id"`
	TutorID   string    `gorm:"index" json:"tutor_id"`
	ListingID string    `gorm:"index" json:"listing_id"`
	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    Status    `gorm:"index" json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
