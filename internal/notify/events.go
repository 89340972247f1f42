package notify

import (
	"encoding/json"
	"fmt"
)

// Routing keys published by the API process.
const (
	RKAccountRegistered = "account.registered"
	RKBookingCreated    = "booking.created"
	RKBookingAccepted   = "booking.accepted"
	RKBookingCancelled  = "booking.cancelled"
	RKBookingCompleted  = "booking.completed"
)

type AccountRegistered struct {
	UserID            string `json:"user_id"`
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token"`
}

type BookingCreated struct {
	BookingID string `json:"booking_id"`
	StudentID string `json:"student_id"`
	TutorID   string `json:"tutor_id"`
	ListingID string `json:"listing_id"`
	Start     int64  `json:"start"` // unix seconds
	End       int64  `json:"end"`
}

type BookingSimple struct {
	BookingID string `json:"booking_id"`
}

func decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
