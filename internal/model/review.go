package model

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SessionID    uuid.UUID `db:"session_id" json:"session_id"`
	StudentEmail string    `db:"student_email" json:"student_email"`
	StudentName  string    `db:"student_name" json:"student_name,omitempty"`
	Rating       int       `db:"rating" json:"rating"`
	Comment      *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RatingSummary carries the aggregate for one session. AverageRating is
// nil when the session has no reviews yet.
type RatingSummary struct {
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}
