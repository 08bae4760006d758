package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusIncomplete = "incomplete"
	PaymentStatusPaid       = "paid"
)

type Booking struct {
	ID            uuid.UUID `db:"id" json:"id"`
	SessionID     uuid.UUID `db:"session_id" json:"session_id"`
	StudentEmail  string    `db:"student_email" json:"student_email"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// BookedSession is a booking joined with its study session, the shape
// the student dashboard consumes.
type BookedSession struct {
	Booking
	Title           string    `db:"title" json:"title"`
	TutorEmail      string    `db:"tutor_email" json:"tutor_email"`
	ClassStart      time.Time `db:"class_start" json:"class_start"`
	RegistrationFee *int      `db:"registration_fee" json:"registration_fee,omitempty"`
}
