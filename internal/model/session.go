package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusPending  = "pending"
	SessionStatusApproved = "approved"
	SessionStatusRejected = "rejected"
)

type StudySession struct {
	ID                uuid.UUID `db:"id" json:"id"`
	TutorEmail        string    `db:"tutor_email" json:"tutor_email"`
	TutorName         string    `db:"tutor_name" json:"tutor_name,omitempty"`
	Title             string    `db:"title" json:"title"`
	Description       string    `db:"description" json:"description"`
	RegistrationStart time.Time `db:"registration_start" json:"registration_start"`
	RegistrationEnd   time.Time `db:"registration_end" json:"registration_end"`
	ClassStart        time.Time `db:"class_start" json:"class_start"`
	Duration          string    `db:"duration" json:"duration"`
	Status            string    `db:"status" json:"status"`
	RegistrationFee   *int      `db:"registration_fee" json:"registration_fee,omitempty"`
	RequestAttempt    int       `db:"request_attempt" json:"request_attempt"`
	RejectionReason   *string   `db:"rejection_reason" json:"rejection_reason,omitempty"`
	RejectionFeedback *string   `db:"rejection_feedback" json:"rejection_feedback,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
