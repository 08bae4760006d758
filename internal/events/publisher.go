package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
)

type EventPublisher interface {
	PublishSessionApproved(session *model.StudySession) error
	PublishSessionRejected(sessionID uuid.UUID, reason string) error
	PublishBookingPaid(booking *model.Booking) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type SessionApprovedEvent struct {
	EventType       string    `json:"event_type"`
	SessionID       uuid.UUID `json:"session_id"`
	TutorEmail      string    `json:"tutor_email"`
	Title           string    `json:"title"`
	RegistrationFee int       `json:"registration_fee"`
	ApprovedAt      time.Time `json:"approved_at"`
}

type SessionRejectedEvent struct {
	EventType  string    `json:"event_type"`
	SessionID  uuid.UUID `json:"session_id"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}

type BookingPaidEvent struct {
	EventType    string    `json:"event_type"`
	BookingID    uuid.UUID `json:"booking_id"`
	SessionID    uuid.UUID `json:"session_id"`
	StudentEmail string    `json:"student_email"`
	PaidAt       time.Time `json:"paid_at"`
}

func (p *NatsPublisher) PublishSessionApproved(session *model.StudySession) error {
	fee := 0
	if session.RegistrationFee != nil {
		fee = *session.RegistrationFee
	}

	event := SessionApprovedEvent{
		EventType:       "session.approved",
		SessionID:       session.ID,
		TutorEmail:      session.TutorEmail,
		Title:           session.Title,
		RegistrationFee: fee,
		ApprovedAt:      time.Now(),
	}

	return p.publish("session.approved", event)
}

func (p *NatsPublisher) PublishSessionRejected(sessionID uuid.UUID, reason string) error {
	event := SessionRejectedEvent{
		EventType:  "session.rejected",
		SessionID:  sessionID,
		Reason:     reason,
		RejectedAt: time.Now(),
	}

	return p.publish("session.rejected", event)
}

func (p *NatsPublisher) PublishBookingPaid(booking *model.Booking) error {
	event := BookingPaidEvent{
		EventType:    "booking.paid",
		BookingID:    booking.ID,
		SessionID:    booking.SessionID,
		StudentEmail: booking.StudentEmail,
		PaidAt:       time.Now(),
	}

	return p.publish("booking.paid", event)
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", "subject", subject, "error", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("Error publishing to NATS", "subject", subject, "error", err)
		return err
	}

	slog.Info("Published event to NATS", "subject", subject)

	return nil
}
