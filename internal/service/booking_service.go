package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/events"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
)

var (
	ErrAlreadyBooked      = errors.New("student has already booked this session")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrSessionNotBookable = errors.New("session is not open for booking")
)

type BookingService interface {
	RegisterBooking(ctx context.Context, sessionID uuid.UUID, studentEmail string) (*model.Booking, error)
	ListStudentBookings(ctx context.Context, studentEmail string) ([]model.BookedSession, error)
	MarkPaid(ctx context.Context, bookingID uuid.UUID, studentEmail string) error
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	sessionRepo repository.SessionRepository
	publisher   events.EventPublisher
}

func NewBookingService(bookingRepo repository.BookingRepository, sessionRepo repository.SessionRepository, pub events.EventPublisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		sessionRepo: sessionRepo,
		publisher:   pub,
	}
}

// RegisterBooking creates the student's registration. A free session is
// paid immediately; a fee-bearing one starts incomplete until the
// payment confirmation lands. The unique index over
// (session_id, student_email) makes a repeat registration a conflict.
func (s *bookingService) RegisterBooking(ctx context.Context, sessionID uuid.UUID, studentEmail string) (*model.Booking, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != model.SessionStatusApproved {
		return nil, ErrSessionNotBookable
	}

	paymentStatus := model.PaymentStatusIncomplete
	if session.RegistrationFee == nil || *session.RegistrationFee == 0 {
		paymentStatus = model.PaymentStatusPaid
	}

	booking := &model.Booking{
		SessionID:     sessionID,
		StudentEmail:  studentEmail,
		PaymentStatus: paymentStatus,
	}

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}

	return created, nil
}

func (s *bookingService) ListStudentBookings(ctx context.Context, studentEmail string) ([]model.BookedSession, error) {
	return s.bookingRepo.ListByStudent(ctx, studentEmail)
}

// MarkPaid confirms the student's payment. Replaying a confirmation on
// an already paid booking is a no-op; there is no way back to
// incomplete.
func (s *bookingService) MarkPaid(ctx context.Context, bookingID uuid.UUID, studentEmail string) error {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil || booking.StudentEmail != studentEmail {
		return ErrBookingNotFound
	}
	if booking.PaymentStatus == model.PaymentStatusPaid {
		return nil
	}

	paid, err := s.bookingRepo.MarkPaid(ctx, bookingID, studentEmail)
	if err != nil {
		return err
	}

	if paid {
		booking.PaymentStatus = model.PaymentStatusPaid
		go s.publisher.PublishBookingPaid(booking)
	}

	return nil
}
