package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

func approvedSession(id uuid.UUID, fee *int) *model.StudySession {
	return &model.StudySession{
		ID:              id,
		Title:           "Linear Algebra Crash Course",
		TutorEmail:      "tutor@example.com",
		Status:          model.SessionStatusApproved,
		RegistrationFee: fee,
	}
}

func TestRegisterBooking_FreeSessionIsPaidImmediately(t *testing.T) {
	fee := 0
	sessionRepo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return approvedSession(id, &fee), nil
		},
	}

	svc := service.NewBookingService(&mockBookingRepo{}, sessionRepo, &mockPublisher{})

	booking, err := svc.RegisterBooking(context.Background(), uuid.New(), "student@example.com")

	require.NoError(t, err)
	require.Equal(t, model.PaymentStatusPaid, booking.PaymentStatus)
}

func TestRegisterBooking_PaidSessionStartsIncomplete(t *testing.T) {
	fee := 40
	sessionRepo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return approvedSession(id, &fee), nil
		},
	}

	svc := service.NewBookingService(&mockBookingRepo{}, sessionRepo, &mockPublisher{})

	booking, err := svc.RegisterBooking(context.Background(), uuid.New(), "student@example.com")

	require.NoError(t, err)
	require.Equal(t, model.PaymentStatusIncomplete, booking.PaymentStatus)
}

func TestRegisterBooking_DuplicateIsConflict(t *testing.T) {
	fee := 40
	sessionRepo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return approvedSession(id, &fee), nil
		},
	}
	bookingRepo := &mockBookingRepo{
		create: func(ctx context.Context, b *model.Booking) (*model.Booking, error) {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "uniq_booking_per_student"}
		},
	}

	svc := service.NewBookingService(bookingRepo, sessionRepo, &mockPublisher{})

	_, err := svc.RegisterBooking(context.Background(), uuid.New(), "student@example.com")

	require.ErrorIs(t, err, service.ErrAlreadyBooked)
}

func TestRegisterBooking_PendingSessionNotBookable(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return &model.StudySession{ID: id, Status: model.SessionStatusPending}, nil
		},
	}

	svc := service.NewBookingService(&mockBookingRepo{}, sessionRepo, &mockPublisher{})

	_, err := svc.RegisterBooking(context.Background(), uuid.New(), "student@example.com")

	require.ErrorIs(t, err, service.ErrSessionNotBookable)
}

func TestMarkPaid_AlreadyPaidIsNoOp(t *testing.T) {
	bookingID := uuid.New()
	markPaidCalled := false
	bookingRepo := &mockBookingRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
			return &model.Booking{
				ID:            id,
				StudentEmail:  "student@example.com",
				PaymentStatus: model.PaymentStatusPaid,
			}, nil
		},
		markPaid: func(ctx context.Context, id uuid.UUID, studentEmail string) (bool, error) {
			markPaidCalled = true
			return true, nil
		},
	}

	svc := service.NewBookingService(bookingRepo, &mockSessionRepo{}, &mockPublisher{})

	err := svc.MarkPaid(context.Background(), bookingID, "student@example.com")

	require.NoError(t, err)
	require.False(t, markPaidCalled)
}

func TestMarkPaid_OtherStudentsBookingIsHidden(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
			return &model.Booking{
				ID:            id,
				StudentEmail:  "owner@example.com",
				PaymentStatus: model.PaymentStatusIncomplete,
			}, nil
		},
	}

	svc := service.NewBookingService(bookingRepo, &mockSessionRepo{}, &mockPublisher{})

	err := svc.MarkPaid(context.Background(), uuid.New(), "someone-else@example.com")

	require.ErrorIs(t, err, service.ErrBookingNotFound)
}

func TestMarkPaid_IncompleteBooking(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
			return &model.Booking{
				ID:            id,
				StudentEmail:  "student@example.com",
				PaymentStatus: model.PaymentStatusIncomplete,
			}, nil
		},
	}

	svc := service.NewBookingService(bookingRepo, &mockSessionRepo{}, &mockPublisher{})

	err := svc.MarkPaid(context.Background(), uuid.New(), "student@example.com")

	require.NoError(t, err)
}
