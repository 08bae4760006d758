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

func reviewSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return &model.StudySession{ID: id, Status: model.SessionStatusApproved}, nil
		},
	}
}

func TestSubmitReview_RequiresBooking(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		hasBooking: func(ctx context.Context, sessionID uuid.UUID, studentEmail string) (bool, error) {
			return false, nil
		},
	}

	svc := service.NewReviewService(&mockReviewRepo{}, bookingRepo, reviewSessionRepo())

	err := svc.SubmitReview(context.Background(), &model.Review{
		SessionID:    uuid.New(),
		StudentEmail: "student@example.com",
		Rating:       5,
	})

	require.ErrorIs(t, err, service.ErrSessionNotBooked)
}

func TestSubmitReview_DuplicateIsConflict(t *testing.T) {
	reviewRepo := &mockReviewRepo{
		create: func(ctx context.Context, r *model.Review) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uniq_review_per_student"}
		},
	}

	svc := service.NewReviewService(reviewRepo, &mockBookingRepo{}, reviewSessionRepo())

	err := svc.SubmitReview(context.Background(), &model.Review{
		SessionID:    uuid.New(),
		StudentEmail: "student@example.com",
		Rating:       4,
	})

	require.ErrorIs(t, err, service.ErrAlreadyReviewed)
}

func TestSubmitReview_BookedStudent(t *testing.T) {
	var created *model.Review
	reviewRepo := &mockReviewRepo{
		create: func(ctx context.Context, r *model.Review) error {
			created = r
			return nil
		},
	}

	svc := service.NewReviewService(reviewRepo, &mockBookingRepo{}, reviewSessionRepo())

	comment := "clear explanations"
	err := svc.SubmitReview(context.Background(), &model.Review{
		SessionID:    uuid.New(),
		StudentEmail: "student@example.com",
		Rating:       4,
		Comment:      &comment,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, 4, created.Rating)
}

func TestAverageRating_RoundsToOneDecimal(t *testing.T) {
	avg := 4.3333333
	reviewRepo := &mockReviewRepo{
		averageRating: func(ctx context.Context, sessionID uuid.UUID) (*float64, int, error) {
			return &avg, 3, nil
		},
	}

	svc := service.NewReviewService(reviewRepo, &mockBookingRepo{}, reviewSessionRepo())

	summary, err := svc.AverageRating(context.Background(), uuid.New())

	require.NoError(t, err)
	require.NotNil(t, summary.AverageRating)
	require.Equal(t, 4.3, *summary.AverageRating)
	require.Equal(t, 3, summary.ReviewCount)
}

func TestAverageRating_NoReviews(t *testing.T) {
	svc := service.NewReviewService(&mockReviewRepo{}, &mockBookingRepo{}, reviewSessionRepo())

	summary, err := svc.AverageRating(context.Background(), uuid.New())

	require.NoError(t, err)
	require.Nil(t, summary.AverageRating)
	require.Zero(t, summary.ReviewCount)
}
