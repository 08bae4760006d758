package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
)

var (
	ErrAlreadyReviewed  = errors.New("student has already reviewed this session")
	ErrSessionNotBooked = errors.New("student has not booked this session")
)

type ReviewService interface {
	SubmitReview(ctx context.Context, review *model.Review) error
	ListSessionReviews(ctx context.Context, sessionID uuid.UUID) ([]model.Review, error)
	AverageRating(ctx context.Context, sessionID uuid.UUID) (*model.RatingSummary, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	sessionRepo repository.SessionRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository, sessionRepo repository.SessionRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		sessionRepo: sessionRepo,
	}
}

// SubmitReview accepts one review per (session, student) pair. The
// uniqueness lives in the reviews unique index, so two concurrent
// submissions cannot both slip through.
func (s *reviewService) SubmitReview(ctx context.Context, review *model.Review) error {
	session, err := s.sessionRepo.FindByID(ctx, review.SessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	booked, err := s.bookingRepo.HasBooking(ctx, review.SessionID, review.StudentEmail)
	if err != nil {
		return err
	}
	if !booked {
		return ErrSessionNotBooked
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyReviewed
		}
		return err
	}

	return nil
}

func (s *reviewService) ListSessionReviews(ctx context.Context, sessionID uuid.UUID) ([]model.Review, error) {
	return s.reviewRepo.ListBySession(ctx, sessionID)
}

// AverageRating reports the mean rating rounded to one decimal place,
// or a nil average when the session has no reviews.
func (s *reviewService) AverageRating(ctx context.Context, sessionID uuid.UUID) (*model.RatingSummary, error) {
	average, count, err := s.reviewRepo.AverageRating(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := &model.RatingSummary{ReviewCount: count}
	if average != nil {
		rounded := math.Round(*average*10) / 10
		summary.AverageRating = &rounded
	}

	return summary, nil
}
