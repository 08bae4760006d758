package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
)

type mockSessionRepo struct {
	findByID   func(ctx context.Context, id uuid.UUID) (*model.StudySession, error)
	approve    func(ctx context.Context, id uuid.UUID, fee int) (bool, error)
	reject     func(ctx context.Context, id uuid.UUID, reason, feedback string) (bool, error)
	resubmit   func(ctx context.Context, id uuid.UUID, tutorEmail string) (bool, error)
	deleteFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, s *model.StudySession) (*model.StudySession, error) {
	s.ID = uuid.New()
	s.Status = model.SessionStatusPending
	s.RequestAttempt = 1
	return s, nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepo) ListByTutorAndStatus(ctx context.Context, tutorEmail, status string) ([]model.StudySession, error) {
	return []model.StudySession{}, nil
}

func (m *mockSessionRepo) ListApproved(ctx context.Context, search, filterBy string, page, limit int) (*repository.PaginatedSessions, error) {
	return &repository.PaginatedSessions{}, nil
}

func (m *mockSessionRepo) ListByStatus(ctx context.Context, status string, page, limit int) (*repository.PaginatedSessions, error) {
	return &repository.PaginatedSessions{}, nil
}

func (m *mockSessionRepo) Approve(ctx context.Context, id uuid.UUID, fee int) (bool, error) {
	if m.approve != nil {
		return m.approve(ctx, id, fee)
	}
	return true, nil
}

func (m *mockSessionRepo) Reject(ctx context.Context, id uuid.UUID, reason, feedback string) (bool, error) {
	if m.reject != nil {
		return m.reject(ctx, id, reason, feedback)
	}
	return true, nil
}

func (m *mockSessionRepo) Resubmit(ctx context.Context, id uuid.UUID, tutorEmail string) (bool, error) {
	if m.resubmit != nil {
		return m.resubmit(ctx, id, tutorEmail)
	}
	return true, nil
}

func (m *mockSessionRepo) UpdateInfo(ctx context.Context, id uuid.UUID, tutorEmail string, update repository.SessionUpdate) (bool, error) {
	return true, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return true, nil
}

type mockBookingRepo struct {
	create     func(ctx context.Context, b *model.Booking) (*model.Booking, error)
	findByID   func(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	hasBooking func(ctx context.Context, sessionID uuid.UUID, studentEmail string) (bool, error)
	markPaid   func(ctx context.Context, id uuid.UUID, studentEmail string) (bool, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	if m.create != nil {
		return m.create(ctx, b)
	}
	b.ID = uuid.New()
	return b, nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepo) ListByStudent(ctx context.Context, studentEmail string) ([]model.BookedSession, error) {
	return []model.BookedSession{}, nil
}

func (m *mockBookingRepo) HasBooking(ctx context.Context, sessionID uuid.UUID, studentEmail string) (bool, error) {
	if m.hasBooking != nil {
		return m.hasBooking(ctx, sessionID, studentEmail)
	}
	return true, nil
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, id uuid.UUID, studentEmail string) (bool, error) {
	if m.markPaid != nil {
		return m.markPaid(ctx, id, studentEmail)
	}
	return true, nil
}

type mockReviewRepo struct {
	create        func(ctx context.Context, r *model.Review) error
	averageRating func(ctx context.Context, sessionID uuid.UUID) (*float64, int, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, r *model.Review) error {
	if m.create != nil {
		return m.create(ctx, r)
	}
	return nil
}

func (m *mockReviewRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Review, error) {
	return []model.Review{}, nil
}

func (m *mockReviewRepo) AverageRating(ctx context.Context, sessionID uuid.UUID) (*float64, int, error) {
	if m.averageRating != nil {
		return m.averageRating(ctx, sessionID)
	}
	return nil, 0, nil
}

type mockPublisher struct {
	approved []uuid.UUID
	rejected []uuid.UUID
	paid     []uuid.UUID
}

func (m *mockPublisher) PublishSessionApproved(session *model.StudySession) error {
	m.approved = append(m.approved, session.ID)
	return nil
}

func (m *mockPublisher) PublishSessionRejected(sessionID uuid.UUID, reason string) error {
	m.rejected = append(m.rejected, sessionID)
	return nil
}

func (m *mockPublisher) PublishBookingPaid(booking *model.Booking) error {
	m.paid = append(m.paid, booking.ID)
	return nil
}
