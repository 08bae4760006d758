package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

func pendingSession(id uuid.UUID, tutorEmail string) *model.StudySession {
	return &model.StudySession{
		ID:         id,
		Title:      "Intro to Graph Theory",
		TutorEmail: tutorEmail,
		Status:     model.SessionStatusPending,
	}
}

func TestDecide_ApproveWithValidFee(t *testing.T) {
	sessionID := uuid.New()

	var approvedFee int
	repo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return pendingSession(id, "tutor@example.com"), nil
		},
		approve: func(ctx context.Context, id uuid.UUID, fee int) (bool, error) {
			approvedFee = fee
			return true, nil
		},
	}

	svc := service.NewSessionService(repo, &mockPublisher{})

	err := svc.Decide(context.Background(), sessionID, service.Decision{Action: "approve", Fee: "25"})

	require.NoError(t, err)
	require.Equal(t, 25, approvedFee)
}

func TestDecide_ApproveWithNonNumericFee(t *testing.T) {
	repo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return pendingSession(id, "tutor@example.com"), nil
		},
	}

	svc := service.NewSessionService(repo, &mockPublisher{})

	err := svc.Decide(context.Background(), uuid.New(), service.Decision{Action: "approve", Fee: "free"})

	require.ErrorIs(t, err, service.ErrInvalidFee)
}

func TestDecide_ApproveWithNegativeFee(t *testing.T) {
	repo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return pendingSession(id, "tutor@example.com"), nil
		},
	}

	svc := service.NewSessionService(repo, &mockPublisher{})

	err := svc.Decide(context.Background(), uuid.New(), service.Decision{Action: "approve", Fee: "-10"})

	require.ErrorIs(t, err, service.ErrInvalidFee)
}

func TestDecide_ApproveLosesRace(t *testing.T) {
	repo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return pendingSession(id, "tutor@example.com"), nil
		},
		approve: func(ctx context.Context, id uuid.UUID, fee int) (bool, error) {
			return false, nil
		},
	}

	svc := service.NewSessionService(repo, &mockPublisher{})

	err := svc.Decide(context.Background(), uuid.New(), service.Decision{Action: "approve", Fee: "0"})

	require.ErrorIs(t, err, service.ErrSessionNotPending)
}

func TestDecide_Reject(t *testing.T) {
	var gotReason, gotFeedback string
	repo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return pendingSession(id, "tutor@example.com"), nil
		},
		reject: func(ctx context.Context, id uuid.UUID, reason, feedback string) (bool, error) {
			gotReason = reason
			gotFeedback = feedback
			return true, nil
		},
	}

	svc := service.NewSessionService(repo, &mockPublisher{})

	err := svc.Decide(context.Background(), uuid.New(), service.Decision{
		Action:   "reject",
		Reason:   "duplicate listing",
		Feedback: "merge with your existing session",
	})

	require.NoError(t, err)
	require.Equal(t, "duplicate listing", gotReason)
	require.Equal(t, "merge with your existing session", gotFeedback)
}

func TestDecide_UnknownAction(t *testing.T) {
	repo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return pendingSession(id, "tutor@example.com"), nil
		},
	}

	svc := service.NewSessionService(repo, &mockPublisher{})

	err := svc.Decide(context.Background(), uuid.New(), service.Decision{Action: "archive"})

	require.ErrorIs(t, err, service.ErrInvalidAction)
}

func TestDecide_SessionMissing(t *testing.T) {
	svc := service.NewSessionService(&mockSessionRepo{}, &mockPublisher{})

	err := svc.Decide(context.Background(), uuid.New(), service.Decision{Action: "approve", Fee: "10"})

	require.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestResubmit_WrongTutor(t *testing.T) {
	repo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			session := pendingSession(id, "owner@example.com")
			session.Status = model.SessionStatusRejected
			return session, nil
		},
	}

	svc := service.NewSessionService(repo, &mockPublisher{})

	err := svc.Resubmit(context.Background(), uuid.New(), "intruder@example.com")

	require.ErrorIs(t, err, service.ErrNotSessionOwner)
}

func TestResubmit_NotRejected(t *testing.T) {
	repo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			session := pendingSession(id, "owner@example.com")
			session.Status = model.SessionStatusApproved
			return session, nil
		},
		resubmit: func(ctx context.Context, id uuid.UUID, tutorEmail string) (bool, error) {
			return false, nil
		},
	}

	svc := service.NewSessionService(repo, &mockPublisher{})

	err := svc.Resubmit(context.Background(), uuid.New(), "owner@example.com")

	require.ErrorIs(t, err, service.ErrSessionNotRejected)
}

func TestResubmit_Rejected(t *testing.T) {
	var resubmitted bool
	repo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			session := pendingSession(id, "owner@example.com")
			session.Status = model.SessionStatusRejected
			return session, nil
		},
		resubmit: func(ctx context.Context, id uuid.UUID, tutorEmail string) (bool, error) {
			resubmitted = true
			return true, nil
		},
	}

	svc := service.NewSessionService(repo, &mockPublisher{})

	err := svc.Resubmit(context.Background(), uuid.New(), "owner@example.com")

	require.NoError(t, err)
	require.True(t, resubmitted)
}
