package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/events"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
)

// PublicPageSize is the fixed page size of the public session catalogue.
const PublicPageSize = 9

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidAction      = errors.New("action must be approve or reject")
	ErrInvalidFee         = errors.New("registration fee must be a non-negative integer")
	ErrSessionNotPending  = errors.New("session is no longer pending")
	ErrSessionNotRejected = errors.New("only rejected sessions can be resubmitted")
	ErrNotSessionOwner    = errors.New("session belongs to another tutor")
)

// Decision is an admin verdict on a pending session. Fee carries the
// registration fee for approvals as submitted (may be non-numeric);
// Reason and Feedback accompany rejections.
type Decision struct {
	Action   string
	Fee      string
	Reason   string
	Feedback string
}

type SessionService interface {
	CreateSession(ctx context.Context, session *model.StudySession) (*model.StudySession, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*model.StudySession, error)
	ListTutorSessions(ctx context.Context, tutorEmail, status string) ([]model.StudySession, error)
	BrowseApproved(ctx context.Context, search, filterBy string, page int) (*repository.PaginatedSessions, error)
	ListForAdmin(ctx context.Context, status string, page, limit int) (*repository.PaginatedSessions, error)
	Decide(ctx context.Context, sessionID uuid.UUID, decision Decision) error
	Resubmit(ctx context.Context, sessionID uuid.UUID, tutorEmail string) error
	UpdateInfo(ctx context.Context, sessionID uuid.UUID, tutorEmail string, update repository.SessionUpdate) error
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	publisher   events.EventPublisher
}

func NewSessionService(repo repository.SessionRepository, pub events.EventPublisher) SessionService {
	return &sessionService{sessionRepo: repo, publisher: pub}
}

func (s *sessionService) CreateSession(ctx context.Context, session *model.StudySession) (*model.StudySession, error) {
	return s.sessionRepo.Create(ctx, session)
}

func (s *sessionService) GetSession(ctx context.Context, sessionID uuid.UUID) (*model.StudySession, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionService) ListTutorSessions(ctx context.Context, tutorEmail, status string) ([]model.StudySession, error) {
	return s.sessionRepo.ListByTutorAndStatus(ctx, tutorEmail, status)
}

func (s *sessionService) BrowseApproved(ctx context.Context, search, filterBy string, page int) (*repository.PaginatedSessions, error) {
	if page < 1 {
		page = 1
	}
	return s.sessionRepo.ListApproved(ctx, search, filterBy, page, PublicPageSize)
}

func (s *sessionService) ListForAdmin(ctx context.Context, status string, page, limit int) (*repository.PaginatedSessions, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.sessionRepo.ListByStatus(ctx, status, page, limit)
}

// Decide runs the admin half of the lifecycle. Both legs are
// conditional on the session still being pending; losing that race
// surfaces as ErrSessionNotPending instead of a silent overwrite.
func (s *sessionService) Decide(ctx context.Context, sessionID uuid.UUID, decision Decision) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	switch decision.Action {
	case "approve":
		fee, err := strconv.Atoi(decision.Fee)
		if err != nil || fee < 0 {
			return ErrInvalidFee
		}

		approved, err := s.sessionRepo.Approve(ctx, sessionID, fee)
		if err != nil {
			return err
		}
		if !approved {
			return ErrSessionNotPending
		}

		session.Status = model.SessionStatusApproved
		session.RegistrationFee = &fee
		go s.publisher.PublishSessionApproved(session)

		return nil

	case "reject":
		rejected, err := s.sessionRepo.Reject(ctx, sessionID, decision.Reason, decision.Feedback)
		if err != nil {
			return err
		}
		if !rejected {
			return ErrSessionNotPending
		}

		go s.publisher.PublishSessionRejected(sessionID, decision.Reason)

		return nil

	default:
		return ErrInvalidAction
	}
}

// Resubmit moves a rejected session back to pending and increments the
// attempt counter. Ownership is part of the conditional update, so a
// tutor can never resubmit someone else's session.
func (s *sessionService) Resubmit(ctx context.Context, sessionID uuid.UUID, tutorEmail string) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.TutorEmail != tutorEmail {
		return ErrNotSessionOwner
	}

	resubmitted, err := s.sessionRepo.Resubmit(ctx, sessionID, tutorEmail)
	if err != nil {
		return err
	}
	if !resubmitted {
		return ErrSessionNotRejected
	}

	return nil
}

func (s *sessionService) UpdateInfo(ctx context.Context, sessionID uuid.UUID, tutorEmail string, update repository.SessionUpdate) error {
	updated, err := s.sessionRepo.UpdateInfo(ctx, sessionID, tutorEmail, update)
	if err != nil {
		return err
	}
	if !updated {
		return ErrSessionNotFound
	}

	return nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	deleted, err := s.sessionRepo.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSessionNotFound
	}

	return nil
}
