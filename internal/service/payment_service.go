package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/payments"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
)

// processorTimeout bounds every round trip to the payment processor,
// the only long-latency dependency of the service.
const processorTimeout = 10 * time.Second

var (
	ErrFreeSession     = errors.New("session has no registration fee to pay")
	ErrNotOnboarded    = errors.New("tutor has no connected payout account")
	ErrUpstreamPayment = errors.New("payment processor request failed")
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, sessionID uuid.UUID, studentEmail string) (clientSecret string, err error)
	CreateAccountLink(ctx context.Context, tutorEmail string) (onboardingURL string, err error)
	GetBalance(ctx context.Context, tutorEmail string) (availableCents int64, currency string, err error)
}

type paymentService struct {
	processor   payments.ProcessorClient
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewPaymentService(processor payments.ProcessorClient, userRepo repository.UserRepository, sessionRepo repository.SessionRepository) PaymentService {
	return &paymentService{
		processor:   processor,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// CreatePaymentIntent charges the registration fee of an approved
// session. The amount always comes from the stored session, never the
// client.
func (s *paymentService) CreatePaymentIntent(ctx context.Context, sessionID uuid.UUID, studentEmail string) (string, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session == nil || session.Status != model.SessionStatusApproved {
		return "", ErrSessionNotFound
	}
	if session.RegistrationFee == nil || *session.RegistrationFee == 0 {
		return "", ErrFreeSession
	}

	callCtx, cancel := context.WithTimeout(ctx, processorTimeout)
	defer cancel()

	amountCents := int64(*session.RegistrationFee) * 100
	clientSecret, err := s.processor.CreatePaymentIntent(callCtx, amountCents, "usd")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamPayment, err)
	}

	return clientSecret, nil
}

// CreateAccountLink onboards the tutor with the processor. The
// connected account is created on first use and remembered on the
// user record; later calls just mint a fresh onboarding link.
func (s *paymentService) CreateAccountLink(ctx context.Context, tutorEmail string) (string, error) {
	user, err := s.findUser(ctx, tutorEmail)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, processorTimeout)
	defer cancel()

	accountID := ""
	if user.StripeAccountID != nil {
		accountID = *user.StripeAccountID
	} else {
		accountID, err = s.processor.CreateConnectedAccount(callCtx, tutorEmail)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUpstreamPayment, err)
		}

		if err := s.userRepo.SetStripeAccountID(ctx, tutorEmail, accountID); err != nil {
			return "", err
		}
	}

	onboardingURL, err := s.processor.CreateAccountLink(callCtx, accountID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamPayment, err)
	}

	return onboardingURL, nil
}

func (s *paymentService) GetBalance(ctx context.Context, tutorEmail string) (int64, string, error) {
	user, err := s.findUser(ctx, tutorEmail)
	if err != nil {
		return 0, "", err
	}
	if user.StripeAccountID == nil {
		return 0, "", ErrNotOnboarded
	}

	callCtx, cancel := context.WithTimeout(ctx, processorTimeout)
	defer cancel()

	available, currency, err := s.processor.RetrieveBalance(callCtx, *user.StripeAccountID)
	if err != nil {
		if errors.Is(err, payments.ErrNoBalance) {
			return 0, "usd", nil
		}
		return 0, "", fmt.Errorf("%w: %v", ErrUpstreamPayment, err)
	}

	return available, currency, nil
}

func (s *paymentService) findUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
