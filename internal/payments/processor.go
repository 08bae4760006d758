package payments

import (
	"context"
	"errors"
)

// ErrNoBalance is returned when the connected account reports no
// available balance entry at all.
var ErrNoBalance = errors.New("no balance available for account")

// ProcessorClient is the seam between the API and the payment
// processor. Handlers and services only see this interface, so tests
// substitute a mock and never touch the network.
type ProcessorClient interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (clientSecret string, err error)
	CreateConnectedAccount(ctx context.Context, email string) (accountID string, err error)
	CreateAccountLink(ctx context.Context, accountID string) (onboardingURL string, err error)
	RetrieveBalance(ctx context.Context, accountID string) (availableCents int64, currency string, err error)
}
