package payments

import (
	"context"
	"os"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/account"
	"github.com/stripe/stripe-go/v79/accountlink"
	"github.com/stripe/stripe-go/v79/balance"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

type StripeClient struct {
	refreshURL string
	returnURL  string
}

func NewStripeClient() *StripeClient {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	return &StripeClient{
		refreshURL: os.Getenv("STRIPE_ONBOARDING_REFRESH_URL"),
		returnURL:  os.Getenv("STRIPE_ONBOARDING_RETURN_URL"),
	}
}

func (c *StripeClient) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}

	return intent.ClientSecret, nil
}

func (c *StripeClient) CreateConnectedAccount(ctx context.Context, email string) (string, error) {
	params := &stripe.AccountParams{
		Params: stripe.Params{Context: ctx},
		Type:   stripe.String(string(stripe.AccountTypeExpress)),
		Email:  stripe.String(email),
	}

	acct, err := account.New(params)
	if err != nil {
		return "", err
	}

	return acct.ID, nil
}

func (c *StripeClient) CreateAccountLink(ctx context.Context, accountID string) (string, error) {
	params := &stripe.AccountLinkParams{
		Params:     stripe.Params{Context: ctx},
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(c.refreshURL),
		ReturnURL:  stripe.String(c.returnURL),
		Type:       stripe.String("account_onboarding"),
	}

	link, err := accountlink.New(params)
	if err != nil {
		return "", err
	}

	return link.URL, nil
}

func (c *StripeClient) RetrieveBalance(ctx context.Context, accountID string) (int64, string, error) {
	params := &stripe.BalanceParams{
		Params: stripe.Params{Context: ctx},
	}
	params.SetStripeAccount(accountID)

	bal, err := balance.Get(params)
	if err != nil {
		return 0, "", err
	}

	if len(bal.Available) == 0 {
		return 0, "", ErrNoBalance
	}

	return bal.Available[0].Amount, string(bal.Available[0].Currency), nil
}
