package billing

import (
	"context"
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/lumigen/lumigen/application/port/outbound"
)

// StripeGateway wraps the Stripe SDK behind the BillingGateway port:
// customer provisioning, hosted checkout sessions, and webhook signature
// verification against the shared endpoint secret.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	priceID       string
	successURL    string
	cancelURL     string
}

func NewStripeGateway(secretKey, webhookSecret, priceID, successURL, cancelURL string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
		priceID:       priceID,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe customer: %w", err)
	}
	return customer.ID, nil
}

func (g *StripeGateway) RetrieveCustomer(ctx context.Context, customerID string) (string, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx

	customer, err := g.api.Customers.Get(customerID, params)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve stripe customer: %w", err)
	}
	return customer.ID, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, customerID string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(g.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session.URL, nil
}

func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (outbound.BillingEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return outbound.BillingEvent{}, fmt.Errorf("%w: %v", outbound.ErrEventVerification, err)
	}

	billingEvent := outbound.BillingEvent{
		Type: string(event.Type),
		Raw:  payload,
	}

	if billingEvent.Type == outbound.EventCheckoutCompleted {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return outbound.BillingEvent{}, fmt.Errorf("failed to decode checkout session: %w", err)
		}
		if session.Customer != nil {
			billingEvent.CustomerID = session.Customer.ID
		}
	}

	return billingEvent, nil
}
