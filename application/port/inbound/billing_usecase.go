package inbound

import "context"

type BillingUseCase interface {
	// CheckSubscription reads the current entitlement flag.
	CheckSubscription(ctx context.Context, userID string) (bool, error)
	// InitiateCheckout provisions (or reuses) the user's billing identity and
	// returns a hosted checkout URL. No local entitlement change happens here.
	InitiateCheckout(ctx context.Context, userID string) (string, error)
	// ApplyBillingEvent verifies and applies a billing-provider webhook.
	// Verification failures wrap outbound.ErrEventVerification; events that
	// match no user are acknowledged without error.
	ApplyBillingEvent(ctx context.Context, payload []byte, signature string) error
}
