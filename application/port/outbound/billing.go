package outbound

import (
	"context"
	"errors"
)

// ErrEventVerification marks a webhook payload whose signature does not
// match the configured secret. No state change may follow it.
var ErrEventVerification = errors.New("billing event verification failed")

// EventCheckoutCompleted is the only event type that transitions the
// entitlement flag. All other types are acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// BillingEvent is a verified, decoded billing notification. It is transient;
// nothing persists it.
type BillingEvent struct {
	Type       string
	CustomerID string
	Raw        []byte
}

type BillingGateway interface {
	CreateCustomer(ctx context.Context, email string) (string, error)
	RetrieveCustomer(ctx context.Context, customerID string) (string, error)
	CreateCheckoutSession(ctx context.Context, customerID string) (string, error)
	// VerifyEvent validates the payload signature and decodes the event.
	// Verification failures wrap ErrEventVerification.
	VerifyEvent(payload []byte, signature string) (BillingEvent, error)
}
