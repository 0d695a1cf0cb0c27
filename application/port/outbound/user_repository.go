package outbound

import (
	"context"
	"errors"

	"github.com/lumigen/lumigen/domain/entity"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrBillingIdentityTaken = errors.New("billing identity already assigned")
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByBillingIdentity looks a user up by Stripe customer ID, the
	// secondary unique key used by the webhook flow.
	FindByBillingIdentity(ctx context.Context, customerID string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// AssignBillingIdentity sets the Stripe customer ID if and only if none
	// is assigned yet. Returns ErrBillingIdentityTaken when the user already
	// carries one; callers must re-read and reuse the winning identity.
	AssignBillingIdentity(ctx context.Context, userID, customerID string) error
	// MarkSubscribed flips the entitlement flag to true. The transition is
	// one-directional; nothing in this service sets it back to false.
	MarkSubscribed(ctx context.Context, userID string) error
}
