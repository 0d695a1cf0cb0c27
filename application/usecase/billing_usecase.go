package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumigen/lumigen/application/port/inbound"
	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/domain/entity"
)

// BillingUseCase keeps the local entitlement flag in sync with the billing
// provider. The flag is only ever raised; cancellation handling lives with
// the provider.
type BillingUseCase struct {
	userRepository outbound.UserRepository
	gateway        outbound.BillingGateway
	logger         outbound.Logger
}

func NewBillingUseCase(
	userRepo outbound.UserRepository,
	gateway outbound.BillingGateway,
	log outbound.Logger,
) inbound.BillingUseCase {
	return &BillingUseCase{
		userRepository: userRepo,
		gateway:        gateway,
		logger:         log,
	}
}

func (uc *BillingUseCase) CheckSubscription(ctx context.Context, userID string) (bool, error) {
	user, err := uc.userRepository.FindByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load user: %w", err)
	}
	return user.Entitled(), nil
}

func (uc *BillingUseCase) InitiateCheckout(ctx context.Context, userID string) (string, error) {
	user, err := uc.userRepository.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	customerID, err := uc.ensureBillingIdentity(ctx, user)
	if err != nil {
		return "", err
	}

	checkoutURL, err := uc.gateway.CreateCheckoutSession(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return checkoutURL, nil
}

// ensureBillingIdentity returns the user's billing identity, creating one
// remotely exactly once. Repeated calls reuse the stored identity; a lost
// race against a concurrent call reuses whichever identity won.
func (uc *BillingUseCase) ensureBillingIdentity(ctx context.Context, user *entity.User) (string, error) {
	if customerID, ok := user.BillingIdentity(); ok {
		existing, err := uc.gateway.RetrieveCustomer(ctx, customerID)
		if err != nil {
			return "", fmt.Errorf("failed to retrieve billing customer: %w", err)
		}
		return existing, nil
	}

	customerID, err := uc.gateway.CreateCustomer(ctx, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to create billing customer: %w", err)
	}

	if err := uc.userRepository.AssignBillingIdentity(ctx, user.ID, customerID); err != nil {
		if errors.Is(err, outbound.ErrBillingIdentityTaken) {
			// A concurrent call assigned an identity first; the one we just
			// created is orphaned remotely and only logged.
			uc.logger.Warn(ctx, "billing identity race lost, reusing stored identity", map[string]interface{}{
				"user_id":             user.ID,
				"orphaned_customer_id": customerID,
			})
			fresh, ferr := uc.userRepository.FindByID(ctx, user.ID)
			if ferr != nil {
				return "", fmt.Errorf("failed to reload user: %w", ferr)
			}
			if winner, ok := fresh.BillingIdentity(); ok {
				return winner, nil
			}
			return "", fmt.Errorf("billing identity missing after lost race for user %s", user.ID)
		}
		return "", fmt.Errorf("failed to persist billing identity: %w", err)
	}

	return customerID, nil
}

func (uc *BillingUseCase) ApplyBillingEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := uc.gateway.VerifyEvent(payload, signature)
	if err != nil {
		outbound.LogSecurityEvent(ctx, uc.logger, "webhook_verification_failed", "MEDIUM", map[string]interface{}{
			"error": err.Error(),
		})
		if errors.Is(err, outbound.ErrEventVerification) {
			return err
		}
		return fmt.Errorf("%w: %v", outbound.ErrEventVerification, err)
	}

	if event.Type != outbound.EventCheckoutCompleted {
		uc.logger.Debug(ctx, "ignoring billing event", map[string]interface{}{
			"type": event.Type,
		})
		return nil
	}

	if event.CustomerID == "" {
		uc.logger.Warn(ctx, "checkout completed event without customer reference", nil)
		return nil
	}

	user, err := uc.userRepository.FindByBillingIdentity(ctx, event.CustomerID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			// Acknowledged but ignored: the provider may replay events for
			// identities this deployment never issued.
			uc.logger.Warn(ctx, "billing event matched no user", map[string]interface{}{
				"customer_id": event.CustomerID,
			})
			return nil
		}
		return fmt.Errorf("failed to look up user by billing identity: %w", err)
	}

	if err := uc.userRepository.MarkSubscribed(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	uc.logger.Info(ctx, "subscription activated", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}
