package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/lumigen/lumigen/application/port/inbound"
	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/infrastructure/http/middleware"
	"github.com/lumigen/lumigen/infrastructure/http/response"
)

// Stripe payloads are small; this bound guards against oversized bodies.
const maxWebhookBody = 1 << 20

type BillingHandler struct {
	billingUseCase inbound.BillingUseCase
}

func NewBillingHandler(billingUseCase inbound.BillingUseCase) *BillingHandler {
	return &BillingHandler{billingUseCase: billingUseCase}
}

type subscriptionResponse struct {
	Subscribed bool `json:"subscribed"`
}

type checkoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

type webhookResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (h *BillingHandler) CheckSubscription(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	subscribed, err := h.billingUseCase.CheckSubscription(r.Context(), claims.UserID)
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.JSON(w, http.StatusOK, subscriptionResponse{Subscribed: subscribed})
}

func (h *BillingHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	checkoutURL, err := h.billingUseCase.InitiateCheckout(r.Context(), claims.UserID)
	if err != nil {
		response.BadRequest(w, "Failed to start checkout")
		return
	}

	response.JSON(w, http.StatusOK, checkoutResponse{CheckoutURL: checkoutURL})
}

// Webhook is the billing provider's callback. It is not session
// authenticated; the payload signature is the sole authentication.
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.JSON(w, http.StatusBadRequest, webhookResponse{Success: false, Error: "failed to read payload"})
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if err := h.billingUseCase.ApplyBillingEvent(r.Context(), payload, signature); err != nil {
		if errors.Is(err, outbound.ErrEventVerification) {
			response.JSON(w, http.StatusBadRequest, webhookResponse{Success: false, Error: "signature verification failed"})
			return
		}
		response.JSON(w, http.StatusInternalServerError, webhookResponse{Success: false, Error: "internal error"})
		return
	}

	response.JSON(w, http.StatusOK, webhookResponse{Success: true})
}
