package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumigen/lumigen/application/port/outbound"
)

type mockBillingUseCase struct {
	subscribed    bool
	checkoutURL   string
	checkoutErr   error
	applyErr      error
	lastPayload   []byte
	lastSignature string
}

func (m *mockBillingUseCase) CheckSubscription(ctx context.Context, userID string) (bool, error) {
	return m.subscribed, nil
}

func (m *mockBillingUseCase) InitiateCheckout(ctx context.Context, userID string) (string, error) {
	if m.checkoutErr != nil {
		return "", m.checkoutErr
	}
	return m.checkoutURL, nil
}

func (m *mockBillingUseCase) ApplyBillingEvent(ctx context.Context, payload []byte, signature string) error {
	m.lastPayload = payload
	m.lastSignature = signature
	return m.applyErr
}

func TestBillingHandler_CheckSubscription(t *testing.T) {
	h := NewBillingHandler(&mockBillingUseCase{subscribed: true})

	rec := httptest.NewRecorder()
	h.CheckSubscription(rec, authenticatedRequest(http.MethodGet, "/api/check-subscription", "", "user-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["subscribed"])
}

func TestBillingHandler_CheckSubscription_Unauthenticated(t *testing.T) {
	h := NewBillingHandler(&mockBillingUseCase{})

	rec := httptest.NewRecorder()
	h.CheckSubscription(rec, httptest.NewRequest(http.MethodGet, "/api/check-subscription", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBillingHandler_Subscribe(t *testing.T) {
	h := NewBillingHandler(&mockBillingUseCase{checkoutURL: "https://checkout.stripe.com/c/pay/cs_test"})

	rec := httptest.NewRecorder()
	h.Subscribe(rec, authenticatedRequest(http.MethodPost, "/api/subscribe", "", "user-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test", decodeBody(t, rec)["checkoutUrl"])
}

func TestBillingHandler_Subscribe_Failure(t *testing.T) {
	h := NewBillingHandler(&mockBillingUseCase{checkoutErr: fmt.Errorf("gateway down")})

	rec := httptest.NewRecorder()
	h.Subscribe(rec, authenticatedRequest(http.MethodPost, "/api/subscribe", "", "user-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Failed to start checkout", decodeBody(t, rec)["error"])
}

func TestBillingHandler_Webhook(t *testing.T) {
	uc := &mockBillingUseCase{}
	h := NewBillingHandler(uc)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"type":"checkout.session.completed"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
	assert.Equal(t, []byte(`{"type":"checkout.session.completed"}`), uc.lastPayload)
	assert.Equal(t, "t=1,v1=abc", uc.lastSignature)
}

func TestBillingHandler_Webhook_BadSignature(t *testing.T) {
	h := NewBillingHandler(&mockBillingUseCase{
		applyErr: fmt.Errorf("%w: bad signature", outbound.ErrEventVerification),
	})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=forged")
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "signature verification failed", body["error"])
}

func TestBillingHandler_Webhook_InternalError(t *testing.T) {
	h := NewBillingHandler(&mockBillingUseCase{applyErr: fmt.Errorf("db down")})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}
