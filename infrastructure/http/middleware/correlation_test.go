package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumigen/lumigen/infrastructure/service/logger"
)

func TestCorrelationIDMiddleware_GeneratesAndPropagates(t *testing.T) {
	var gotCID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCID = logger.CorrelationID(r.Context())
	})

	rec := httptest.NewRecorder()
	CorrelationIDMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, gotCID)
	assert.Equal(t, gotCID, rec.Header().Get(CorrelationIDHeader))
}

func TestCorrelationIDMiddleware_KeepsIncomingID(t *testing.T) {
	var gotCID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCID = logger.CorrelationID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(CorrelationIDHeader, "cid-123")
	rec := httptest.NewRecorder()
	CorrelationIDMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, "cid-123", gotCID)
	assert.Equal(t, "cid-123", rec.Header().Get(CorrelationIDHeader))
}

func TestCorrelationID_TypedKeyIgnoresPlainStringValue(t *testing.T) {
	// A plain string key with the same name must not collide with the
	// typed key the logger reads.
	ctx := context.WithValue(context.Background(), "correlation_id", "spoofed") //nolint:staticcheck
	assert.Empty(t, logger.CorrelationID(ctx))

	ctx = logger.WithCorrelationID(context.Background(), "cid-456")
	assert.Equal(t, "cid-456", logger.CorrelationID(ctx))
}
