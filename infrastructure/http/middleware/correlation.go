package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/lumigen/lumigen/infrastructure/service/logger"
)

const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationIDMiddleware ensures every request/response carries a
// correlation ID and exposes it to the logger via context.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(CorrelationIDHeader)
		if cid == "" {
			cid = generateCorrelationID()
		}
		w.Header().Set(CorrelationIDHeader, cid)
		next.ServeHTTP(w, r.WithContext(logger.WithCorrelationID(r.Context(), cid)))
	})
}

func generateCorrelationID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}
