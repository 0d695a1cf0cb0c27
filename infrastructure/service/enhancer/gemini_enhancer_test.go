package enhancer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/infrastructure/service/logger"
)

func testLogger() outbound.Logger {
	return logger.NewStructuredLogger(logger.LoggerConfig{Level: "debug", Format: "text", ServiceName: "enhancer-test"})
}

func newTestEnhancer(baseURL string) *GeminiEnhancer {
	e := NewGeminiEnhancer("test-key", "gemini-1.5-flash", 5*time.Second, testLogger())
	e.baseURL = baseURL
	return e
}

func geminiBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + jsonString(text) + `}]}}]}`
}

func jsonString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func TestGeminiEnhancer_Success(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiBody("  a vivid red fox in deep snow  ")))
	}))
	defer server.Close()

	e := newTestEnhancer(server.URL)
	result := e.Enhance(context.Background(), "a red fox")

	assert.Equal(t, "a vivid red fox in deep snow", result)
	assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

func TestGeminiEnhancer_TruncatesLongOutput(t *testing.T) {
	long := strings.Repeat("x", 1500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiBody(long)))
	}))
	defer server.Close()

	e := newTestEnhancer(server.URL)
	result := e.Enhance(context.Background(), "a red fox")

	require.Equal(t, 1000, utf8.RuneCountInString(result))
	assert.True(t, strings.HasSuffix(result, "..."))
	assert.Equal(t, strings.Repeat("x", 997), strings.TrimSuffix(result, "..."))
}

func TestGeminiEnhancer_TruncationCountsCharactersNotBytes(t *testing.T) {
	// 1200 two-byte characters: over the cap by character count.
	long := strings.Repeat("é", 1200)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiBody(long)))
	}))
	defer server.Close()

	e := newTestEnhancer(server.URL)
	result := e.Enhance(context.Background(), "a red fox")

	require.True(t, utf8.ValidString(result))
	require.Equal(t, 1000, utf8.RuneCountInString(result))
	assert.Equal(t, strings.Repeat("é", 997), strings.TrimSuffix(result, "..."))
}

func TestGeminiEnhancer_MultiByteUnderCapNotTruncated(t *testing.T) {
	// 600 characters but 1200 bytes: under the cap, must come back intact.
	text := strings.Repeat("é", 600)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiBody(text)))
	}))
	defer server.Close()

	e := newTestEnhancer(server.URL)
	assert.Equal(t, text, e.Enhance(context.Background(), "a red fox"))
}

func TestGeminiEnhancer_ServerErrorFallsBackToRawPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := newTestEnhancer(server.URL)
	assert.Equal(t, "a red fox", e.Enhance(context.Background(), "a red fox"))
}

func TestGeminiEnhancer_EmptyCandidateFallsBackToRawPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiBody("   ")))
	}))
	defer server.Close()

	e := newTestEnhancer(server.URL)
	assert.Equal(t, "a red fox", e.Enhance(context.Background(), "a red fox"))
}

func TestGeminiEnhancer_UnreachableFallsBackToRawPrompt(t *testing.T) {
	e := newTestEnhancer("http://127.0.0.1:1")
	assert.Equal(t, "a red fox", e.Enhance(context.Background(), "a red fox"))
}
