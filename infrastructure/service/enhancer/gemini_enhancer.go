package enhancer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lumigen/lumigen/application/port/outbound"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// Enhanced prompts are capped at this many characters; longer model
	// output is cut to 997 characters plus a visible "..." marker.
	maxEnhancedLength = 1000

	enhanceInstruction = "You are an expert in crafting prompts specifically for DALL·E image generation. " +
		"Your task is to enhance the following input prompt while preserving its core idea. " +
		"Make the result vivid, emotionally engaging, and visually detailed. " +
		"Ensure strong composition, realistic lighting, and atmospheric depth. " +
		"Avoid adding excessive objects unless explicitly stated. " +
		"Keep the final prompt concise and under 1000 characters. " +
		"Input prompt: "
)

// GeminiEnhancer rewrites prompts through the Gemini generateContent API.
// Enhancement is best effort: every failure degrades to the raw prompt.
type GeminiEnhancer struct {
	apiKey     string
	model      string
	baseURL    string
	logger     outbound.Logger
	httpClient *http.Client
}

func NewGeminiEnhancer(apiKey, model string, timeout time.Duration, log outbound.Logger) *GeminiEnhancer {
	return &GeminiEnhancer{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		logger:  log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *GeminiEnhancer) Enhance(ctx context.Context, prompt string) string {
	enhanced, err := g.generateContent(ctx, enhanceInstruction+prompt)
	if err != nil {
		g.logger.Warn(ctx, "prompt enhancement failed, using raw prompt", map[string]interface{}{
			"error": err.Error(),
		})
		return prompt
	}

	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		return prompt
	}
	// The cap counts characters, not bytes, so multi-byte output is never
	// cut mid-rune.
	if utf8.RuneCountInString(enhanced) > maxEnhancedLength {
		runes := []rune(enhanced)
		return string(runes[:maxEnhancedLength-3]) + "..."
	}
	return enhanced
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiEnhancer) generateContent(ctx context.Context, text string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: text}}},
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API error: %d - %s", resp.StatusCode, string(respBody))
	}

	var response geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}
