package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lumigen/lumigen/application/port/outbound"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIProvider generates images through the OpenAI Images API with fixed
// parameters: one image, URL response mode, configured output size.
type OpenAIProvider struct {
	apiKey     string
	model      string
	size       string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIProvider(apiKey, model, size string, timeout time.Duration) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  apiKey,
		model:   model,
		size:    size,
		baseURL: defaultOpenAIBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *OpenAIProvider) Name() string {
	return p.model
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (outbound.ProviderResult, error) {
	requestBody := map[string]interface{}{
		"model":           p.model,
		"prompt":          prompt,
		"n":               1,
		"size":            p.size,
		"response_format": "url",
	}
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return outbound.ProviderResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/images/generations", bytes.NewBuffer(jsonBody))
	if err != nil {
		return outbound.ProviderResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return outbound.ProviderResult{}, fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return outbound.ProviderResult{}, fmt.Errorf("OpenAI API error: %d - %s", resp.StatusCode, string(respBody))
	}

	var response struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return outbound.ProviderResult{}, fmt.Errorf("failed to decode response: %w", err)
	}

	// Zero entries is a successful-but-empty response, not a failure; the
	// orchestrator does not fall back on it.
	urls := make([]string, 0, len(response.Data))
	for _, d := range response.Data {
		if d.URL != "" {
			urls = append(urls, d.URL)
		}
	}
	return outbound.ProviderResult{URLs: urls}, nil
}
