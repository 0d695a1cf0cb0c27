package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lumigen/lumigen/application/port/outbound"
)

// Orchestrator drives an ordered provider list. Each provider is attempted
// exactly once; any failure advances to the next. A provider that succeeds
// with zero results ends the run as NoImage without further fallback.
type Orchestrator struct {
	providers []outbound.ImageProvider
	store     outbound.AssetStore
	logger    outbound.Logger
	fetcher   *http.Client
}

func NewOrchestrator(
	providers []outbound.ImageProvider,
	store outbound.AssetStore,
	timeout time.Duration,
	log outbound.Logger,
) *Orchestrator {
	return &Orchestrator{
		providers: providers,
		store:     store,
		logger:    log,
		fetcher: &http.Client{
			Timeout: timeout,
		},
	}
}

func (o *Orchestrator) Generate(ctx context.Context, prompt string) (outbound.GenerationOutcome, error) {
	for _, provider := range o.providers {
		result, err := provider.Generate(ctx, prompt)
		if err != nil {
			o.logger.Warn(ctx, "image provider failed, trying next", map[string]interface{}{
				"provider": provider.Name(),
				"error":    err.Error(),
			})
			continue
		}

		if len(result.URLs) == 0 {
			return outbound.NoImageOutcome(fmt.Sprintf("no image returned from provider %s", provider.Name())), nil
		}

		assetID, err := o.materialize(ctx, result.URLs[0])
		if err != nil {
			// The provider produced a result we could not persist; this is
			// fatal for the request rather than a reason to fall back.
			return outbound.GenerationOutcome{}, fmt.Errorf("failed to materialize image from %s: %w", provider.Name(), err)
		}

		o.logger.Info(ctx, "image generated", map[string]interface{}{
			"provider": provider.Name(),
			"asset_id": assetID,
		})
		return outbound.ImageOutcome(assetID), nil
	}

	return outbound.NoImageOutcome("image generation failed"), nil
}

// materialize fetches the provider's result bytes and stores them under a
// fresh random identifier with an image suffix.
func (o *Orchestrator) materialize(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create fetch request: %w", err)
	}

	resp, err := o.fetcher.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image bytes: %w", err)
	}

	assetID := uuid.NewString() + ".png"
	if err := o.store.Store(ctx, assetID, data); err != nil {
		return "", fmt.Errorf("failed to store asset: %w", err)
	}
	return assetID, nil
}
