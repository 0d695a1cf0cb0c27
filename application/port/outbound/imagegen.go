package outbound

import "context"

// ImageProvider is one backend in the orchestrator's ordered fallback list.
// A nil error with zero URLs means the provider succeeded but returned no
// image; that case does not trigger fallback.
type ImageProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (ProviderResult, error)
}

type ProviderResult struct {
	URLs []string
}

// GenerationOutcome is the tagged result of a pipeline run: either an asset
// identifier or a human-readable reason why no image was produced.
type GenerationOutcome struct {
	AssetID string
	Reason  string
}

func ImageOutcome(assetID string) GenerationOutcome {
	return GenerationOutcome{AssetID: assetID}
}

func NoImageOutcome(reason string) GenerationOutcome {
	return GenerationOutcome{Reason: reason}
}

func (o GenerationOutcome) HasImage() bool {
	return o.AssetID != ""
}

// ImageGenerator drives the provider list and materializes the winning
// result as a stored asset. A non-nil error is fatal for the request
// (e.g. the image bytes could not be fetched or stored after a provider
// succeeded); provider exhaustion is reported as a NoImage outcome instead.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (GenerationOutcome, error)
}
