package outbound

import "context"

// PromptEnhancer rewrites a raw user prompt into a richer one for image
// generation. It is advisory only: any failure of the underlying model
// degrades to returning the raw prompt unchanged, so Enhance never errors.
type PromptEnhancer interface {
	Enhance(ctx context.Context, prompt string) string
}
