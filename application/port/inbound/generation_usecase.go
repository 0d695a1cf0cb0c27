package inbound

import (
	"context"
	"errors"
)

var (
	ErrEmptyPrompt = errors.New("prompt is required")
	ErrNotEntitled = errors.New("active subscription required")
)

// GenerationFailedError carries the client-visible reason when every
// provider failed or the winning provider returned no image.
type GenerationFailedError struct {
	Reason string
}

func (e *GenerationFailedError) Error() string {
	return e.Reason
}

type GenerateRequest struct {
	UserID string
	Prompt string
}

type GenerateResponse struct {
	ImageURL string
}

type GenerationUseCase interface {
	GenerateImage(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}
