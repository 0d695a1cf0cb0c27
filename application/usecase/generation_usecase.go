package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumigen/lumigen/application/port/inbound"
	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/domain/entity"
)

// GenerationUseCase composes the generation pipeline: entitlement gate,
// prompt enhancement, provider orchestration, record keeping.
type GenerationUseCase struct {
	userRepository       outbound.UserRepository
	generationRepository outbound.GenerationRepository
	enhancer             outbound.PromptEnhancer
	generator            outbound.ImageGenerator
	logger               outbound.Logger
}

func NewGenerationUseCase(
	userRepo outbound.UserRepository,
	generationRepo outbound.GenerationRepository,
	enhancer outbound.PromptEnhancer,
	generator outbound.ImageGenerator,
	log outbound.Logger,
) inbound.GenerationUseCase {
	return &GenerationUseCase{
		userRepository:       userRepo,
		generationRepository: generationRepo,
		enhancer:             enhancer,
		generator:            generator,
		logger:               log,
	}
}

func (uc *GenerationUseCase) GenerateImage(ctx context.Context, req inbound.GenerateRequest) (*inbound.GenerateResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, inbound.ErrEmptyPrompt
	}

	user, err := uc.userRepository.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.Entitled() {
		uc.logger.Info(ctx, "generation rejected, no active subscription", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, inbound.ErrNotEntitled
	}

	start := time.Now()
	enhanced := uc.enhancer.Enhance(ctx, prompt)
	outbound.LogPerformance(ctx, uc.logger, "prompt_enhancement", time.Since(start), map[string]interface{}{
		"user_id": user.ID,
	})

	outcome, err := uc.generator.Generate(ctx, enhanced)
	if err != nil {
		uc.recordAttempt(ctx, user.ID, prompt, "")
		uc.logger.Error(ctx, "image generation failed", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	uc.recordAttempt(ctx, user.ID, prompt, outcome.AssetID)

	if !outcome.HasImage() {
		return nil, &inbound.GenerationFailedError{Reason: outcome.Reason}
	}

	return &inbound.GenerateResponse{ImageURL: "/static/" + outcome.AssetID}, nil
}

// recordAttempt persists the generation record. Failures are logged only:
// once the asset exists, record keeping must not fail the request.
func (uc *GenerationUseCase) recordAttempt(ctx context.Context, userID, prompt, assetID string) {
	record := entity.NewGenerationRecord(uuid.NewString(), userID, prompt, assetID)
	if err := uc.generationRepository.Create(ctx, record); err != nil {
		uc.logger.Error(ctx, "failed to persist generation record", err, map[string]interface{}{
			"user_id": userID,
		})
	}
}
