package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lumigen/lumigen/application/port/inbound"
	"github.com/lumigen/lumigen/infrastructure/http/middleware"
	"github.com/lumigen/lumigen/infrastructure/http/response"
)

type GenerationHandler struct {
	generationUseCase inbound.GenerationUseCase
}

func NewGenerationHandler(generationUseCase inbound.GenerationUseCase) *GenerationHandler {
	return &GenerationHandler{generationUseCase: generationUseCase}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	ImageURL string `json:"imageUrl"`
}

func (h *GenerationHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	res, err := h.generationUseCase.GenerateImage(r.Context(), inbound.GenerateRequest{
		UserID: claims.UserID,
		Prompt: req.Prompt,
	})
	if err != nil {
		var genErr *inbound.GenerationFailedError
		switch {
		case errors.Is(err, inbound.ErrEmptyPrompt):
			response.BadRequest(w, "Prompt is required")
		case errors.Is(err, inbound.ErrNotEntitled):
			response.Forbidden(w, "Active subscription required")
		case errors.As(err, &genErr):
			response.BadRequest(w, genErr.Reason)
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.JSON(w, http.StatusOK, generateResponse{ImageURL: res.ImageURL})
}
