package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lumigen/lumigen/application/port/inbound"
	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/infrastructure/http/response"
	"github.com/lumigen/lumigen/infrastructure/http/validator"
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
}

func NewAuthHandler(authUseCase inbound.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID string `json:"id"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateEmail(req.Email) {
		response.BadRequest(w, "Invalid email format")
		return
	}
	if !validator.ValidateRequired(req.Password) {
		response.BadRequest(w, "Password is required")
		return
	}

	res, err := h.authUseCase.Signup(r.Context(), inbound.SignupRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, outbound.ErrUserAlreadyExists) {
			response.Conflict(w, "Email already registered")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.JSON(w, http.StatusCreated, signupResponse{ID: res.UserID})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.Email) || !validator.ValidateRequired(req.Password) {
		response.BadRequest(w, "Email and password are required")
		return
	}

	res, err := h.authUseCase.Login(r.Context(), inbound.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, inbound.ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid email or password")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{
		Token:     res.AccessToken,
		ExpiresIn: res.ExpiresIn,
	})
}
