package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/service"
	"github.com/ltemarine/shiplog/internal/utils"
	"github.com/ltemarine/shiplog/models"
)

func (h *Handler) requestCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.APIError{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	token, err := h.services.AuthService.RequestCode(ctx, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSON(w, models.APIError{Error: "email is required"}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrUserNotFound):
			log.Err(err).Msg("no account for email")
			utils.WriteJSON(w, models.APIError{Error: "no account found for this email"}, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during code request")
			utils.WriteJSON(w, models.APIError{Error: "failed to send login code"}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.RequestCodeResponse{
		Success: true,
		Message: "login code sent",
		Token:   token,
	}, http.StatusOK)
}

func (h *Handler) verifyCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.APIError{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.OTP = strings.TrimSpace(req.OTP)

	session, err := h.services.AuthService.VerifyCode(ctx, req.Email, req.OTP, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSON(w, models.APIError{Error: "email and code are required"}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrCodeExpired):
			log.Err(err).Msg("code expired")
			utils.WriteJSON(w, models.APIError{Error: "code expired, request a new one"}, http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrCodeMismatch):
			log.Err(err).Msg("code rejected")
			utils.WriteJSON(w, models.APIError{Error: "invalid code"}, http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrUserNotFound):
			log.Err(err).Msg("no account for email")
			utils.WriteJSON(w, models.APIError{Error: "no account found for this email"}, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during code verification")
			utils.WriteJSON(w, models.APIError{Error: "verification failed"}, http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("email", session.User.Email).Str("role", session.User.Role).Msg("user successfully logged in")

	utils.WriteJSON(w, models.VerifyCodeResponse{
		Success:      true,
		User:         session.User,
		SessionToken: session.Token,
	}, http.StatusOK)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email, ok := utils.GetEmailFromContext(ctx)
	if !ok {
		log.Error().Msg("no email in authenticated request context")
		utils.WriteJSON(w, models.APIError{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.UserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			log.Err(err).Msg("account removed after session was issued")
			utils.WriteJSON(w, models.APIError{Error: "no account found for this email"}, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user lookup")
			utils.WriteJSON(w, models.APIError{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
