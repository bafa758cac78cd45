package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"qmatrix/internal/domain/auth"
	"qmatrix/internal/transport/http/api"
	"qmatrix/internal/transport/http/middleware"
)

type Handler struct {
	Store    *auth.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(store *auth.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Store.FindByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if user.MFAEnabled {
		if payload.MFACode == "" {
			api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", middleware.GetRequestID(r.Context()))
			return
		}
		if !auth.VerifyTOTP(user.MFASecret, payload.MFACode) {
			api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
			return
		}
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]string{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	}, middleware.GetRequestID(r.Context()))
}

// HandleMFASetup issues a fresh TOTP secret for the authenticated user.
// The secret stays dormant until a code is confirmed via HandleMFAEnable.
func (h *Handler) HandleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	key, err := auth.NewTOTPKey(user.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to generate mfa secret", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.SetMFASecret(r.Context(), user.UserID, key.Secret()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to store mfa secret", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"secret": key.Secret(), "otpauthUrl": key.URL()}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFAEnable(w http.ResponseWriter, r *http.Request) {
	h.toggleMFA(w, r, true)
}

func (h *Handler) HandleMFADisable(w http.ResponseWriter, r *http.Request) {
	h.toggleMFA(w, r, false)
}

func (h *Handler) toggleMFA(w http.ResponseWriter, r *http.Request, enable bool) {
	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload mfaCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Store.FindByID(r.Context(), userCtx.UserID)
	if err != nil || user.MFASecret == "" {
		api.Fail(w, http.StatusBadRequest, "mfa_missing", "mfa setup required", middleware.GetRequestID(r.Context()))
		return
	}
	if !auth.VerifyTOTP(user.MFASecret, payload.Code) {
		api.Fail(w, http.StatusBadRequest, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.SetMFAEnabled(r.Context(), user.ID, enable); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_update_failed", "failed to update mfa", middleware.GetRequestID(r.Context()))
		return
	}

	status := "disabled"
	if enable {
		status = "enabled"
	}
	api.Success(w, map[string]string{"status": status}, middleware.GetRequestID(r.Context()))
}
