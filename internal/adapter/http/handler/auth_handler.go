package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/papertrade/internal/adapter/http/dto"
	"github.com/iho/papertrade/internal/adapter/http/middleware"
	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/usecase"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (*domain.Account, string, error)
	Logout(ctx context.Context, token string) error
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

// AuthHandler handles registration and session HTTP requests.
type AuthHandler struct {
	accountUC  AuthService
	sessionTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountUC AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		accountUC:  accountUC,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new trading account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Login verifies credentials and starts a session. The token is returned
// in the body for API clients and set as a cookie for browsers.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, token, err := h.accountUC.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:   token,
		Account: dto.AccountFromDomain(account),
	})
}

// Logout destroys the current session. Logging out twice is fine.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionTokenFromRequest(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing session token", "")
		return
	}

	if err := h.accountUC.Logout(r.Context(), token); err != nil {
		writeDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
