package authhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"yuconz/internal/domain/auth"
	"yuconz/internal/platform/requestctx"
	"yuconz/internal/transport/http/api"
	"yuconz/internal/transport/http/middleware"
)

type Handler struct {
	Authenticator *auth.Authenticator
	Secret        string
	TokenTTL      time.Duration
}

func NewHandler(authenticator *auth.Authenticator, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Authenticator: authenticator, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"loginTime"`
}

// HandleLogin authenticates and returns a bearer token bound to the new
// session. Failures map the two coarse exit codes and nothing more, so a
// caller cannot tell which check failed.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	role, ok := auth.ParseRole(payload.Role)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_role", "unknown role", requestctx.GetRequestID(r.Context()))
		return
	}

	session, err := h.Authenticator.Authenticate(r.Context(), payload.Username, payload.Password, role)
	if err != nil {
		slog.Error("credential store unavailable", "err", err)
		api.Fail(w, http.StatusServiceUnavailable, "store_unavailable", "authentication temporarily unavailable", requestctx.GetRequestID(r.Context()))
		return
	}

	switch session.ExitCode() {
	case auth.ExitLoginSuccess:
	case auth.ExitInvalidRole:
		api.Fail(w, http.StatusForbidden, "invalid_role", auth.ExitInvalidRole.String(), requestctx.GetRequestID(r.Context()))
		return
	default:
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", auth.ExitInvalidLogin.String(), requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, session, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, loginResponse{
		Token:     token,
		Username:  session.Username(),
		Role:      string(session.Role()),
		LoginTime: session.LoginTime(),
	}, requestctx.GetRequestID(r.Context()))
}

// HandleLogout destroys the caller's session. Repeating the call after
// the token stops resolving yields 401 from the session requirement, so
// logout is effectively idempotent at the edge.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	removed := h.Authenticator.Logout(session)
	api.Success(w, map[string]bool{"removed": removed}, requestctx.GetRequestID(r.Context()))
}
