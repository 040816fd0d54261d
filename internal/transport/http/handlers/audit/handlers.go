package audithandler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"yuconz/internal/domain/audit"
	"yuconz/internal/domain/auth"
	"yuconz/internal/transport/http/api"
	"yuconz/internal/transport/http/middleware"
	"yuconz/internal/transport/http/shared"
)

// Handler serves the audit read API. Both logs are append-only; the
// handler only ever lists and exports.
type Handler struct {
	Store *audit.Store
}

func NewHandler(store *audit.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Get("/authentication", h.listLog(audit.LogAuthentication))
		r.Get("/authorisation", h.listLog(audit.LogAuthorisation))
		r.Get("/authentication/export", h.exportLog(audit.LogAuthentication))
		r.Get("/authorisation/export", h.exportLog(audit.LogAuthorisation))
	})
}

// canReadAudit restricts the audit logs to directors and HR staff.
func canReadAudit(session *auth.Session) bool {
	if session == nil || !session.IsValid() {
		return false
	}
	role := session.Role()
	return role == auth.RoleDirector || role == auth.RoleHREmployee
}

func (h *Handler) listLog(log string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.GetSession(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
			return
		}
		if !canReadAudit(session) {
			api.Fail(w, http.StatusForbidden, "forbidden", "not authorized", middleware.GetRequestID(r.Context()))
			return
		}

		page := shared.ParsePagination(r, 100, 500)
		filter := audit.Filter{
			Username: r.URL.Query().Get("username"),
			Outcome:  r.URL.Query().Get("outcome"),
		}

		total, err := h.Store.Count(r.Context(), log, filter)
		if err != nil {
			slog.Warn("audit count failed", "log", log, "err", err)
		}

		records, err := h.Store.List(r.Context(), log, filter, page.Limit, page.Offset)
		if err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "store_unavailable", "storage temporarily unavailable", middleware.GetRequestID(r.Context()))
			return
		}

		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		api.Success(w, records, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) exportLog(log string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.GetSession(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
			return
		}
		if !canReadAudit(session) {
			api.Fail(w, http.StatusForbidden, "forbidden", "not authorized", middleware.GetRequestID(r.Context()))
			return
		}

		filter := audit.Filter{
			Username: r.URL.Query().Get("username"),
			Outcome:  r.URL.Query().Get("outcome"),
		}
		records, err := h.Store.List(r.Context(), log, filter, 10000, 0)
		if err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "store_unavailable", "storage temporarily unavailable", middleware.GetRequestID(r.Context()))
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+log+"-log.csv")
		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"occurred_at", "username", "role", "permission", "target", "outcome"}); err != nil {
			slog.Warn("audit export header failed", "err", err)
		}
		for _, rec := range records {
			row := []string{
				rec.At.Format(time.RFC3339),
				rec.Username,
				rec.Role,
				rec.Permission,
				rec.Target,
				rec.Outcome,
			}
			if err := writer.Write(row); err != nil {
				slog.Warn("audit export row failed", "err", err)
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			slog.Warn("audit export flush failed", "err", err)
		}
	}
}
