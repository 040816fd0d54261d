package personnelhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yuconz/internal/domain/personnel"
	"yuconz/internal/transport/http/api"
	"yuconz/internal/transport/http/middleware"
	"yuconz/internal/transport/http/shared"
)

type Handler struct {
	Service *personnel.Service
}

func NewHandler(service *personnel.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/personnel", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/{staffNo}", h.handleGet)
		r.Put("/{staffNo}", h.handleAmend)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	details, err := h.Service.Get(r.Context(), session, chi.URLParam(r, "staffNo"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, details, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload personnel.PersonalDetails
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if !h.validate(w, r, &payload) {
		return
	}

	if err := h.Service.Create(r.Context(), session, payload); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, payload, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAmend(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload personnel.PersonalDetails
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.StaffNo = chi.URLParam(r, "staffNo")
	if !h.validate(w, r, &payload) {
		return
	}

	if err := h.Service.Amend(r.Context(), session, payload); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, payload, middleware.GetRequestID(r.Context()))
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request, d *personnel.PersonalDetails) bool {
	v := shared.NewValidator()
	v.Required("staffNo", d.StaffNo, "staff number is required")
	v.Required("surname", d.Surname, "surname is required")
	v.Required("firstName", d.FirstName, "first name is required")
	if d.DateOfBirth != "" {
		v.Date("dateOfBirth", d.DateOfBirth)
	}
	return !v.Reject(w, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, personnel.ErrNotAuthorised):
		api.Fail(w, http.StatusForbidden, "forbidden", "not authorized", requestID)
	case errors.Is(err, personnel.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "personal details not found", requestID)
	case errors.Is(err, personnel.ErrStoreUnavailable):
		api.Fail(w, http.StatusServiceUnavailable, "store_unavailable", "storage temporarily unavailable", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "personnel_failed", "request failed", requestID)
	}
}
