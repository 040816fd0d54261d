package reviewhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"yuconz/internal/domain/auth"
	"yuconz/internal/domain/review"
	"yuconz/internal/reports"
	"yuconz/internal/transport/http/api"
	"yuconz/internal/transport/http/middleware"
)

type Handler struct {
	Service *review.Service
}

func NewHandler(service *review.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/current/{username}", h.handleCurrent)
		r.Get("/past/{username}", h.handlePast)
		r.Get("/{reviewID}", h.handleGet)
		r.Put("/{reviewID}", h.handleAmend)
		r.Post("/{reviewID}/signatures", h.handleSignOff)
		r.Delete("/{reviewID}/signatures", h.handleReset)
		r.Get("/{reviewID}/pdf", h.handlePDF)
	})
}

type reviewResponse struct {
	ID               int64                   `json:"id"`
	StaffNo          string                  `json:"staffNo"`
	RevieweeName     string                  `json:"revieweeName"`
	SupervisorNo     string                  `json:"supervisorNo"`
	SecondReviewerNo string                  `json:"secondReviewerNo"`
	Section          string                  `json:"section"`
	JobTitle         string                  `json:"jobTitle"`
	Recommendation   string                  `json:"recommendation"`
	PastPerformance  *review.PastPerformance `json:"pastPerformance"`
	FutureGoals      *review.FutureGoals     `json:"futureGoals"`
	Signatures       review.Signatures       `json:"signatures"`
	Complete         bool                    `json:"complete"`
	CompletionDate   *time.Time              `json:"completionDate,omitempty"`
}

func toResponse(r *review.AnnualReview) reviewResponse {
	resp := reviewResponse{
		ID:               r.ID,
		StaffNo:          r.StaffNo,
		RevieweeName:     r.RevieweeName,
		SupervisorNo:     r.SupervisorNo,
		SecondReviewerNo: r.SecondReviewerNo,
		Section:          r.Section,
		JobTitle:         r.JobTitle,
		Recommendation:   string(r.Recommendation),
		PastPerformance:  r.PastPerformance,
		FutureGoals:      r.FutureGoals,
		Signatures:       r.Signatures(),
		Complete:         r.IsComplete(),
	}
	if completed, ok := r.CompletionDate(); ok {
		resp.CompletionDate = &completed
	}
	return resp
}

type createRequest struct {
	Username string `json:"username"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	target := payload.Username
	if target == "" {
		target = session.Username()
	}

	created, err := h.Service.CreateReview(r.Context(), session, target)
	if err != nil {
		h.fail(w, r, err, "review_create_failed")
		return
	}
	api.Created(w, toResponse(created), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	current, err := h.Service.CurrentReview(r.Context(), session, chi.URLParam(r, "username"))
	if err != nil {
		h.fail(w, r, err, "review_read_failed")
		return
	}
	api.Success(w, toResponse(current), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePast(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	past, err := h.Service.PastReviews(r.Context(), session, chi.URLParam(r, "username"))
	if err != nil {
		h.fail(w, r, err, "review_read_failed")
		return
	}

	responses := make([]reviewResponse, 0, len(past))
	for _, rev := range past {
		responses = append(responses, toResponse(rev))
	}
	api.Success(w, responses, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	session, reviewID, ok := h.sessionAndID(w, r)
	if !ok {
		return
	}

	rev, err := h.Service.Review(r.Context(), session, reviewID)
	if err != nil {
		h.fail(w, r, err, "review_read_failed")
		return
	}
	api.Success(w, toResponse(rev), middleware.GetRequestID(r.Context()))
}

type amendRequest struct {
	Section         *string                 `json:"section"`
	JobTitle        *string                 `json:"jobTitle"`
	Recommendation  *string                 `json:"recommendation"`
	PastPerformance *review.PastPerformance `json:"pastPerformance"`
	FutureGoals     *review.FutureGoals     `json:"futureGoals"`
}

func (h *Handler) handleAmend(w http.ResponseWriter, r *http.Request) {
	session, reviewID, ok := h.sessionAndID(w, r)
	if !ok {
		return
	}

	var payload amendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	amendment := review.Amendment{
		Section:         payload.Section,
		JobTitle:        payload.JobTitle,
		PastPerformance: payload.PastPerformance,
		FutureGoals:     payload.FutureGoals,
	}
	if payload.Recommendation != nil {
		rec, ok := review.ParseRecommendation(*payload.Recommendation)
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_recommendation", "unknown recommendation", middleware.GetRequestID(r.Context()))
			return
		}
		amendment.Recommendation = &rec
	}

	amended, err := h.Service.Amend(r.Context(), session, reviewID, amendment)
	if err != nil {
		h.fail(w, r, err, "review_amend_failed")
		return
	}
	api.Success(w, toResponse(amended), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSignOff(w http.ResponseWriter, r *http.Request) {
	session, reviewID, ok := h.sessionAndID(w, r)
	if !ok {
		return
	}

	signed, err := h.Service.SignOff(r.Context(), session, reviewID)
	if err != nil {
		h.fail(w, r, err, "review_sign_failed")
		return
	}
	api.Success(w, map[string]bool{"signed": signed}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	session, reviewID, ok := h.sessionAndID(w, r)
	if !ok {
		return
	}

	cleared, err := h.Service.ResetSignatures(r.Context(), session, reviewID)
	if err != nil {
		h.fail(w, r, err, "review_reset_failed")
		return
	}
	if !cleared {
		api.Fail(w, http.StatusConflict, "review_complete", "completed reviews are immutable", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"reset": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	session, reviewID, ok := h.sessionAndID(w, r)
	if !ok {
		return
	}

	rev, err := h.Service.Review(r.Context(), session, reviewID)
	if err != nil {
		h.fail(w, r, err, "review_read_failed")
		return
	}

	payload, err := reports.RenderReviewPDF(rev)
	if err != nil {
		h.fail(w, r, err, "review_pdf_failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=annual-review-"+strconv.FormatInt(reviewID, 10)+".pdf")
	_, _ = w.Write(payload)
}

func (h *Handler) sessionAndID(w http.ResponseWriter, r *http.Request) (*auth.Session, int64, bool) {
	s, found := middleware.GetSession(r.Context())
	if !found {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return nil, 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_review_id", "review id must be numeric", middleware.GetRequestID(r.Context()))
		return nil, 0, false
	}
	return s, id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, code string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, review.ErrNotAuthorised):
		api.Fail(w, http.StatusForbidden, "forbidden", "not authorized", requestID)
	case errors.Is(err, review.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "review not found", requestID)
	case errors.Is(err, review.ErrNotEligible):
		api.Fail(w, http.StatusConflict, "not_eligible", "a new review cannot be created yet", requestID)
	case errors.Is(err, review.ErrReviewComplete):
		api.Fail(w, http.StatusConflict, "review_complete", "completed reviews are immutable", requestID)
	case errors.Is(err, review.ErrReviewOpen):
		api.Fail(w, http.StatusConflict, "review_open", "review is not complete yet", requestID)
	case errors.Is(err, review.ErrStoreUnavailable):
		api.Fail(w, http.StatusServiceUnavailable, "store_unavailable", "storage temporarily unavailable", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, "request failed", requestID)
	}
}
