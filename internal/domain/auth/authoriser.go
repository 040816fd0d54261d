package auth

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"yuconz/internal/domain/audit"
)

// RelationStore answers reviewer-relationship questions against the HR
// directory. Absence of a relationship is an ordinary deny, not an error.
type RelationStore interface {
	ListReviewees(ctx context.Context, username string) ([]string, error)
	IsReviewing(ctx context.Context, username, target string) (bool, error)
}

// Authoriser grants or denies one action on one target subject. Decisions
// fall into three policy classes: self-scoped (ownership), administrative
// (role membership alone) and relational (role membership plus a current
// reviewer relationship). Every decision is appended to the authorisation
// log; a failed append never blocks the decision.
type Authoriser struct {
	relations RelationStore
	sink      audit.Sink
	logger    *slog.Logger
	now       func() time.Time
}

func NewAuthoriser(relations RelationStore, sink audit.Sink) *Authoriser {
	return &Authoriser{
		relations: relations,
		sink:      sink,
		logger:    slog.Default(),
		now:       time.Now,
	}
}

// Authorize reports whether the session may perform the action on the
// target subject. An invalid session, an unknown permission or an
// unreachable relation store all yield deny; the caller learns nothing
// beyond the boolean.
func (a *Authoriser) Authorize(ctx context.Context, session *Session, action Permission, target string) bool {
	granted := session != nil && session.IsValid() && a.decide(ctx, session, action, target)

	rec := audit.Record{
		At:         a.now(),
		Permission: string(action),
		Target:     target,
		Outcome:    audit.OutcomeNotAuthorised,
	}
	if session != nil {
		rec.Username = session.Username()
		rec.Role = string(session.Role())
	}
	if granted {
		rec.Outcome = audit.OutcomeAuthorised
	}
	if err := a.sink.Append(ctx, audit.LogAuthorisation, rec); err != nil {
		a.logger.Warn("audit append failed", "log", audit.LogAuthorisation, "err", err)
	}
	return granted
}

func (a *Authoriser) decide(ctx context.Context, session *Session, action Permission, target string) bool {
	switch action {
	case PermReadPersonalDetails, PermAmendPersonalDetails, PermCreateAnnualReview,
		PermReadCurrentAnnualReview, PermReadPastAnnualReview:
		// Self-scoped: only subject-ownership is checked. The permission
		// catalog governs which actions a role is offered, not this
		// decision.
		return session.Username() == target

	case PermHRReadPersonalDetails, PermHRAmendPersonalDetails,
		PermCreatePersonalDetails, PermReadAnyAnnualReview:
		return RoleHasPermission(session.Role(), action)

	case PermReviewerAmendAnnualReview, PermReviewerReadPastAnnualReview,
		PermReviewerReadCurrentAnnualReview:
		if !RoleHasPermission(session.Role(), action) {
			return false
		}
		reviewees, err := a.relations.ListReviewees(ctx, session.Username())
		if err != nil {
			a.logger.Warn("reviewee lookup failed", "username", session.Username(), "err", err)
			return false
		}
		return slices.Contains(reviewees, target)

	case PermSignAnnualReview:
		// Signing is granted to the reviewee themselves or to anyone
		// currently reviewing them, whatever role they logged in under.
		if session.Username() == target {
			return true
		}
		reviewing, err := a.relations.IsReviewing(ctx, session.Username(), target)
		if err != nil {
			a.logger.Warn("reviewer lookup failed", "username", session.Username(), "err", err)
			return false
		}
		return reviewing

	default:
		return false
	}
}
