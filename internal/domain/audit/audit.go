package audit

import (
	"context"
	"time"
)

// Log names. Each logical log is total-ordered on its own; records from
// different logs interleave freely.
const (
	LogAuthentication = "authentication"
	LogAuthorisation  = "authorisation"
)

// Outcome values recorded for authorisation decisions.
const (
	OutcomeAuthorised    = "Authorised"
	OutcomeNotAuthorised = "Not Authorised"
)

// Record is one append-only audit entry. Authentication records carry
// Username, Role and Outcome (the exit code name); authorisation records
// additionally carry Permission and Target.
type Record struct {
	At         time.Time `json:"at"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Permission string    `json:"permission,omitempty"`
	Target     string    `json:"target,omitempty"`
	Outcome    string    `json:"outcome"`
}

// Sink appends records to a named log. Appends are fire-and-forget from
// the caller's point of view: a failed append degrades observability but
// must never change the decision that triggered it.
type Sink interface {
	Append(ctx context.Context, log string, rec Record) error
}
