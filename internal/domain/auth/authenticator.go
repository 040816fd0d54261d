package auth

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"yuconz/internal/domain/audit"
)

// Credentials is the stored authentication record for one user.
type Credentials struct {
	PasswordHash string
	Roles        []Role
}

// CredentialStore looks up stored credentials. Lookup returns ErrNotFound
// for an unknown username; any other error means the store could not be
// reached and the caller cannot tell whether the user exists.
type CredentialStore interface {
	Lookup(ctx context.Context, username string) (Credentials, error)
}

// Authenticator verifies credentials against the store, issues Sessions
// and tracks the live ones in the registry. Every attempt, success or
// failure, is appended to the authentication log.
type Authenticator struct {
	creds    CredentialStore
	registry *Registry
	sink     audit.Sink
	logger   *slog.Logger
	now      func() time.Time
}

func NewAuthenticator(creds CredentialStore, registry *Registry, sink audit.Sink) *Authenticator {
	return &Authenticator{
		creds:    creds,
		registry: registry,
		sink:     sink,
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// Authenticate checks username/password and whether the stored record
// grants the requested role. It always returns a Session; the session's
// exit code carries the outcome. The error is non-nil only when the
// credential store was unreachable, in which case the session is an
// invalid-login one and the caller can distinguish "user doesn't exist"
// from "can't tell right now".
func (a *Authenticator) Authenticate(ctx context.Context, username, password string, role Role) (*Session, error) {
	var storeErr error
	exitCode := ExitLoginSuccess

	creds, err := a.creds.Lookup(ctx, username)
	switch {
	case errors.Is(err, ErrNotFound):
		exitCode = ExitInvalidLogin
	case err != nil:
		exitCode = ExitInvalidLogin
		storeErr = errors.Join(ErrStoreUnavailable, err)
	case bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil:
		exitCode = ExitInvalidLogin
	case !slices.Contains(creds.Roles, role):
		exitCode = ExitInvalidRole
	}

	session := newSession(uuid.NewString(), a.now(), username, role, exitCode)
	if session.IsValid() {
		a.registry.add(session)
	}

	a.append(ctx, audit.LogAuthentication, audit.Record{
		At:       session.LoginTime(),
		Username: username,
		Role:     string(role),
		Outcome:  exitCode.Name(),
	})
	return session, storeErr
}

// Logout removes the session from the live set and destroys it. The
// removal is idempotent: the return value reports whether the session was
// still registered. The session is destroyed regardless, so a retained
// reference can never authorise again.
func (a *Authenticator) Logout(session *Session) bool {
	if session == nil {
		return false
	}
	present := a.registry.remove(session.Token())
	session.destroy()
	return present
}

// Registry exposes the live-session set for transport-level lookups.
func (a *Authenticator) Registry() *Registry {
	return a.registry
}

func (a *Authenticator) append(ctx context.Context, log string, rec audit.Record) {
	if err := a.sink.Append(ctx, log, rec); err != nil {
		a.logger.Warn("audit append failed", "log", log, "err", err)
	}
}
