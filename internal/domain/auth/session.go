package auth

import (
	"sync"
	"time"
)

// Session is the result of one authentication attempt. It is immutable
// after creation except for destruction: logging out clears the identity
// fields and sets the exit code to ExitLoggedOut, after which the session
// can never authorise anything again, even if a caller kept a reference.
type Session struct {
	mu        sync.RWMutex
	token     string
	loginTime time.Time
	username  string
	role      Role
	exitCode  ExitCode
}

func newSession(token string, loginTime time.Time, username string, role Role, code ExitCode) *Session {
	return &Session{
		token:     token,
		loginTime: loginTime,
		username:  username,
		role:      role,
		exitCode:  code,
	}
}

// NewDestroyedSession returns the placeholder session a client holds before
// its first login attempt. It is indistinguishable from a logged-out one.
func NewDestroyedSession() *Session {
	return &Session{exitCode: ExitLoggedOut}
}

// Token is the unique identifier keying this session in the registry.
// Empty for sessions that never authenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoginTime is when the user authenticated. Zero once destroyed.
func (s *Session) LoginTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loginTime
}

// Username is the authenticated user. Empty once destroyed.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Role is the role the user authenticated as. Empty once destroyed.
func (s *Session) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// ExitCode is the outcome recorded at authentication time, or
// ExitLoggedOut after destruction.
func (s *Session) ExitCode() ExitCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exitCode
}

// IsValid reports whether the session can be used for authorisation.
func (s *Session) IsValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exitCode == ExitLoginSuccess
}

// destroy clears identity fields and marks the session ended.
func (s *Session) destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.loginTime = time.Time{}
	s.username = ""
	s.role = ""
	s.exitCode = ExitLoggedOut
}
