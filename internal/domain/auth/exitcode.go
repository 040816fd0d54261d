package auth

// ExitCode is the outcome of one authentication attempt, or ExitLoggedOut
// once the session has been destroyed.
type ExitCode int

const (
	ExitLoginSuccess ExitCode = iota
	ExitInvalidLogin
	ExitInvalidRole
	ExitLoggedOut
)

var exitDescriptions = map[ExitCode]string{
	ExitLoginSuccess: "Authentication successful",
	ExitInvalidLogin: "Incorrect username or password",
	ExitInvalidRole:  "This user does not have permission for this role",
	ExitLoggedOut:    "This session has ended",
}

var exitNames = map[ExitCode]string{
	ExitLoginSuccess: "LOGIN_SUCCESS",
	ExitInvalidLogin: "INVALID_LOGIN",
	ExitInvalidRole:  "INVALID_ROLE",
	ExitLoggedOut:    "LOGGED_OUT",
}

// String returns the human-readable description of the code.
func (c ExitCode) String() string {
	return exitDescriptions[c]
}

// Name returns the stable identifier used in audit records.
func (c ExitCode) Name() string {
	return exitNames[c]
}
