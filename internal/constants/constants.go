package constants

// ContextKeyUserID is the gin context / session key holding the authenticated user ID.
const ContextKeyUserID = "user_id"

// SessionName is the name of the session cookie.
const SessionName = "care_session"

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MinPasswordLength is the minimum accepted password length on signup.
const MinPasswordLength = 8

// DateLayout is the calendar-date format accepted by the materialization endpoint.
const DateLayout = "2006-01-02"
