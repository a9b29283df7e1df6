package constants

// ContextKeyUserID is the key under which the authenticated user ID is stored
// in both the session and the request context.
const ContextKeyUserID = "user_id"

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "umuganda_session"

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// MaxEvidenceURLs caps the number of evidence attachments per report.
const MaxEvidenceURLs = 10
