package constants

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// Context keys set by the auth middleware
const (
	ContextKeyUserID   = "user_id"
	ContextKeyIdentity = "identity"
)
