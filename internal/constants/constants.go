package constants

import "time"

const (
	// ContextKeyUserID is the gin context key holding the authenticated user's uuid.UUID.
	ContextKeyUserID = "user_id"

	// DefaultTokenTTL is the lifetime of issued access tokens (31 days).
	DefaultTokenTTL = 31 * 24 * time.Hour

	// ShutdownTimeout bounds the graceful shutdown drain.
	ShutdownTimeout = 10 * time.Second

	// SuggestionTimeout bounds a single assignee suggestion round trip.
	SuggestionTimeout = 30 * time.Second
)
