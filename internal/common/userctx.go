package common

import "context"

// DefaultUserID scopes requests that carry no user identity (single-tenant mode).
const DefaultUserID = "default"

// UserContext holds per-request caller identity injected via X-Folio-* headers
// by the gateway in front of the API. When absent (nil), the server operates
// in single-tenant mode.
type UserContext struct {
	UserID          string
	DisplayCurrency string
}

type contextKey int

const userContextKey contextKey = iota

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}

// ResolveUserID returns the UserID from context, or DefaultUserID when no user context is present.
func ResolveUserID(ctx context.Context) string {
	if uc := UserContextFromContext(ctx); uc != nil && uc.UserID != "" {
		return uc.UserID
	}
	return DefaultUserID
}

// ResolveDisplayCurrency returns the user-context display currency if present,
// otherwise fallback.
func ResolveDisplayCurrency(ctx context.Context, fallback string) string {
	if uc := UserContextFromContext(ctx); uc != nil && uc.DisplayCurrency != "" {
		return uc.DisplayCurrency
	}
	return fallback
}
