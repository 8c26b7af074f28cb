package http

import (
	"context"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
)

type principalKey struct{}

// WithPrincipal stores the authenticated caller in the context.
func WithPrincipal(ctx context.Context, principal *accountDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the authenticated caller stored by CookieAuthenticationMiddleware.
func GetPrincipal(ctx context.Context) (*accountDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*accountDomain.Principal)
	return principal, ok && principal != nil
}
