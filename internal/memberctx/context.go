// Package memberctx carries the resolved membership through a request's
// context so downstream services can read the acting member without another
// store lookup.
package memberctx

import (
	"context"

	memberdomain "github.com/pitchfork-audio/pitchfork/internal/member/domain"
)

type contextKey struct{}

// WithMember returns a context carrying the resolved member.
func WithMember(ctx context.Context, m *memberdomain.Member) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext extracts the member placed by the authorization middleware.
func FromContext(ctx context.Context) (*memberdomain.Member, bool) {
	m, ok := ctx.Value(contextKey{}).(*memberdomain.Member)
	return m, ok
}
