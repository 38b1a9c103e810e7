// Package authctx carries the authenticated identity through a single
// request's context. The identity is installed by the auth middleware and is
// visible only to handlers running under that request's context, so isolation
// across concurrent requests and cleanup on every exit path come from the
// request context's own lifetime.
package authctx

import (
	"context"

	"github.com/tendant/simple-mall/pkg/sysuser"
)

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation. This technique
// for defining context keys was copied from Go 1.7's new use of context in net/http.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "authctx context value " + k.name
}

var identityKey = &contextKey{"Identity"}

// WithIdentity returns a child context carrying the authenticated user
func WithIdentity(ctx context.Context, user *sysuser.SysUser) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// IdentityFromContext returns the authenticated user installed by the auth
// middleware, or false when the request is unauthenticated
func IdentityFromContext(ctx context.Context) (*sysuser.SysUser, bool) {
	user, ok := ctx.Value(identityKey).(*sysuser.SysUser)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
