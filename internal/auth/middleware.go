package auth

import (
	"context"
	"net/http"

	"github.com/cargohub/cargohub/internal/platform/httpx"
	"github.com/cargohub/cargohub/internal/shared"
)

type ctxKey struct{}

// Middleware rejects requests whose key header does not resolve to a
// known caller and stores the caller on the request context.
func Middleware(provider *Provider, header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := provider.Resolve(r.Context(), r.Header.Get(header))
			if !ok {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the caller stored by Middleware.
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKey{}).(User)
	return u, ok
}
