package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/leadsite/internal/core"
)

// WithRequestMetadata adds the client address and User-Agent to ctx so the
// submission flow can log where an application came from.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // already resolved by middleware.TrustedRealIP
	ua := r.Header.Get("User-Agent")
	ctx = core.ContextWithClientIP(ctx, ip)
	ctx = core.ContextWithUserAgent(ctx, ua)
	return ctx
}
