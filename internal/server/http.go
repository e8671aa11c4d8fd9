package server

import (
	"context"
	"net/http"
	"strings"
)

type tokenKey struct{}
type httpTransportKey struct{}

// WithToken attaches a Torrow API token to the context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token attached by WithToken, or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// markHTTPTransport flags the context as belonging to an HTTP session.
func markHTTPTransport(ctx context.Context) context.Context {
	return context.WithValue(ctx, httpTransportKey{}, true)
}

// isHTTPTransport reports whether the call arrived over HTTP.
func isHTTPTransport(ctx context.Context) bool {
	flagged, _ := ctx.Value(httpTransportKey{}).(bool)
	return flagged
}

// HTTPContextFunc carries the request's bearer token into the MCP call
// context so each HTTP session authenticates as its own Torrow user.
// Wired into the streamable HTTP server via server.WithHTTPContextFunc.
func HTTPContextFunc(ctx context.Context, r *http.Request) context.Context {
	ctx = markHTTPTransport(ctx)
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
		ctx = WithToken(ctx, token)
	}
	return ctx
}
