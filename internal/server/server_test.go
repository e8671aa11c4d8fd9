package server

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/torrowlabs/torrow-mcp/internal/config"
)

func TestHTTPContextFuncExtractsBearerToken(t *testing.T) {
	r := httptest.NewRequest("POST", "/mcp", nil)
	r.Header.Set("Authorization", "Bearer secret")

	ctx := HTTPContextFunc(context.Background(), r)

	if got := TokenFromContext(ctx); got != "secret" {
		t.Errorf("token = %q, want %q", got, "secret")
	}
	if !isHTTPTransport(ctx) {
		t.Error("context should be marked as HTTP transport")
	}
}

func TestHTTPContextFuncIgnoresOtherSchemes(t *testing.T) {
	r := httptest.NewRequest("POST", "/mcp", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	ctx := HTTPContextFunc(context.Background(), r)

	if got := TokenFromContext(ctx); got != "" {
		t.Errorf("token = %q, want empty", got)
	}
}

func TestRuntimeFactoryStdioUsesConfiguredToken(t *testing.T) {
	factory := runtimeFactory(&config.Config{Token: "configured"})

	rt, err := factory(context.Background())
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if rt.Service == nil || rt.Session == nil {
		t.Error("runtime is missing collaborators")
	}
}

func TestRuntimeFactoryHTTPRequiresBearerToken(t *testing.T) {
	factory := runtimeFactory(&config.Config{Token: "configured"})

	ctx := markHTTPTransport(context.Background())
	if _, err := factory(ctx); err == nil {
		t.Fatal("HTTP session without a bearer token must be rejected")
	}
}

func TestRuntimeFactoryHTTPWithToken(t *testing.T) {
	factory := runtimeFactory(&config.Config{})

	ctx := WithToken(markHTTPTransport(context.Background()), "session-token")
	if _, err := factory(ctx); err != nil {
		t.Fatalf("factory: %v", err)
	}
}

func TestRuntimeFactoryOmitAuthFallsBack(t *testing.T) {
	factory := runtimeFactory(&config.Config{Token: "configured", DangerouslyOmitAuth: true})

	ctx := markHTTPTransport(context.Background())
	if _, err := factory(ctx); err != nil {
		t.Fatalf("factory with DangerouslyOmitAuth: %v", err)
	}
}

func TestRuntimeFactoryWithoutAnyToken(t *testing.T) {
	factory := runtimeFactory(&config.Config{})

	if _, err := factory(context.Background()); err == nil {
		t.Fatal("a session without any token must be rejected")
	}
}

func TestNewRegistersWithoutPanicking(t *testing.T) {
	srv := New(&config.Config{ServerName: "torrow-mcp", Token: "t"})
	if srv == nil {
		t.Fatal("New returned nil")
	}
}
