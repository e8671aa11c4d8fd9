package session

import (
	"context"
	"sync"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/torrowlabs/torrow-mcp/internal/service"
)

// fallbackSessionID keys the runtime when the transport exposes no
// session identity (the stdio transport serves exactly one caller).
const fallbackSessionID = "stdio"

// Runtime bundles the per-session collaborators: one domain service
// (with its own root-context cache) and one selection cursor. Sharing
// either across sessions would leak one caller's selection or root
// context into another's requests, so runtimes are never reused across
// session ids.
type Runtime struct {
	Service *service.Service
	Session *Context
}

// Factory creates the runtime for a new session. It receives the call
// context so transport-level credentials (e.g. the HTTP bearer token)
// can flow into the client it builds.
type Factory func(ctx context.Context) (*Runtime, error)

// Manager lazily creates and caches one Runtime per MCP session id.
type Manager struct {
	factory Factory

	mu       sync.Mutex
	runtimes map[string]*Runtime
}

// NewManager returns a Manager that builds runtimes with factory.
func NewManager(factory Factory) *Manager {
	return &Manager{
		factory:  factory,
		runtimes: make(map[string]*Runtime),
	}
}

// Get returns the runtime for the session owning ctx, creating it on
// first use. The lock is held across the factory call so a session
// never ends up with two runtimes.
func (m *Manager) Get(ctx context.Context) (*Runtime, error) {
	return m.get(ctx, sessionID(ctx))
}

func (m *Manager) get(ctx context.Context, id string) (*Runtime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rt, ok := m.runtimes[id]; ok {
		return rt, nil
	}
	rt, err := m.factory(ctx)
	if err != nil {
		return nil, err
	}
	m.runtimes[id] = rt
	return rt, nil
}

// Remove forgets a session's runtime. Wired to the server's
// session-unregister hook so HTTP sessions don't accumulate.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runtimes, id)
}

// sessionID extracts the transport session id from the call context.
func sessionID(ctx context.Context) string {
	if cs := mcpserver.ClientSessionFromContext(ctx); cs != nil {
		return cs.SessionID()
	}
	return fallbackSessionID
}
