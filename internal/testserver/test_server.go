package testserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/rpggio/fcea/internal/logging"
	"github.com/rpggio/fcea/internal/mcp"
	"github.com/rpggio/fcea/internal/sharecode"
	"github.com/rpggio/fcea/internal/transport"
	"github.com/stretchr/testify/require"
)

// Now is the fixed clock every test server reports.
var Now = time.Date(2025, time.June, 3, 9, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return Now }

type TestServer struct {
	Server  *httptest.Server
	BaseURL string
}

// New starts an HTTP server seeded from query. An empty query seeds
// documented defaults.
func New(t *testing.T, query string) *TestServer {
	t.Helper()

	baseURL := "https://fcea.test/agreement"
	mcpServer := mcp.NewServer(mcp.Config{
		Seeder:  sharecode.QuerySeeder{Query: query},
		Clock:   fixedClock{},
		BaseURL: baseURL,
		Logger:  logging.Discard(),
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		MCP:     mcpHandler,
		BaseURL: baseURL,
		Clock:   fixedClock{},
		Logger:  logging.Discard(),
	}))
	t.Cleanup(server.Close)

	return &TestServer{Server: server, BaseURL: baseURL}
}

// Connect opens a new MCP session. Each session gets its own workspace.
func (ts *TestServer) Connect(t *testing.T) *Session {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"}, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
	})
	return &Session{ClientSession: session}
}

// Session wraps a client session with assertion helpers.
type Session struct {
	*sdkmcp.ClientSession
}

// Call invokes a tool and returns its raw result.
func (s *Session) Call(t *testing.T, name string, args any) *sdkmcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	return result
}

// CallInto invokes a tool that must succeed and decodes its text payload
// into out.
func (s *Session) CallInto(t *testing.T, name string, args any, out any) {
	t.Helper()
	result := s.Call(t, name, args)
	text := Text(t, result)
	require.False(t, result.IsError, "tool %s returned error: %s", name, text)
	require.NoError(t, json.Unmarshal([]byte(text), out))
}

// Text returns the first text content of a result.
func Text(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatalf("result has no text content")
	return ""
}
