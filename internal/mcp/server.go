package mcp

import (
	"log/slog"

	"github.com/rpggio/fcea/internal/domain/contract"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config contains server configuration.
type Config struct {
	// Seeder supplies the state every new workspace starts from.
	Seeder contract.Seeder
	Clock  contract.Clock
	// BaseURL is the agreement URL share links are built on.
	BaseURL string
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server, _ := newServer(cfg)
	return server
}

func newServer(cfg Config) (*sdkmcp.Server, *Workspaces) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "fcea",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	workspaces := NewWorkspaces(cfg.Seeder, cfg.Clock, cfg.Logger)
	workspaces.live = func() map[string]bool {
		ids := map[string]bool{}
		for ss := range server.Sessions() {
			ids[workspaceKey(ss.ID())] = true
		}
		return ids
	}

	server.AddReceivingMiddleware(workspaceMiddleware(workspaces))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerDocResources(server)
	registerAgreementResources(server, workspaces)
	registerTools(server, &toolHandlers{
		workspaces: workspaces,
		baseURL:    cfg.BaseURL,
		logger:     cfg.Logger,
	})

	return server, workspaces
}
