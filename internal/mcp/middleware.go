package mcp

import (
	"context"

	"github.com/rpggio/fcea/internal/domain/contract"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const (
	workspaceKeyKey contextKey = iota
	storeKey
)

// getWorkspaceKey extracts the workspace key from context.
func getWorkspaceKey(ctx context.Context) string {
	v, _ := ctx.Value(workspaceKeyKey).(string)
	return workspaceKey(v)
}

// getStore extracts the session's contract store from context.
func getStore(ctx context.Context) *contract.Store {
	v, _ := ctx.Value(storeKey).(*contract.Store)
	return v
}

// workspaceMiddleware resolves the calling session's workspace for tool
// calls and resource reads.
func workspaceMiddleware(workspaces *Workspaces) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method != "tools/call" && method != "resources/read" {
				return next(ctx, method, req)
			}
			key := workspaceKey(safeSessionID(req))
			ctx = context.WithValue(ctx, workspaceKeyKey, key)
			ctx = context.WithValue(ctx, storeKey, workspaces.Get(key))
			return next(ctx, method, req)
		}
	}
}
