package mcp

import (
	"log/slog"

	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/sasha-s/go-deadlock"
)

const defaultWorkspace = "default"

// Workspaces holds one contract store per MCP session. Stores are created on
// first use and dropped once their session is gone.
type Workspaces struct {
	mu     deadlock.Mutex
	stores map[string]*contract.Store
	seeder contract.Seeder
	clock  contract.Clock
	logger *slog.Logger

	// live reports the keys of sessions still connected. Nil disables pruning.
	live func() map[string]bool
}

// NewWorkspaces creates an empty registry whose stores start from seeder.
func NewWorkspaces(seeder contract.Seeder, clock contract.Clock, logger *slog.Logger) *Workspaces {
	return &Workspaces{
		stores: make(map[string]*contract.Store),
		seeder: seeder,
		clock:  clock,
		logger: logger,
	}
}

// Get returns the store for key, creating it from the registry seeder.
func (w *Workspaces) Get(key string) *contract.Store {
	key = workspaceKey(key)
	w.mu.Lock()
	store, ok := w.stores[key]
	if ok {
		w.mu.Unlock()
		return store
	}
	store = contract.NewStore(w.seeder, w.clock, w.logger)
	w.stores[key] = store
	w.mu.Unlock()

	w.info("workspace created", "workspace", key)
	w.prune()
	return store
}

// Replace discards the store for key and starts a new one from seeder.
func (w *Workspaces) Replace(key string, seeder contract.Seeder) *contract.Store {
	key = workspaceKey(key)
	store := contract.NewStore(seeder, w.clock, w.logger)
	w.mu.Lock()
	w.stores[key] = store
	w.mu.Unlock()
	w.info("workspace replaced", "workspace", key)
	return store
}

// Drop forgets the store for key.
func (w *Workspaces) Drop(key string) {
	key = workspaceKey(key)
	w.mu.Lock()
	delete(w.stores, key)
	w.mu.Unlock()
}

// Len returns the number of open workspaces.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.stores)
}

func (w *Workspaces) prune() {
	if w.live == nil {
		return
	}
	live := w.live()

	w.mu.Lock()
	var dropped []string
	for key := range w.stores {
		if key != defaultWorkspace && !live[key] {
			delete(w.stores, key)
			dropped = append(dropped, key)
		}
	}
	w.mu.Unlock()

	for _, key := range dropped {
		w.info("workspace dropped", "workspace", key)
	}
}

func (w *Workspaces) info(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Info(msg, args...)
	}
}

func workspaceKey(sessionID string) string {
	if sessionID == "" {
		return defaultWorkspace
	}
	return sessionID
}
