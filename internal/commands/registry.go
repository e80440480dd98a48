package commands

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yourusername/wabot/internal/errors"
)

// Registry manages command registration and dispatch
type Registry struct {
	commands map[string]Command
	aliases  map[string]string
	mu       sync.RWMutex
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(cmd.Name())
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	r.commands[name] = cmd
	return nil
}

// RegisterAlias maps an alternate spelling to an already registered command
func (r *Registry) RegisterAlias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.ToLower(name)
	if _, exists := r.commands[name]; !exists {
		return fmt.Errorf("cannot alias unknown command %s", name)
	}

	r.aliases[strings.ToLower(alias)] = name
	return nil
}

// Get retrieves a command by name or alias
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.ToLower(name)
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	cmd, exists := r.commands[name]
	return cmd, exists
}

// Has checks if a command exists in the registry
func (r *Registry) Has(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// List returns all registered command names
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// Execute runs a resolved command after checking permissions
func (r *Registry) Execute(cmd Command, ctx *Context) (*Response, error) {
	if !HasPermission(ctx.UserLevel, cmd.RequiredPermission()) {
		return nil, errors.NewPermissionError(PermissionLevelName(cmd.RequiredPermission()))
	}
	return cmd.Execute(ctx)
}
