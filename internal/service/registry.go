package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/devtools-mcp/internal/providers/browser/devtools"
	"github.com/GriffinCanCode/devtools-mcp/internal/shared/types"
)

// Registry routes tool calls to the providers that define them
type Registry struct {
	mu       sync.RWMutex
	services map[string]Provider
	tools    map[string]Provider
}

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error)
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]Provider),
		tools:    make(map[string]Provider),
	}
}

// Register adds a service provider. Service and tool IDs must be unique
// across the registry.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[def.ID]; exists {
		return fmt.Errorf("service already registered: %s", def.ID)
	}
	for _, tool := range def.Tools {
		if tool.ID == "" {
			return fmt.Errorf("service %s: tool ID cannot be empty", def.ID)
		}
		if _, exists := r.tools[tool.ID]; exists {
			return fmt.Errorf("service %s: tool already registered: %s", def.ID, tool.ID)
		}
	}

	r.services[def.ID] = provider
	for _, tool := range def.Tools {
		r.tools[tool.ID] = provider
	}
	return nil
}

// List returns all registered services ordered by ID
func (r *Registry) List() []types.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]types.Service, 0, len(r.services))
	for _, p := range r.services {
		services = append(services, p.Definition())
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Execute runs a tool. Unknown tools yield a failed result, not an error.
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	r.mu.RLock()
	provider, ok := r.tools[toolID]
	r.mu.RUnlock()

	if !ok {
		return types.Failure(string(devtools.KindUnknownTool), "unknown tool: "+toolID)
	}
	return provider.Execute(ctx, toolID, params)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make(map[string]int)
	for _, p := range r.services {
		categories[string(p.Definition().Category)]++
	}

	return map[string]interface{}{
		"total_services": len(r.services),
		"total_tools":    len(r.tools),
		"categories":     categories,
	}
}
