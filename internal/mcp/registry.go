package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Tool is the interface every registered tool must implement. checklistmcp
// wires six of them (update_tasks, mark_task_as_done, get_all_tasks,
// save_current_work_info, get_recent_works_info, get_work_by_id) in
// cmd/checklistmcp's buildRegistry.
type Tool interface {
	Name() string
	Description() string
	InputSchema() json.RawMessage
	Execute(ctx context.Context, params json.RawMessage) (*ToolsCallResult, error)
}

// Prompt is the interface for MCP prompts, keyed by Definition().Name.
type Prompt interface {
	Definition() PromptDefinition
	Get(arguments map[string]string) (*PromptsGetResult, error)
}

// Resource is the interface for MCP resources, keyed by Definition().URI.
type Resource interface {
	Definition() ResourceDefinition
	Read() (*ResourcesReadResult, error)
}

// catalog is a registration-ordered, string-keyed collection of a single
// kind of registrable thing. Registry holds three of these (tools, prompts,
// resources) rather than three hand-duplicated map+slice+mutex trios.
type catalog[V any] struct {
	mu    sync.RWMutex
	byKey map[string]V
	order []string
}

func newCatalog[V any]() *catalog[V] {
	return &catalog[V]{byKey: make(map[string]V)}
}

// register adds v under key. Panics on a duplicate key: registration only
// ever happens once, at process startup in buildRegistry, so a collision
// there is a wiring bug worth failing loudly on rather than masking.
func (c *catalog[V]) register(kind, key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byKey[key]; exists {
		panic(fmt.Sprintf("%s %q already registered", kind, key))
	}
	c.byKey[key] = v
	c.order = append(c.order, key)
}

func (c *catalog[V]) get(key string) (v V, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok = c.byKey[key]
	return v, ok
}

// list returns the registered values in registration order.
func (c *catalog[V]) list() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]V, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.byKey[key])
	}
	return out
}

func (c *catalog[V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byKey)
}

// Registry holds every tool, prompt, and resource the server exposes.
// One Registry is built once at startup (cmd/checklistmcp.buildRegistry)
// and shared read-only across every request afterward, both stdio and
// concurrent HTTP calls.
type Registry struct {
	tools     *catalog[Tool]
	prompts   *catalog[Prompt]
	resources *catalog[Resource]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:     newCatalog[Tool](),
		prompts:   newCatalog[Prompt](),
		resources: newCatalog[Resource](),
	}
}

// --- Tools ---

// Register adds a tool under its Name(). Panics on a duplicate name.
func (r *Registry) Register(t Tool) {
	r.tools.register("tool", t.Name(), t)
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) Tool {
	t, _ := r.tools.get(name)
	return t
}

// List returns every registered tool's wire definition, in registration
// order.
func (r *Registry) List() []ToolDefinition {
	tools := r.tools.list()
	defs := make([]ToolDefinition, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		})
	}
	return defs
}

// --- Prompts ---

// RegisterPrompt adds a prompt under its Definition().Name. Panics on a
// duplicate name.
func (r *Registry) RegisterPrompt(p Prompt) {
	r.prompts.register("prompt", p.Definition().Name, p)
}

// GetPrompt returns a prompt by name, or nil if not found.
func (r *Registry) GetPrompt(name string) Prompt {
	p, _ := r.prompts.get(name)
	return p
}

// ListPrompts returns every registered prompt's definition, in
// registration order.
func (r *Registry) ListPrompts() []PromptDefinition {
	prompts := r.prompts.list()
	defs := make([]PromptDefinition, 0, len(prompts))
	for _, p := range prompts {
		defs = append(defs, p.Definition())
	}
	return defs
}

// HasPrompts reports whether any prompt is registered; the initialize
// handshake only advertises the prompts capability when this is true.
func (r *Registry) HasPrompts() bool {
	return r.prompts.len() > 0
}

// --- Resources ---

// RegisterResource adds a resource under its Definition().URI. Panics on a
// duplicate URI.
func (r *Registry) RegisterResource(res Resource) {
	r.resources.register("resource", res.Definition().URI, res)
}

// GetResource returns a resource by URI, or nil if not found.
func (r *Registry) GetResource(uri string) Resource {
	res, _ := r.resources.get(uri)
	return res
}

// ListResources returns every registered resource's definition, in
// registration order.
func (r *Registry) ListResources() []ResourceDefinition {
	resources := r.resources.list()
	defs := make([]ResourceDefinition, 0, len(resources))
	for _, res := range resources {
		defs = append(defs, res.Definition())
	}
	return defs
}

// HasResources reports whether any resource is registered; the initialize
// handshake only advertises the resources capability when this is true.
func (r *Registry) HasResources() bool {
	return r.resources.len() > 0
}
