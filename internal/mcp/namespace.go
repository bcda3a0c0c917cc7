package mcp

import (
	"context"

	"github.com/checklistmcp/checklistmcp/internal/store"
)

// namespaceKey is an unexported type for the namespace context key, so it
// can never collide with a key set by another package.
type namespaceKey struct{}

// WithNamespace returns a context carrying the given namespace tag. The
// transport sets this before invoking a tool's Execute; handlers never see
// the transport that set it.
func WithNamespace(ctx context.Context, namespace string) context.Context {
	return context.WithValue(ctx, namespaceKey{}, namespace)
}

// NamespaceFrom extracts the namespace tag from ctx, defaulting to
// "default" when none was set (e.g. the stdio transport, which has exactly
// one client per process and always uses the default namespace).
func NamespaceFrom(ctx context.Context) string {
	if v, ok := ctx.Value(namespaceKey{}).(string); ok && v != "" {
		return v
	}
	return store.DefaultNamespace
}
