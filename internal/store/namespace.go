package store

import "sync"

// DefaultNamespace is the pinned namespace used when the transport supplies
// none. It is never evicted and never counted toward MAX_NAMESPACES.
const DefaultNamespace = "default"

// Namespace owns one SessionStore and one WorkInfoStore — the complete
// state for one tenant bucket.
type Namespace struct {
	Sessions  *SessionStore
	WorkInfos *WorkInfoStore
}

func newNamespace(sessionCapacity int) *Namespace {
	return &Namespace{
		Sessions:  NewSessionStore(sessionCapacity),
		WorkInfos: NewWorkInfoStore(),
	}
}

// Registry is the process-wide, bounded LRU of namespaces. Namespace
// lookup-and-create is a single critical section guarded by its own mutex,
// separate from any per-namespace store lock. "default" is pinned: it is
// created eagerly, excluded from the eviction-candidate list, and never
// removed by eviction pressure.
type Registry struct {
	mu              sync.Mutex
	maxNamespaces   int
	sessionCapacity int
	namespaces      map[string]*Namespace
	order           []string // eviction order for non-default namespaces, oldest first
}

// NewRegistry creates a registry with the default namespace pre-created.
// maxNamespaces bounds non-default namespaces only; sessionCapacity is
// forwarded to every namespace's SessionStore (MAX_SESSIONS).
func NewRegistry(maxNamespaces, sessionCapacity int) *Registry {
	if maxNamespaces < 1 {
		maxNamespaces = 1
	}
	r := &Registry{
		maxNamespaces:   maxNamespaces,
		sessionCapacity: sessionCapacity,
		namespaces:      make(map[string]*Namespace),
	}
	r.namespaces[DefaultNamespace] = newNamespace(sessionCapacity)
	return r
}

// Get returns the namespace for name, creating it (and evicting the
// least-recently-addressed non-default namespace if at capacity) if it
// doesn't exist yet. name == "" is treated as DefaultNamespace.
func (r *Registry) Get(name string) *Namespace {
	if name == "" {
		name = DefaultNamespace
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ns, ok := r.namespaces[name]; ok {
		if name != DefaultNamespace {
			r.touch(name)
		}
		return ns
	}

	if name != DefaultNamespace && len(r.order) >= r.maxNamespaces {
		evict := r.order[0]
		r.order = r.order[1:]
		delete(r.namespaces, evict)
	}

	ns := newNamespace(r.sessionCapacity)
	r.namespaces[name] = ns
	if name != DefaultNamespace {
		r.order = append(r.order, name)
	}
	return ns
}

// touch moves name to the most-recently-addressed end of the eviction
// order. Called with r.mu already held.
func (r *Registry) touch(name string) {
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.order = append(r.order, name)
}

// Len returns the current number of namespaces, including "default".
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.namespaces)
}
