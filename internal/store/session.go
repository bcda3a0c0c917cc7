package store

// SessionEntry is the value held per sessionId in a SessionStore: the
// live task forest plus an optional association with a work-info record,
// used by save_current_work_info's overwrite rule. Eviction removes both
// fields together — there is no way to evict the forest while keeping the
// association alive.
type SessionEntry struct {
	Forest       []*Task
	AssocWorkID  string
	HasAssocWork bool
}

// SessionStore is the namespace-scoped LRU of sessionId -> SessionEntry.
type SessionStore struct {
	lru *LRU[string, SessionEntry]
}

// NewSessionStore creates an empty session store with the given capacity
// (MAX_SESSIONS).
func NewSessionStore(capacity int) *SessionStore {
	return &SessionStore{lru: NewLRU[string, SessionEntry](capacity)}
}

// Get returns the entry for sessionId, promoting it to most-recent.
func (s *SessionStore) Get(sessionID string) (SessionEntry, bool) {
	return s.lru.Get(sessionID)
}

// Has reports whether sessionId is present, without promoting it.
func (s *SessionStore) Has(sessionID string) bool {
	return s.lru.Has(sessionID)
}

// Set stores entry under sessionId, promoting it to most-recent.
func (s *SessionStore) Set(sessionID string, entry SessionEntry) {
	s.lru.Set(sessionID, entry)
}

// Len returns the number of sessions currently stored.
func (s *SessionStore) Len() int {
	return s.lru.Len()
}

// UpdateForest fetches the current forest for sessionId (empty if absent),
// applies fn to compute the new forest, and writes the result back —
// creating the session entry if none existed, promoting it otherwise. Any
// existing work-info association is preserved across the write.
func (s *SessionStore) UpdateForest(sessionID string, fn func(current []*Task) []*Task) []*Task {
	entry, _ := s.lru.Get(sessionID)
	updated := fn(entry.Forest)
	entry.Forest = updated
	s.lru.Set(sessionID, entry)
	return updated
}

// AssociateWorkID records assocWorkID against an existing sessionId entry.
// It is a no-op if the session has no entry yet: save_current_work_info
// must not create a "ghost" session purely as a side effect of saving work
// info (see the open-question decision in the design notes).
func (s *SessionStore) AssociateWorkID(sessionID, workID string) {
	entry, ok := s.lru.Get(sessionID)
	if !ok {
		return
	}
	entry.AssocWorkID = workID
	entry.HasAssocWork = true
	s.lru.Set(sessionID, entry)
}
