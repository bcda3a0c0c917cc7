package store

import "time"

// WorkInfo is an immutable snapshot record created by save_current_work_info.
// Once inserted it is only ever replaced wholesale (the sessionId-overwrite
// rule), never mutated field-by-field.
type WorkInfo struct {
	WorkID          string  `json:"workId"`
	WorkTimestamp   string  `json:"work_timestamp"`
	WorkDescription string  `json:"work_description"`
	WorkSummarize   string  `json:"work_summarize"`
	SessionID       string  `json:"sessionId,omitempty"`
	WorkTasks       []*Task `json:"work_tasks,omitempty"`
}

// RecentWorkInfo is the lightweight summary getRecentList() returns: never
// the summary text or the task snapshot, just enough to pick a workId for
// a follow-up get_work_by_id call.
type RecentWorkInfo struct {
	WorkID          string `json:"workId"`
	WorkTimestamp   string `json:"work_timestamp"`
	WorkDescription string `json:"work_description"`
}

func cloneWorkInfo(w WorkInfo) WorkInfo {
	w.WorkTasks = DeepCopyForest(w.WorkTasks)
	return w
}

// WorkInfoStore is the namespace-scoped LRU of workId -> WorkInfo, fixed at
// capacity 10 regardless of MAX_SESSIONS configuration.
type WorkInfoStore struct {
	lru *LRU[string, WorkInfo]
}

// WorkInfoStoreCapacity is the fixed per-namespace capacity of the
// work-info store (not configurable — §5 capacity table).
const WorkInfoStoreCapacity = 10

// NewWorkInfoStore creates an empty work-info store.
func NewWorkInfoStore() *WorkInfoStore {
	return &WorkInfoStore{lru: NewLRU[string, WorkInfo](WorkInfoStoreCapacity)}
}

// Get returns a deep copy of the work-info for workId, promoting it to
// most-recent. The caller can never alias the store's internal snapshot.
func (s *WorkInfoStore) Get(workID string) (WorkInfo, bool) {
	w, ok := s.lru.Get(workID)
	if !ok {
		return WorkInfo{}, false
	}
	return cloneWorkInfo(w), true
}

// Set inserts w under w.WorkID, deep-copying its WorkTasks snapshot on the
// way in so the store never aliases a caller's live forest. Replacing an
// existing workId preserves its most-recent position.
func (s *WorkInfoStore) Set(w WorkInfo) {
	s.lru.Set(w.WorkID, cloneWorkInfo(w))
}

// RecentList returns the store's current entries as lightweight summaries,
// most-recent-first, without promoting anything.
func (s *WorkInfoStore) RecentList() []RecentWorkInfo {
	values := s.lru.Values()
	out := make([]RecentWorkInfo, len(values))
	for i, v := range values {
		out[i] = RecentWorkInfo{
			WorkID:          v.WorkID,
			WorkTimestamp:   v.WorkTimestamp,
			WorkDescription: v.WorkDescription,
		}
	}
	return out
}

// Len returns the number of work-info records currently stored.
func (s *WorkInfoStore) Len() int {
	return s.lru.Len()
}

// NowTimestamp formats the current instant as an ISO-8601 UTC timestamp
// with millisecond precision, matching the work_timestamp field contract.
func NowTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
