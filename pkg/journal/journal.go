// Package journal provides the append-only, time-ordered record of
// requests observed during a test run.
//
// A Journal is scoped to one test-run lifecycle: created at setup, reset
// or discarded at teardown. Record and Snapshot are safe under concurrent
// use from multiple test goroutines; Snapshot returns a consistent copy so
// verification never observes a partially written entry.
package journal

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/simwire/simwire/pkg/simulation"
)

// Entry is one observed request, tagged with the pattern that served it
// (nil if nothing matched) and the response actually returned.
type Entry struct {
	// ID is a unique identifier for the entry.
	ID string `json:"id"`

	// Timestamp is when the request was observed.
	Timestamp time.Time `json:"timestamp"`

	// Request is the live request exactly as observed.
	Request simulation.Request `json:"request"`

	// MatchedPattern references the request pattern that served the
	// response, or nil when the request went unmatched.
	MatchedPattern *simulation.RequestPattern `json:"matchedPattern,omitempty"`

	// ResponseStatus and ResponseBody record what was actually returned.
	ResponseStatus int    `json:"responseStatus"`
	ResponseBody   string `json:"responseBody,omitempty"`

	// Latency is the artificial delay applied before responding.
	Latency time.Duration `json:"latency,omitempty"`
}

// Matched reports whether the entry's request matched any declared pattern.
func (e *Entry) Matched() bool {
	return e.MatchedPattern != nil
}

// Journal is the append-only log. The zero value is not usable; construct
// with New.
type Journal struct {
	mu      sync.RWMutex
	entries []*Entry
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{entries: make([]*Entry, 0, 64)}
}

// Record appends an entry. It never blocks beyond lock acquisition, never
// drops entries, and never reorders. Missing IDs and timestamps are
// filled in.
func (j *Journal) Record(entry *Entry) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()
}

// Snapshot returns a consistent copy of all entries in record order.
func (j *Journal) Snapshot() []*Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]*Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Count returns the number of recorded entries.
func (j *Journal) Count() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Reset clears all entries. Idempotent; used between tests.
func (j *Journal) Reset() {
	j.mu.Lock()
	j.entries = j.entries[:0]
	j.mu.Unlock()
}

// Filter selects entries for inspection. Zero values leave the dimension
// unconstrained.
type Filter struct {
	// Method filters by exact request method.
	Method string
	// Destination filters by exact request destination.
	Destination string
	// PathPrefix filters by request path prefix.
	PathPrefix string
	// Matched filters by whether a pattern served the request.
	Matched *bool
	// Limit caps the number of returned entries; 0 means no cap.
	Limit int
}

// List returns entries passing the filter, newest first.
func (j *Journal) List(filter *Filter) []*Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]*Entry, 0, len(j.entries))
	for i := len(j.entries) - 1; i >= 0; i-- {
		entry := j.entries[i]
		if filter != nil && !filterAccepts(filter, entry) {
			continue
		}
		out = append(out, entry)
		if filter != nil && filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out
}

func filterAccepts(f *Filter, e *Entry) bool {
	if f.Method != "" && e.Request.Method != f.Method {
		return false
	}
	if f.Destination != "" && e.Request.Destination != f.Destination {
		return false
	}
	if f.PathPrefix != "" && !strings.HasPrefix(e.Request.Path, f.PathPrefix) {
		return false
	}
	if f.Matched != nil && e.Matched() != *f.Matched {
		return false
	}
	return true
}
