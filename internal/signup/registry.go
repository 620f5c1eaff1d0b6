package signup

import (
	"sync"
	"time"
)

type registryEntry struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Registry keeps one wizard per browser session.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry), now: time.Now}
}

// Get returns the wizard for id, creating it on first use.
func (r *Registry) Get(id string) *Wizard {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		e = &registryEntry{wizard: NewWizard()}
		r.entries[id] = e
	}
	e.lastSeen = r.now()
	return e.wizard
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Prune drops wizards untouched for longer than maxIdle and reports how many
// went away. Wizards with a submission in flight are kept.
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) && !e.wizard.Submitting() {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}
