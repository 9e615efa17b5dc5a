// Package reports provides the in-memory report aggregate.
//
// The aggregate maps a reported target key to the set of distinct reporter
// ids seen for it. It is an explicit, injectable component: constructed
// empty at service start, owned by the moderation service, and never
// persisted, so pending report counts do not survive a restart. The reporter
// set that triggers an automatic ban is copied onto the ban row before the
// key is cleared, so the trigger evidence itself is durable.
package reports

import (
	"sort"
	"sync"

	"github.com/clatterline/messenger/pkg/keymutex"
)

// Aggregate accumulates distinct reporters per target key.
type Aggregate struct {
	mu        sync.RWMutex
	reporters map[string]map[string]struct{}
	locks     *keymutex.KeyMutex
}

// New creates an empty Aggregate.
func New() *Aggregate {
	return &Aggregate{
		reporters: make(map[string]map[string]struct{}),
		locks:     keymutex.New(),
	}
}

// Key builds the aggregation key for a target, optionally scoped to a group.
func Key(targetUserID, groupID string) string {
	if groupID == "" {
		return targetUserID
	}
	return targetUserID + ":" + groupID
}

// WithKey runs fn while holding the key's lock, keeping the whole
// check-add-threshold sequence atomic for concurrent reports on the same
// target.
func (a *Aggregate) WithKey(key string, fn func() error) error {
	return a.locks.WithLock(key, fn)
}

// Has reports whether reporterID already reported the key's target.
func (a *Aggregate) Has(key, reporterID string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.reporters[key][reporterID]
	return ok
}

// Add records reporterID for the key and returns the resulting count of
// distinct reporters.
func (a *Aggregate) Add(key, reporterID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	set, ok := a.reporters[key]
	if !ok {
		set = make(map[string]struct{})
		a.reporters[key] = set
	}
	set[reporterID] = struct{}{}
	return len(set)
}

// Count returns the number of distinct reporters recorded for the key.
func (a *Aggregate) Count(key string) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.reporters[key])
}

// Reporters returns the reporter ids recorded for the key, sorted for a
// deterministic persisted order.
func (a *Aggregate) Reporters(key string) []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	set := a.reporters[key]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clear drops the key's reporter set.
func (a *Aggregate) Clear(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.reporters, key)
}
