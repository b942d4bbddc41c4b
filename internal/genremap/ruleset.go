package genremap

import "sync"

// Ruleset holds the active ordered pair list shared between the refresh
// path and track processing. The list is only ever replaced wholesale;
// readers never observe a partially built list.
type Ruleset struct {
	mu    sync.RWMutex
	pairs []Pair
}

// NewRuleset returns an empty ruleset.
func NewRuleset() *Ruleset {
	return &Ruleset{}
}

// Replace swaps in a newly built pair list, which may be empty.
func (r *Ruleset) Replace(pairs []Pair) {
	r.mu.Lock()
	r.pairs = pairs
	r.mu.Unlock()
}

// Pairs returns the current pair list. Callers must treat the returned
// slice as read-only.
func (r *Ruleset) Pairs() []Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pairs
}

// Len reports the number of active pairs.
func (r *Ruleset) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pairs)
}
