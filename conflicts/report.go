// Package conflicts models the deployment conflict report returned by the
// backend. How conflicts are computed is the backend's business; this is a
// read-only projection with one rule: the last mod in each list wins.
package conflicts

import "sort"

// Report is an immutable view over a hash -> ordered mod id list mapping.
// List order encodes deployment precedence, so it is preserved exactly as
// received.
type Report struct {
	overwritten map[string][]string
}

// New copies the wire mapping into an immutable report.
func New(overwrittenHashes map[string][]string) *Report {
	copied := make(map[string][]string, len(overwrittenHashes))
	for hash, modIDs := range overwrittenHashes {
		ids := make([]string, len(modIDs))
		copy(ids, modIDs)
		copied[hash] = ids
	}
	return &Report{overwritten: copied}
}

// Empty reports whether any hash collided at all.
func (r *Report) Empty() bool {
	return r == nil || len(r.overwritten) == 0
}

// Len returns the number of colliding hashes.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.overwritten)
}

// Hashes returns the colliding content hashes, sorted for stable iteration.
func (r *Report) Hashes() []string {
	if r == nil {
		return nil
	}
	hashes := make([]string, 0, len(r.overwritten))
	for hash := range r.overwritten {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)
	return hashes
}

// Mods returns the full mod id list for a hash in deployment order.
func (r *Report) Mods(hash string) []string {
	if r == nil {
		return nil
	}
	modIDs, ok := r.overwritten[hash]
	if !ok {
		return nil
	}
	ids := make([]string, len(modIDs))
	copy(ids, modIDs)
	return ids
}

// Winner returns the mod whose content survived for the given hash.
func (r *Report) Winner(hash string) (string, bool) {
	if r == nil {
		return "", false
	}
	modIDs := r.overwritten[hash]
	if len(modIDs) == 0 {
		return "", false
	}
	return modIDs[len(modIDs)-1], true
}

// Losers returns, in deployment order, every mod whose content for the given
// hash was overwritten.
func (r *Report) Losers(hash string) []string {
	if r == nil {
		return nil
	}
	modIDs := r.overwritten[hash]
	if len(modIDs) < 2 {
		return nil
	}
	losers := make([]string, len(modIDs)-1)
	copy(losers, modIDs[:len(modIDs)-1])
	return losers
}
