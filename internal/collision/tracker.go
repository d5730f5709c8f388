package collision

import (
	"fmt"

	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/tag"
)

// Tracker records the keys added to one container level.
// It rejects duplicate names and notices distinct names that share a hash.
type Tracker struct {
	names      map[string]int    // name → insertion index
	hashes     map[uint32]string // hash → first name seen with it
	collisions int
}

// NewTracker creates a new tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:  make(map[string]int),
		hashes: make(map[uint32]string),
	}
}

// Track registers k at the next insertion index.
//
// Returns errs.ErrDuplicateKey when the name is already tracked. When another
// name already uses the same hash, that name is returned as collidesWith;
// this is not an error since lookups compare names.
func (t *Tracker) Track(k tag.Key) (collidesWith string, err error) {
	if _, exists := t.names[k.Name()]; exists {
		return "", fmt.Errorf("%w: %q", errs.ErrDuplicateKey, k.Name())
	}

	if existing, ok := t.hashes[k.Hash()]; ok {
		collidesWith = existing
		t.collisions++
	} else {
		t.hashes[k.Hash()] = k.Name()
	}

	t.names[k.Name()] = len(t.names)

	return collidesWith, nil
}

// Index returns the insertion index of name.
func (t *Tracker) Index(name string) (int, bool) {
	idx, ok := t.names[name]
	return idx, ok
}

// Collisions returns the number of tracked keys whose hash was already taken.
func (t *Tracker) Collisions() int {
	return t.collisions
}

// Count returns the number of tracked keys.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked keys, keeping allocated maps.
func (t *Tracker) Reset() {
	clear(t.names)
	clear(t.hashes)
	t.collisions = 0
}
