package collision

import (
	"github.com/arloliu/alx/errs"
	"github.com/arloliu/alx/internal/hash"
)

// Tracker records segment names during a bake and rejects duplicates.
//
// Names are keyed by their xxHash64. Two different names sharing a hash are
// not an error; the tracker falls back to comparing the names themselves.
type Tracker struct {
	names        map[uint64][]string // hash -> names seen with that hash
	ordered      []string            // names in the order they were tracked
	hasCollision bool
}

// NewTracker creates a new tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:   make(map[uint64][]string),
		ordered: make([]string, 0),
	}
}

// Track records name. It returns errs.ErrInvalidSegmentName for an empty
// name and errs.ErrDuplicateSegment when the name was tracked before.
func (t *Tracker) Track(name string) error {
	if name == "" {
		return errs.ErrInvalidSegmentName
	}

	id := hash.ID(name)
	bucket := t.names[id]
	for _, existing := range bucket {
		if existing == name {
			return errs.ErrDuplicateSegment
		}
	}
	if len(bucket) > 0 {
		t.hasCollision = true
	}

	t.names[id] = append(bucket, name)
	t.ordered = append(t.ordered, name)

	return nil
}

// HasCollision reports whether two distinct names shared a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.ordered
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.ordered)
}

// Reset clears the tracker for reuse, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.names)
	t.ordered = t.ordered[:0]
	t.hasCollision = false
}
