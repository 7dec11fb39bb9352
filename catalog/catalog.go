package catalog

import (
	"cmp"
	"slices"

	"github.com/arloliu/alx/container"
	"github.com/arloliu/alx/section"
)

// StatsKey is the statistics key of a record: every numeric field that
// identifies a variant, plus the raw name. Provenance is not part of it.
type StatsKey struct {
	MaxHP     int32
	Exp       uint16
	Gold      uint16
	Attack    int16
	Defense   int16
	MagDef    int16
	Quick     int16
	Agile     int16
	Level     int16
	Counter   int16
	Danger    int16
	ElementID int8
	Width     int8
	Depth     int8
	Will      int16
	Vigor     int16
	Hit       int16
	Name      [section.EnemyNameSize]byte
}

// KeyOf returns the statistics key of r.
func KeyOf(r *section.EnemyRecord) StatsKey {
	return StatsKey{
		MaxHP:     r.MaxHP,
		Exp:       r.Exp,
		Gold:      r.Gold,
		Attack:    r.Attack,
		Defense:   r.Defense,
		MagDef:    r.MagDef,
		Quick:     r.Quick,
		Agile:     r.Agile,
		Level:     r.Level,
		Counter:   r.Counter,
		Danger:    r.Danger,
		ElementID: r.ElementID,
		Width:     r.Width,
		Depth:     r.Depth,
		Will:      r.Will,
		Vigor:     r.Vigor,
		Hit:       r.Hit,
		Name:      r.NameJP,
	}
}

// Contribution is one record as read from one source file.
type Contribution struct {
	Tag      string
	Identity int32
	Enemy    section.EnemyRecord
	Actions  []container.Action
}

// FromRecords converts parsed records to contributions, keeping their order.
func FromRecords(records []container.Record) []Contribution {
	out := make([]Contribution, len(records))
	for i, r := range records {
		out[i] = Contribution{Tag: r.Tag, Identity: r.Identity, Enemy: r.Enemy, Actions: r.Actions}
	}

	return out
}

// Entry is one surviving record variant of a catalog.
type Entry struct {
	Identity int32 `cbor:"identity"`
	// Tag is the presentation tag: Wildcard or a concrete file name.
	Tag string `cbor:"tag"`
	// Source is the tag of the contribution that was retained.
	Source string `cbor:"source"`
	// Sources lists every distinct tag that contributed this variant,
	// in first-seen order.
	Sources   []string            `cbor:"sources"`
	MultiFile bool                `cbor:"multi_file"`
	Enemy     section.EnemyRecord `cbor:"enemy"`
	Actions   []container.Action  `cbor:"actions,omitempty"`
}

// Order returns the priority order of the retained contribution.
func (e *Entry) Order() int {
	return Order(e.Source)
}

// IsGlobal reports whether the entry carries the wildcard tag.
func (e *Entry) IsGlobal() bool {
	return e.Tag == Wildcard
}

// ActionList is the action tail of one catalog entry.
type ActionList struct {
	Identity int32
	Tag      string
	Actions  []container.Action
}

// Catalog is the reconciled set of record variants, sorted by identity, then
// wildcard first, then tag name.
type Catalog struct {
	Entries []Entry `cbor:"entries"`
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.Entries)
}

// Lookup returns the entries of one identity in catalog order.
func (c *Catalog) Lookup(identity int32) []Entry {
	start, _ := slices.BinarySearchFunc(c.Entries, identity, func(e Entry, id int32) int {
		return cmp.Compare(e.Identity, id)
	})

	end := start
	for end < len(c.Entries) && c.Entries[end].Identity == identity {
		end++
	}

	return c.Entries[start:end]
}

// Actions returns one action list per entry that has actions, in catalog order.
func (c *Catalog) Actions() []ActionList {
	lists := make([]ActionList, 0, len(c.Entries))
	for i := range c.Entries {
		e := &c.Entries[i]
		if len(e.Actions) == 0 {
			continue
		}
		lists = append(lists, ActionList{Identity: e.Identity, Tag: e.Tag, Actions: e.Actions})
	}

	return lists
}

type groupKey struct {
	identity int32
	stats    StatsKey
}

// Reconcile merges contributions from every source file into a catalog.
//
// Contributions with the same identity and statistics key are merged; the
// one with the lowest priority order is retained, the first one on ties. A
// merged variant seen under two or more distinct tags is multi-file.
//
// Variants are then promoted per identity. A lone variant takes the wildcard
// tag if it is multi-file. Among several variants, ordered by (priority
// order, tag), the first takes the wildcard tag if its order is at most
// OrderEvent or it is multi-file; the rest keep their file tags.
func Reconcile(contribs []Contribution) *Catalog {
	index := make(map[groupKey]int, len(contribs))
	merged := make([]Entry, 0, len(contribs))

	for i := range contribs {
		c := &contribs[i]
		key := groupKey{identity: c.Identity, stats: KeyOf(&c.Enemy)}

		pos, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, Entry{
				Identity: c.Identity,
				Source:   c.Tag,
				Sources:  []string{c.Tag},
				Enemy:    c.Enemy,
				Actions:  c.Actions,
			})

			continue
		}

		e := &merged[pos]
		if !slices.Contains(e.Sources, c.Tag) {
			e.Sources = append(e.Sources, c.Tag)
			e.MultiFile = true
		}
		if Order(c.Tag) < Order(e.Source) {
			e.Source = c.Tag
			e.Enemy = c.Enemy
			e.Actions = c.Actions
		}
	}

	byIdentity := make(map[int32][]int)
	identities := make([]int32, 0)
	for i := range merged {
		id := merged[i].Identity
		if _, ok := byIdentity[id]; !ok {
			identities = append(identities, id)
		}
		byIdentity[id] = append(byIdentity[id], i)
	}

	for _, id := range identities {
		promote(merged, byIdentity[id])
	}

	slices.SortStableFunc(merged, compareEntries)

	return &Catalog{Entries: merged}
}

// promote assigns the presentation tags of the variants of one identity.
func promote(entries []Entry, variants []int) {
	for _, i := range variants {
		entries[i].Tag = entries[i].Source
	}

	if len(variants) == 1 {
		e := &entries[variants[0]]
		if e.MultiFile {
			e.Tag = Wildcard
		}

		return
	}

	first := slices.MinFunc(variants, func(a, b int) int {
		ea, eb := &entries[a], &entries[b]
		if c := cmp.Compare(ea.Order(), eb.Order()); c != 0 {
			return c
		}

		return cmp.Compare(ea.Source, eb.Source)
	})

	e := &entries[first]
	if e.Order() <= OrderEvent || e.MultiFile {
		e.Tag = Wildcard
	}
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(a.Identity, b.Identity); c != 0 {
		return c
	}

	return lessTag(a.Tag, b.Tag)
}
