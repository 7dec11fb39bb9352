package catalog

import (
	"cmp"
	"slices"

	"github.com/arloliu/alx/container"
)

// DisplayRow is one record of a display listing. Index refers to the
// position of the record in the input slice.
type DisplayRow struct {
	Identity int32
	Tag      string
	Index    int
}

// DisplayTags computes presentation tags for a list of records without
// modifying it. Per identity, the first record with the lowest priority
// order is shown with the wildcard tag; every other record keeps its file
// tag. Rows are sorted by identity, then wildcard first, then tag name.
func DisplayTags(records []container.Record) []DisplayRow {
	best := make(map[int32]int, len(records))
	for i := range records {
		id := records[i].Identity
		j, ok := best[id]
		if !ok || Order(records[i].Tag) < Order(records[j].Tag) {
			best[id] = i
		}
	}

	rows := make([]DisplayRow, len(records))
	for i := range records {
		rows[i] = DisplayRow{Identity: records[i].Identity, Tag: records[i].Tag, Index: i}
		if best[records[i].Identity] == i {
			rows[i].Tag = Wildcard
		}
	}

	slices.SortStableFunc(rows, func(a, b DisplayRow) int {
		if c := cmp.Compare(a.Identity, b.Identity); c != 0 {
			return c
		}

		return lessTag(a.Tag, b.Tag)
	})

	return rows
}
