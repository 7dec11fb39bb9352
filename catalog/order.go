package catalog

import "strings"

// Wildcard is the provenance tag of a record that applies to every file.
const Wildcard = "*"

// Priority orders of provenance tags. Lower wins.
const (
	OrderGlobal = 0 // wildcard, ENP files and internal ENP segment names
	OrderEvent  = 1 // EVP files
	OrderOther  = 2 // DAT files and anything else
)

// Order returns the priority order of a provenance tag.
func Order(tag string) int {
	lower := strings.ToLower(tag)
	switch {
	case tag == Wildcard, strings.HasSuffix(lower, ".enp"), strings.HasSuffix(lower, ".bin"):
		return OrderGlobal
	case strings.HasSuffix(lower, ".evp"):
		return OrderEvent
	default:
		return OrderOther
	}
}

// lessTag orders tags for presentation: the wildcard first, then by name.
func lessTag(a, b string) int {
	aw, bw := a == Wildcard, b == Wildcard
	switch {
	case aw && !bw:
		return -1
	case bw && !aw:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
