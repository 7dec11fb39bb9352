// Package catalog reconciles enemy records read from many source files into
// one canonical list.
//
// Every record carries a provenance tag: the name of the file (or segment)
// it was read from. Tags rank by priority order: the wildcard "*" and ENP
// names are 0, EVP names 1, everything else 2.
//
// Reconcile runs a two-stage pass. Records with the same identity and the
// same statistics (see StatsKey) are first merged, keeping the lowest-order
// contribution. The surviving variants of each identity are then promoted:
// the variant that applies regardless of file gets the wildcard tag, and
// the others keep their file tags.
//
// DisplayTags is a lighter rule used for listings of unreconciled records:
// per identity, the lowest-order record is shown as the wildcard.
package catalog
