// Package store abstracts the file layer the loader reads game data from
// and writes rebuilt containers to.
//
// The core only needs three things from it: list files whose name contains
// a substring, read bytes of a named file, and replace a named file
// wholesale. LocalStore serves a directory tree, MemoryStore serves tests,
// and the minio subpackage serves S3-compatible buckets.
package store
