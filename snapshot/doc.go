// Package snapshot persists reconciled catalogs between runs.
//
// A snapshot is a 24-byte header followed by a CBOR payload encoded with
// core deterministic rules and compressed with one of the general-purpose
// codecs of package compress (zstd by default). The header carries an
// xxHash64 of the uncompressed payload, checked on Decode.
package snapshot
