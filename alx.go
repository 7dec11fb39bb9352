// Package alx reads, reconciles and rebuilds the enemy data of a
// GameCube/Dreamcast era RPG disc image.
//
// The game stores enemy records in three container variants (ENP, EVP and
// DAT), most of them compressed with AKLZ, a 4 KiB sliding-window LZ codec.
// The same enemy often appears in several files with identical or slightly
// different statistics.
//
// # Core Features
//
//   - Byte-exact AKLZ decompression and a deterministic greedy compressor
//   - Parsing of every container variant, including multi-segment ENP files
//   - Cross-file reconciliation into one catalog with provenance tags
//   - Rebuilding multi-segment containers and patching records in place
//   - Catalog snapshots (CBOR, optionally compressed)
//
// # Basic Usage
//
//	src := store.NewLocalStore("./disc")
//	loader, _ := alx.NewLoader(src, alx.WithLogger(alx.NewTextLogger(slog.LevelInfo)))
//
//	res, err := loader.ReadEnemies(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, e := range res.Catalog.Entries {
//	    fmt.Println(e.Identity, e.Tag, e.Enemy.Name(), e.Enemy.MaxHP)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the compress,
// container and catalog packages. For fine-grained control, use those
// packages directly.
package alx

import (
	"github.com/arloliu/alx/compress"
	"github.com/arloliu/alx/container"
	"github.com/arloliu/alx/format"
)

var aklz = compress.NewAKLZCompressor()

// Decompress expands an AKLZ blob. Data without the AKLZ magic is returned
// as a copy.
func Decompress(data []byte) ([]byte, error) {
	return aklz.Decompress(data)
}

// Compress encodes data as an AKLZ blob.
func Compress(data []byte) ([]byte, error) {
	return aklz.Compress(data)
}

// IsCompressed reports whether data starts with the AKLZ header.
func IsCompressed(data []byte) bool {
	return compress.IsAKLZ(data)
}

// ParseFile decompresses data if needed and parses it as the container
// variant implied by name.
func ParseFile(data []byte, name string, opts ...container.Option) (*container.Result, error) {
	raw, err := Decompress(data)
	if err != nil {
		return nil, err
	}

	return container.Parse(raw, name, format.ContainerAuto, opts...)
}
