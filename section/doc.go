// Package section defines the fixed-width binary structures of the enemy
// parameter containers.
//
// Every structure is big-endian on disc and exposes the same trio of
// helpers: a ParseXxx function that validates length, a WriteToSlice or
// Append method, and, where useful, Bytes.
//
// # Multi-segment container
//
//	┌──────────────────────────────────────────────┐
//	│ SegmentHeader (8 bytes)                      │
//	│  00 00 FF FF | count int16 | check int16=-1  │
//	├──────────────────────────────────────────────┤
//	│ SegmentDescriptor × count (32 bytes each)    │
//	│  name[20] | offset | size | reserved         │
//	├──────────────────────────────────────────────┤
//	│ Segment payloads, each a record container    │
//	└──────────────────────────────────────────────┘
//
// # Record container
//
//	┌──────────────────────────────────────────────┐
//	│ NodeEntry table (identity, offset) × N       │
//	├──────────────────────────────────────────────┤
//	│ EVP only: 250 × 20-byte event slots          │
//	├──────────────────────────────────────────────┤
//	│ EnemyRecord (136 bytes)                      │
//	│ ActionEntry × ≤64, ended by (-1, -1, *)      │
//	│ ... repeated per node                        │
//	└──────────────────────────────────────────────┘
//
// Dynamic-header (ENP) tables end at the first negative identity or after
// MaxENPNodes entries. Fixed-header (EVP) tables always hold EVPNodeCount
// entries. Headerless (DAT) files hold one record at offset 0.
package section
