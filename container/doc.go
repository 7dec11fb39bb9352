// Package container reads and writes the record containers of the game data.
//
// Three single-segment variants carry enemy records:
//
//   - ENP: a node table of up to 84 (identity, offset) pairs ended by a
//     negative identity, followed by the records.
//   - EVP: a fixed 200-entry node table, 250 opaque 20-byte event slots,
//     then the records.
//   - DAT: exactly one record at offset 0; the identity comes from the
//     file name.
//
// Each record is 136 bytes and is followed by an action tail of 6-byte
// entries (see package section).
//
// ENP data may also be wrapped in a multi-segment container:
//
//	+--------------------+------------------------+-----------+-----+
//	| 00 00 FF FF        | N x 32-byte descriptor | segment 0 | ... |
//	| count i16, check -1| name, offset, size, 0  |           |     |
//	+--------------------+------------------------+-----------+-----+
//
// Parse reads any of the variants and reports unreadable records in
// Result.Skipped instead of failing; Bake writes a multi-segment container
// from named segments. PatchRecord, ExtractRaw and BuildSegment support
// writing edited records back.
//
// All multi-byte integers are big-endian.
package container
