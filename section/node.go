package section

import (
	"fmt"

	"github.com/arloliu/alx/endian"
	"github.com/arloliu/alx/errs"
)

// NodeEntry is one (identity, offset) pair of a container's node table.
type NodeEntry struct {
	Identity int32
	Offset   int32
}

// ParseNodeEntry parses an 8-byte node entry.
func ParseNodeEntry(data []byte, engine endian.EndianEngine) (NodeEntry, error) {
	if len(data) < NodeEntrySize {
		return NodeEntry{}, fmt.Errorf("%w: node entry needs %d bytes, have %d", errs.ErrTruncatedRecord, NodeEntrySize, len(data))
	}

	return NodeEntry{
		Identity: endian.Int32(engine, data[0:4]),
		Offset:   endian.Int32(engine, data[4:8]),
	}, nil
}

// IsTerminator reports whether the entry ends a dynamic-length node table.
func (n NodeEntry) IsTerminator() bool {
	return n.Identity < 0
}

// Append appends the serialized entry to b.
func (n NodeEntry) Append(b []byte, engine endian.EndianEngine) []byte {
	b = endian.AppendInt32(engine, b, n.Identity)
	return endian.AppendInt32(engine, b, n.Offset)
}

// ActionEntry is one 6-byte element of a record's action tail.
type ActionEntry struct {
	Kind   int16
	Action int16
	Param  int16
}

// ActionTerminator marks the end of an action tail.
var ActionTerminator = ActionEntry{Kind: -1, Action: -1, Param: -1}

// ParseActionEntry parses a 6-byte action entry.
func ParseActionEntry(data []byte, engine endian.EndianEngine) (ActionEntry, error) {
	if len(data) < ActionEntrySize {
		return ActionEntry{}, fmt.Errorf("%w: action entry needs %d bytes, have %d", errs.ErrTruncatedRecord, ActionEntrySize, len(data))
	}

	return ActionEntry{
		Kind:   endian.Int16(engine, data[0:2]),
		Action: endian.Int16(engine, data[2:4]),
		Param:  endian.Int16(engine, data[4:6]),
	}, nil
}

// IsTerminator reports whether the entry ends an action tail.
// Only kind and action take part; the parameter is ignored.
func (a ActionEntry) IsTerminator() bool {
	return a.Kind == -1 && a.Action == -1
}

// IsEmpty reports whether the slot is unused. Empty slots still occupy an index.
func (a ActionEntry) IsEmpty() bool {
	return a.Kind == ActionKindEmpty
}

// KindName returns a display name for the entry kind.
func (a ActionEntry) KindName() string {
	switch a.Kind {
	case ActionKindBranch:
		return "Branch"
	case ActionKindAction:
		return "Action"
	default:
		return "None"
	}
}

// Append appends the serialized entry to b.
func (a ActionEntry) Append(b []byte, engine endian.EndianEngine) []byte {
	b = endian.AppendInt16(engine, b, a.Kind)
	b = endian.AppendInt16(engine, b, a.Action)

	return endian.AppendInt16(engine, b, a.Param)
}
