package section

// Fixed sizes of the on-disc structures, in bytes.
const (
	SegmentHeaderSize     = 8  // magic(4) + count(2) + check(2)
	SegmentDescriptorSize = 32 // name(20) + offset(4) + size(4) + reserved(4)
	SegmentNameSize       = 20
	NodeEntrySize         = 8  // identity(4) + offset(4)
	ActionEntrySize       = 6  // kind(2) + action(2) + parameter(2)
	EnemyRecordSize       = 136
	EnemyNameSize         = 21
	ItemDropSize          = 6
)

// Table limits of the record containers.
const (
	// MaxENPNodes is the largest node table a dynamic-header container may hold.
	MaxENPNodes = 84
	// MaxActions is the longest action tail read after one record.
	MaxActions = 64
	// EVPNodeCount is the fixed node table length of an event container.
	EVPNodeCount = 200
	// EVPEventCount is the number of opaque event slots following the EVP node table.
	EVPEventCount = 250
	// EVPEventSize is the width of one event slot.
	EVPEventSize = 20
	// EVPRecordsOffset is where EVP record data may begin.
	EVPRecordsOffset = EVPNodeCount*NodeEntrySize + EVPEventCount*EVPEventSize
)

// SegmentCheckValue is the value the check field of a segment header must hold.
const SegmentCheckValue int16 = -1

// segmentMagic opens every multi-segment container.
var segmentMagic = [4]byte{0x00, 0x00, 0xFF, 0xFF}

// Action kinds.
const (
	ActionKindEmpty  int16 = -1
	ActionKindBranch int16 = 0
	ActionKindAction int16 = 1
)

// Movement flag bits of EnemyRecord.MovementFlags.
const (
	MoveMayMove    = 0x001
	MoveReserved   = 0x002
	MoveOnGround   = 0x004
	MoveInAir      = 0x008
	MoveTakeCover  = 0x010
	MoveRangedOnly = 0x020
	MoveMeleeAtk   = 0x040
	MoveRangedAtk  = 0x080
	MoveUnkMelee   = 0x100
	MoveUnkRanged  = 0x200
	MoveUnkDamage  = 0x400
	MoveMayDodge   = 0x800
)
