package section

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/alx/endian"
	"github.com/arloliu/alx/errs"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// ItemDrop is one of the four drop slots of an enemy record. ItemID -1 means none.
type ItemDrop struct {
	Probability int16
	Amount      int16
	ItemID      int16
}

// EnemyRecord is the fixed 136-byte enemy stat block.
//
//	Bytes   | Field
//	--------|--------------------------------------------------------------
//	0-20    | NameJP, Shift-JIS, null-padded
//	21-23   | Width, Depth, ElementID (int8)
//	24-25   | Pad1, Pad2
//	26-33   | MovementFlags, Counter (int16), Exp, Gold (uint16)
//	34-35   | Pad3, Pad4
//	36-43   | MaxHP (int32), Unknown (float32)
//	44-55   | Elements [6]int16
//	56-85   | States [15]int16
//	86-91   | Danger (int16), EffectID, StateID, StateMiss (int8), Pad5
//	92-111  | Level Will Vigor Agile Quick Attack Defense MagDef Hit Dodge (int16)
//	112-135 | ItemDrops [4]{Probability, Amount, ItemID int16}
//
// Pad bytes are kept so a parsed record serializes back to identical bytes.
type EnemyRecord struct {
	NameJP        [EnemyNameSize]byte
	Width         int8
	Depth         int8
	ElementID     int8
	Pad1          int8
	Pad2          int8
	MovementFlags int16
	Counter       int16
	Exp           uint16
	Gold          uint16
	Pad3          int8
	Pad4          int8
	MaxHP         int32
	Unknown       float32
	Elements      [6]int16
	States        [15]int16
	Danger        int16
	EffectID      int8
	StateID       int8
	StateMiss     int8
	Pad5          int8
	Level         int16
	Will          int16
	Vigor         int16
	Agile         int16
	Quick         int16
	Attack        int16
	Defense       int16
	MagDef        int16
	Hit           int16
	Dodge         int16
	ItemDrops     [4]ItemDrop
}

// ParseEnemyRecord parses a record from the first 136 bytes of data.
func ParseEnemyRecord(data []byte, engine endian.EndianEngine) (EnemyRecord, error) {
	if len(data) < EnemyRecordSize {
		return EnemyRecord{}, fmt.Errorf("%w: enemy record needs %d bytes, have %d", errs.ErrTruncatedRecord, EnemyRecordSize, len(data))
	}

	var r EnemyRecord
	copy(r.NameJP[:], data[0:EnemyNameSize])
	r.Width = int8(data[21])
	r.Depth = int8(data[22])
	r.ElementID = int8(data[23])
	r.Pad1 = int8(data[24])
	r.Pad2 = int8(data[25])
	r.MovementFlags = endian.Int16(engine, data[26:])
	r.Counter = endian.Int16(engine, data[28:])
	r.Exp = engine.Uint16(data[30:])
	r.Gold = engine.Uint16(data[32:])
	r.Pad3 = int8(data[34])
	r.Pad4 = int8(data[35])
	r.MaxHP = endian.Int32(engine, data[36:])
	r.Unknown = math.Float32frombits(engine.Uint32(data[40:]))

	off := 44
	for i := range r.Elements {
		r.Elements[i] = endian.Int16(engine, data[off:])
		off += 2
	}
	for i := range r.States {
		r.States[i] = endian.Int16(engine, data[off:])
		off += 2
	}

	r.Danger = endian.Int16(engine, data[86:])
	r.EffectID = int8(data[88])
	r.StateID = int8(data[89])
	r.StateMiss = int8(data[90])
	r.Pad5 = int8(data[91])

	off = 92
	for _, p := range r.stats() {
		*p = endian.Int16(engine, data[off:])
		off += 2
	}

	for i := range r.ItemDrops {
		r.ItemDrops[i] = ItemDrop{
			Probability: endian.Int16(engine, data[off:]),
			Amount:      endian.Int16(engine, data[off+2:]),
			ItemID:      endian.Int16(engine, data[off+4:]),
		}
		off += ItemDropSize
	}

	return r, nil
}

// stats lists the ten combat stats in on-disc order.
func (r *EnemyRecord) stats() [10]*int16 {
	return [10]*int16{
		&r.Level, &r.Will, &r.Vigor, &r.Agile, &r.Quick,
		&r.Attack, &r.Defense, &r.MagDef, &r.Hit, &r.Dodge,
	}
}

// WriteToSlice serializes the record into the first 136 bytes of b.
func (r *EnemyRecord) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < EnemyRecordSize {
		return fmt.Errorf("%w: enemy record needs %d bytes, have %d", errs.ErrTruncatedRecord, EnemyRecordSize, len(b))
	}

	copy(b[0:EnemyNameSize], r.NameJP[:])
	b[21] = byte(r.Width)
	b[22] = byte(r.Depth)
	b[23] = byte(r.ElementID)
	b[24] = byte(r.Pad1)
	b[25] = byte(r.Pad2)
	endian.PutInt16(engine, b[26:], r.MovementFlags)
	endian.PutInt16(engine, b[28:], r.Counter)
	engine.PutUint16(b[30:], r.Exp)
	engine.PutUint16(b[32:], r.Gold)
	b[34] = byte(r.Pad3)
	b[35] = byte(r.Pad4)
	endian.PutInt32(engine, b[36:], r.MaxHP)
	engine.PutUint32(b[40:], math.Float32bits(r.Unknown))

	off := 44
	for _, v := range r.Elements {
		endian.PutInt16(engine, b[off:], v)
		off += 2
	}
	for _, v := range r.States {
		endian.PutInt16(engine, b[off:], v)
		off += 2
	}

	endian.PutInt16(engine, b[86:], r.Danger)
	b[88] = byte(r.EffectID)
	b[89] = byte(r.StateID)
	b[90] = byte(r.StateMiss)
	b[91] = byte(r.Pad5)

	off = 92
	for _, p := range r.stats() {
		endian.PutInt16(engine, b[off:], *p)
		off += 2
	}

	for _, d := range r.ItemDrops {
		endian.PutInt16(engine, b[off:], d.Probability)
		endian.PutInt16(engine, b[off+2:], d.Amount)
		endian.PutInt16(engine, b[off+4:], d.ItemID)
		off += ItemDropSize
	}

	return nil
}

// Bytes returns the serialized record.
func (r *EnemyRecord) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, EnemyRecordSize)
	_ = r.WriteToSlice(b, engine)

	return b
}

// RawName returns the name bytes up to the first NUL.
func (r *EnemyRecord) RawName() []byte {
	for i, c := range r.NameJP {
		if c == 0 {
			return r.NameJP[:i]
		}
	}

	return r.NameJP[:]
}

// Name decodes the native name. Names that are not valid Shift-JIS are
// decoded as Windows-1252, which some European releases use.
func (r *EnemyRecord) Name() string {
	raw := r.RawName()
	if len(raw) == 0 {
		return ""
	}

	if s, err := japanese.ShiftJIS.NewDecoder().Bytes(raw); err == nil && !strings.ContainsRune(string(s), utf8.RuneError) {
		return string(s)
	}

	s, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}

	return string(s)
}

// SetName encodes name as Shift-JIS into NameJP. Names longer than 20
// encoded bytes are truncated so a terminating NUL always fits.
func (r *EnemyRecord) SetName(name string) error {
	enc, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return fmt.Errorf("encode name %q: %w", name, err)
	}

	clear(r.NameJP[:])
	copy(r.NameJP[:EnemyNameSize-1], enc)

	return nil
}

var elementNames = [...]string{"Green", "Red", "Purple", "Blue", "Yellow", "Silver", "Neutral"}

// ElementName returns the display name of the record's element.
func (r *EnemyRecord) ElementName() string {
	return ElementName(r.ElementID)
}

// ElementName returns the display name of an element id.
func ElementName(id int8) string {
	switch {
	case id == -1:
		return "None"
	case id >= 0 && int(id) < len(elementNames):
		return elementNames[id]
	default:
		return "???"
	}
}

func (r *EnemyRecord) hasMove(bit int16) bool {
	return r.MovementFlags&bit != 0
}

func (r *EnemyRecord) MayDodge() bool   { return r.hasMove(MoveMayDodge) }
func (r *EnemyRecord) UnkDamage() bool  { return r.hasMove(MoveUnkDamage) }
func (r *EnemyRecord) UnkRanged() bool  { return r.hasMove(MoveUnkRanged) }
func (r *EnemyRecord) UnkMelee() bool   { return r.hasMove(MoveUnkMelee) }
func (r *EnemyRecord) RangedAtk() bool  { return r.hasMove(MoveRangedAtk) }
func (r *EnemyRecord) MeleeAtk() bool   { return r.hasMove(MoveMeleeAtk) }
func (r *EnemyRecord) RangedOnly() bool { return r.hasMove(MoveRangedOnly) }
func (r *EnemyRecord) TakeCover() bool  { return r.hasMove(MoveTakeCover) }
func (r *EnemyRecord) InAir() bool      { return r.hasMove(MoveInAir) }
func (r *EnemyRecord) OnGround() bool   { return r.hasMove(MoveOnGround) }
func (r *EnemyRecord) Reserved() bool   { return r.hasMove(MoveReserved) }
func (r *EnemyRecord) MayMove() bool    { return r.hasMove(MoveMayMove) }
