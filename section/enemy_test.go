package section

import (
	"testing"

	"github.com/arloliu/alx/endian"
	"github.com/arloliu/alx/errs"
	"github.com/stretchr/testify/require"
)

func sampleEnemy(t *testing.T) EnemyRecord {
	t.Helper()

	r := EnemyRecord{
		Width:         2,
		Depth:         3,
		ElementID:     1,
		Pad1:          0x11,
		Pad2:          0x22,
		MovementFlags: MoveMayDodge | MoveOnGround | MoveMayMove,
		Counter:       25,
		Exp:           60000,
		Gold:          1200,
		MaxHP:         15000,
		Unknown:       1.5,
		Danger:        9,
		EffectID:      -1,
		StateID:       4,
		StateMiss:     30,
		Level:         33,
		Will:          10,
		Vigor:         11,
		Agile:         12,
		Quick:         13,
		Attack:        300,
		Defense:       250,
		MagDef:        120,
		Hit:           95,
		Dodge:         5,
	}
	for i := range r.Elements {
		r.Elements[i] = int16(i * 10)
	}
	for i := range r.States {
		r.States[i] = int16(-i)
	}
	r.ItemDrops[0] = ItemDrop{Probability: 100, Amount: 1, ItemID: 42}
	r.ItemDrops[3] = ItemDrop{Probability: 0, Amount: 0, ItemID: -1}
	require.NoError(t, r.SetName("ガーディアン"))

	return r
}

func TestEnemyRecord_RoundTrip(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	r := sampleEnemy(t)

	b := r.Bytes(engine)
	require.Len(t, b, EnemyRecordSize)

	parsed, err := ParseEnemyRecord(b, engine)
	require.NoError(t, err)
	require.Equal(t, r, parsed)
	require.Equal(t, b, parsed.Bytes(engine))
}

func TestEnemyRecord_FieldOffsets(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	r := sampleEnemy(t)
	b := r.Bytes(engine)

	require.Equal(t, byte(2), b[21])
	require.Equal(t, byte(1), b[23])
	require.Equal(t, []byte{0x08, 0x05}, b[26:28])
	require.Equal(t, []byte{0xEA, 0x60}, b[30:32])
	require.Equal(t, []byte{0x00, 0x00, 0x3A, 0x98}, b[36:40])
	require.Equal(t, []byte{0x3F, 0xC0, 0x00, 0x00}, b[40:44])
	require.Equal(t, []byte{0x00, 0x09}, b[86:88])
	require.Equal(t, byte(0xFF), b[88])
	require.Equal(t, []byte{0x00, 0x21}, b[92:94])
	require.Equal(t, []byte{0x00, 0x05}, b[110:112])
	require.Equal(t, []byte{0x00, 0x64, 0x00, 0x01, 0x00, 0x2A}, b[112:118])
	require.Equal(t, []byte{0xFF, 0xFF}, b[134:136])
}

func TestEnemyRecord_Truncated(t *testing.T) {
	engine := endian.GetBigEndianEngine()

	_, err := ParseEnemyRecord(make([]byte, EnemyRecordSize-1), engine)
	require.ErrorIs(t, err, errs.ErrTruncatedRecord)

	r := sampleEnemy(t)
	require.ErrorIs(t, r.WriteToSlice(make([]byte, 10), engine), errs.ErrTruncatedRecord)
}

func TestEnemyRecord_Name(t *testing.T) {
	r := sampleEnemy(t)
	require.Equal(t, "ガーディアン", r.Name())
	require.Len(t, r.RawName(), 12)

	var ascii EnemyRecord
	require.NoError(t, ascii.SetName("Looper"))
	require.Equal(t, "Looper", ascii.Name())

	var empty EnemyRecord
	require.Empty(t, empty.Name())
	require.Empty(t, empty.RawName())

	var eu EnemyRecord
	copy(eu.NameJP[:], []byte{'C', 'a', 'f', 0xE9})
	require.Equal(t, "Café", eu.Name())

	var long EnemyRecord
	require.NoError(t, long.SetName("abcdefghijklmnopqrstuvwxyz"))
	require.Equal(t, "abcdefghijklmnopqrst", long.Name())
	require.Zero(t, long.NameJP[EnemyNameSize-1])
}

func TestEnemyRecord_Flags(t *testing.T) {
	r := sampleEnemy(t)

	require.True(t, r.MayDodge())
	require.True(t, r.OnGround())
	require.True(t, r.MayMove())
	require.False(t, r.InAir())
	require.False(t, r.RangedAtk())
	require.False(t, r.MeleeAtk())
	require.False(t, r.TakeCover())
	require.False(t, r.RangedOnly())
	require.False(t, r.UnkDamage())
	require.False(t, r.UnkMelee())
	require.False(t, r.UnkRanged())
	require.False(t, r.Reserved())
}

func TestElementName(t *testing.T) {
	tests := map[int8]string{
		-1: "None",
		0:  "Green",
		1:  "Red",
		2:  "Purple",
		3:  "Blue",
		4:  "Yellow",
		5:  "Silver",
		6:  "Neutral",
		7:  "???",
		-5: "???",
	}
	for id, want := range tests {
		require.Equal(t, want, ElementName(id))
	}

	r := sampleEnemy(t)
	require.Equal(t, "Red", r.ElementName())
}
