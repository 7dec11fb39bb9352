package container

import (
	"testing"

	"github.com/arloliu/alx/endian"
	"github.com/arloliu/alx/section"
	"github.com/stretchr/testify/require"
)

func testEnemy(t *testing.T, name string, hp int32) section.EnemyRecord {
	t.Helper()

	r := section.EnemyRecord{
		MaxHP:     hp,
		Exp:       100,
		Gold:      50,
		Level:     12,
		Attack:    80,
		Defense:   40,
		ElementID: 2,
	}
	require.NoError(t, r.SetName(name))

	return r
}

// recordBytes serializes rec followed by the given action entries.
func recordBytes(rec section.EnemyRecord, actions ...section.ActionEntry) []byte {
	engine := endian.GetBigEndianEngine()
	b := rec.Bytes(engine)
	for _, a := range actions {
		b = a.Append(b, engine)
	}

	return b
}

func terminated(actions ...section.ActionEntry) []section.ActionEntry {
	return append(actions, section.ActionTerminator)
}
