package catalog

import (
	"testing"

	"github.com/arloliu/alx/container"
	"github.com/arloliu/alx/section"
	"github.com/stretchr/testify/require"
)

func enemy(t *testing.T, name string, hp int32) section.EnemyRecord {
	t.Helper()

	r := section.EnemyRecord{MaxHP: hp, Exp: 10, Gold: 5, Level: 3, Attack: 20}
	require.NoError(t, r.SetName(name))

	return r
}

func contrib(t *testing.T, tag string, id int32, name string, hp int32) Contribution {
	t.Helper()

	return Contribution{Tag: tag, Identity: id, Enemy: enemy(t, name, hp)}
}

func TestOrder(t *testing.T) {
	tests := map[string]int{
		"*":             OrderGlobal,
		"a099a_ep.enp":  OrderGlobal,
		"ecinit001.bin": OrderGlobal,
		"A099A_EP.ENP":  OrderGlobal,
		"epevent.evp":   OrderEvent,
		"ecinit001.dat": OrderOther,
		"ebinit001.dat": OrderOther,
		"readme.txt":    OrderOther,
		"":              OrderOther,
	}
	for tag, want := range tests {
		require.Equal(t, want, Order(tag), tag)
	}
}

func TestReconcile_MergePromotion(t *testing.T) {
	cat := Reconcile([]Contribution{
		contrib(t, "ebinit037.dat", 165, "Gilder", 700),
		contrib(t, "epevent.evp", 165, "Gilder", 700),
	})

	require.Equal(t, 1, cat.Len())
	e := cat.Entries[0]
	require.Equal(t, int32(165), e.Identity)
	require.Equal(t, Wildcard, e.Tag)
	require.Equal(t, "epevent.evp", e.Source)
	require.Equal(t, OrderEvent, e.Order())
	require.True(t, e.MultiFile)
	require.True(t, e.IsGlobal())
	require.Equal(t, []string{"ebinit037.dat", "epevent.evp"}, e.Sources)
}

func TestReconcile_SplitSurvival(t *testing.T) {
	cat := Reconcile([]Contribution{
		contrib(t, "b099a_ep.enp", 200, "Looper", 300),
		contrib(t, "a099a_ep.enp", 200, "Looper", 450),
	})

	require.Equal(t, 2, cat.Len())
	// the lowest (order, name) variant qualifies on its own order
	require.Equal(t, Wildcard, cat.Entries[0].Tag)
	require.Equal(t, "a099a_ep.enp", cat.Entries[0].Source)
	require.Equal(t, int32(450), cat.Entries[0].Enemy.MaxHP)
	require.Equal(t, "b099a_ep.enp", cat.Entries[1].Tag)
	require.Equal(t, int32(300), cat.Entries[1].Enemy.MaxHP)
	require.False(t, cat.Entries[0].MultiFile)
	require.False(t, cat.Entries[1].MultiFile)
}

func TestReconcile_Promotion(t *testing.T) {
	tests := []struct {
		name     string
		contribs func(t *testing.T) []Contribution
		want     []string // tags in catalog order
	}{
		{
			name: "single file single variant stays concrete",
			contribs: func(t *testing.T) []Contribution {
				return []Contribution{contrib(t, "a_ep.enp", 1, "Rat", 10)}
			},
			want: []string{"a_ep.enp"},
		},
		{
			name: "same tag twice is not multi-file",
			contribs: func(t *testing.T) []Contribution {
				return []Contribution{
					contrib(t, "a_ep.enp", 1, "Rat", 10),
					contrib(t, "a_ep.enp", 1, "Rat", 10),
				}
			},
			want: []string{"a_ep.enp"},
		},
		{
			name: "dat variants without multi-file stay concrete",
			contribs: func(t *testing.T) []Contribution {
				return []Contribution{
					contrib(t, "ecinit002.dat", 2, "Bat", 10),
					contrib(t, "ecinit001.dat", 2, "Bat", 20),
				}
			},
			want: []string{"ecinit001.dat", "ecinit002.dat"},
		},
		{
			name: "multi-file dat variant is promoted",
			contribs: func(t *testing.T) []Contribution {
				return []Contribution{
					contrib(t, "ecinit001.dat", 3, "Bat", 10),
					contrib(t, "ecinit002.dat", 3, "Bat", 10),
					contrib(t, "ecinit003.dat", 3, "Bat", 99),
				}
			},
			want: []string{Wildcard, "ecinit003.dat"},
		},
		{
			name: "multi-file variant that is not first stays concrete",
			contribs: func(t *testing.T) []Contribution {
				return []Contribution{
					contrib(t, "ecinit002.dat", 4, "Bat", 10),
					contrib(t, "ecinit003.dat", 4, "Bat", 10),
					contrib(t, "ecinit001.dat", 4, "Bat", 99),
				}
			},
			want: []string{"ecinit001.dat", "ecinit002.dat"},
		},
		{
			name: "evp variant wins over enp-less dat variants",
			contribs: func(t *testing.T) []Contribution {
				return []Contribution{
					contrib(t, "ecinit005.dat", 5, "Bat", 10),
					contrib(t, "epevent.evp", 5, "Bat", 20),
				}
			},
			want: []string{Wildcard, "ecinit005.dat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := Reconcile(tt.contribs(t))
			tags := make([]string, 0, cat.Len())
			for _, e := range cat.Entries {
				tags = append(tags, e.Tag)
			}
			require.Equal(t, tt.want, tags)
		})
	}
}

func TestReconcile_RetainsLowestOrderContribution(t *testing.T) {
	dat := contrib(t, "ecinit009.dat", 9, "Mole", 50)
	dat.Enemy.ItemDrops[0] = section.ItemDrop{Probability: 10, Amount: 1, ItemID: 1}
	dat.Actions = []container.Action{{Slot: 1, Entry: section.ActionEntry{Kind: 1, Action: 100}}}

	enp := contrib(t, "x_ep.enp", 9, "Mole", 50)
	enp.Enemy.ItemDrops[0] = section.ItemDrop{Probability: 20, Amount: 2, ItemID: 2}
	enp.Actions = []container.Action{{Slot: 1, Entry: section.ActionEntry{Kind: 1, Action: 200}}}

	evp := contrib(t, "epevent.evp", 9, "Mole", 50)

	cat := Reconcile([]Contribution{dat, evp, enp})
	require.Equal(t, 1, cat.Len())
	e := cat.Entries[0]
	require.Equal(t, "x_ep.enp", e.Source)
	require.Equal(t, int16(2), e.Enemy.ItemDrops[0].ItemID)
	require.Equal(t, enp.Actions, e.Actions)
	require.Equal(t, []string{"ecinit009.dat", "epevent.evp", "x_ep.enp"}, e.Sources)

	// equal orders keep the first contribution
	other := contrib(t, "y_ep.enp", 9, "Mole", 50)
	other.Enemy.ItemDrops[0].ItemID = 3
	cat = Reconcile([]Contribution{enp, other})
	require.Equal(t, "x_ep.enp", cat.Entries[0].Source)
}

func TestReconcile_Ordering(t *testing.T) {
	cat := Reconcile([]Contribution{
		contrib(t, "z.dat", 30, "C", 1),
		contrib(t, "b.dat", 10, "A", 1),
		contrib(t, "a.dat", 10, "A", 2),
		contrib(t, "q_ep.enp", 20, "B", 1),
		contrib(t, "c.dat", 10, "A", 3),
	})

	type row struct {
		id  int32
		tag string
	}
	got := make([]row, 0, cat.Len())
	for _, e := range cat.Entries {
		got = append(got, row{e.Identity, e.Tag})
	}
	require.Equal(t, []row{
		{10, "a.dat"},
		{10, "b.dat"},
		{10, "c.dat"},
		{20, "q_ep.enp"},
		{30, "z.dat"},
	}, got)

	require.Len(t, cat.Lookup(10), 3)
	require.Len(t, cat.Lookup(20), 1)
	require.Empty(t, cat.Lookup(15))
	require.Empty(t, cat.Lookup(99))
}

func TestReconcile_Empty(t *testing.T) {
	cat := Reconcile(nil)
	require.NotNil(t, cat)
	require.Equal(t, 0, cat.Len())
	require.Empty(t, cat.Actions())
}

func TestCatalog_Actions(t *testing.T) {
	a := contrib(t, "a_ep.enp", 1, "Rat", 10)
	a.Actions = []container.Action{
		{Slot: 1, Entry: section.ActionEntry{Kind: 1, Action: 5}},
		{Slot: 3, Entry: section.ActionEntry{Kind: 0, Action: 2, Param: 4}},
	}
	dup := a
	dup.Tag = "b_ep.enp"
	b := contrib(t, "a_ep.enp", 2, "Cat", 10)

	cat := Reconcile([]Contribution{a, dup, b})
	lists := cat.Actions()
	require.Len(t, lists, 1)
	require.Equal(t, int32(1), lists[0].Identity)
	require.Equal(t, Wildcard, lists[0].Tag)
	require.Equal(t, a.Actions, lists[0].Actions)
}

func TestFromRecords(t *testing.T) {
	records := []container.Record{
		{Identity: 1, Tag: "a_ep.enp", Enemy: enemy(t, "Rat", 1), Offset: 40},
		{Identity: 2, Tag: "epevent.evp", Enemy: enemy(t, "Cat", 2)},
	}

	contribs := FromRecords(records)
	require.Len(t, contribs, 2)
	require.Equal(t, "a_ep.enp", contribs[0].Tag)
	require.Equal(t, int32(2), contribs[1].Identity)
	require.Equal(t, "Cat", contribs[1].Enemy.Name())
}

func TestKeyOf_IgnoresNonKeyFields(t *testing.T) {
	a := enemy(t, "Rat", 10)
	b := a
	b.ItemDrops[1].ItemID = 7
	b.Dodge = 3
	require.Equal(t, KeyOf(&a), KeyOf(&b))

	b.Hit = 1
	require.NotEqual(t, KeyOf(&a), KeyOf(&b))
}

func TestDisplayTags(t *testing.T) {
	records := []container.Record{
		{Identity: 10, Tag: "ecinit010.dat"},
		{Identity: 10, Tag: "epevent.evp"},
		{Identity: 10, Tag: "a_ep.enp"},
		{Identity: 11, Tag: "x.dat"},
		{Identity: 11, Tag: "y.dat"},
		{Identity: 10, Tag: "b_ep.enp"},
		{Identity: 5, Tag: "epevent.evp"},
	}

	rows := DisplayTags(records)
	require.Equal(t, []DisplayRow{
		{Identity: 5, Tag: Wildcard, Index: 6},
		{Identity: 10, Tag: Wildcard, Index: 2},
		{Identity: 10, Tag: "b_ep.enp", Index: 5},
		{Identity: 10, Tag: "ecinit010.dat", Index: 0},
		{Identity: 10, Tag: "epevent.evp", Index: 1},
		{Identity: 11, Tag: Wildcard, Index: 3},
		{Identity: 11, Tag: "y.dat", Index: 4},
	}, rows)

	require.Equal(t, "a_ep.enp", records[2].Tag)
	require.Empty(t, DisplayTags(nil))
}
