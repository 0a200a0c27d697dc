package database

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/commitment"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/scalar"
)

func TestParseTableRef(t *testing.T) {
	ref, err := ParseTableRef("public.users")
	require.NoError(t, err)
	require.Equal(t, "public", ref.Schema)
	require.Equal(t, "users", ref.Name)
	require.Equal(t, "public.users", ref.String())

	for _, s := range []string{"users", "a.b.c", ".users", "public."} {
		_, err := ParseTableRef(s)
		require.Error(t, err, s)
	}

	require.Panics(t, func() { MustParseTableRef("nodot") })
}

func TestColumnKindMismatchPanics(t *testing.T) {
	col := BoolsView([]bool{true})
	require.Panics(t, func() { col.BigInts() })
	require.Panics(t, func() { col.Scalars() })
}

func TestToScalars(t *testing.T) {
	a := arena.New()

	bools := BoolsView([]bool{true, false}).ToScalars(a)
	require.True(t, bools[0].IsOne())
	require.True(t, bools[1].IsZero())

	ints := BigIntsView([]int64{3, -3}).ToScalars(a)
	want := scalar.FromInt64(3)
	require.True(t, ints[0].Equal(&want))

	strs := VarCharView([]string{"a", "a", "b"}).ToScalars(a)
	require.True(t, strs[0].Equal(&strs[1]))
	require.False(t, strs[0].Equal(&strs[2]))

	// scalar-backed views are returned without copying
	vals := ScalarsView(ints)
	require.Equal(t, &ints[0], &vals.ToScalars(a)[0])
}

func TestOwnedColumnRoundTrip(t *testing.T) {
	src := []int64{1, 2, 3}
	col := BigIntsColumn(src...)
	back := OwnedColumnFromView(col.View())
	if diff := cmp.Diff(src, back.BigInts()); diff != "" {
		t.Fatalf("big ints changed through the view round trip (-want +got):\n%s", diff)
	}

	strs := []string{"x", "y"}
	scol := VarCharColumn(strs...)
	sback := OwnedColumnFromView(scol.View())
	if diff := cmp.Diff(strs, sback.Strings()); diff != "" {
		t.Fatalf("strings changed through the view round trip (-want +got):\n%s", diff)
	}
}

func TestOwnedTable(t *testing.T) {
	tbl := NewOwnedTable()
	require.NoError(t, tbl.Insert("a", BigIntsColumn(1, 2)))
	require.NoError(t, tbl.Insert("b", BoolsColumn(true, false)))

	// duplicate names and ragged lengths are rejected
	require.Error(t, tbl.Insert("a", BigIntsColumn(9, 9)))
	require.Error(t, tbl.Insert("c", BigIntsColumn(1)))

	require.Equal(t, 2, tbl.NumRows())
	require.Equal(t, []string{"a", "b"}, tbl.Names())

	col, ok := tbl.Column("a")
	require.True(t, ok)
	require.Equal(t, NewColumnType(KindBigInt), col.Type())
	_, ok = tbl.Column("missing")
	require.False(t, ok)
}

func TestTestAccessor(t *testing.T) {
	key, err := commitment.NewKey(8)
	require.NoError(t, err)
	acc := NewTestAccessor(key)

	table := MustParseTableRef("public.t")
	tbl := NewOwnedTable()
	require.NoError(t, tbl.Insert("a", BigIntsColumn(1, 2, 3)))
	acc.AddTable(table, tbl)

	require.Equal(t, 3, acc.TableLength(table))
	require.Equal(t, 0, acc.TableLength(MustParseTableRef("public.other")))

	ref := NewColumnRef(table, "a", NewColumnType(KindBigInt))
	col, err := acc.Column(ref)
	require.NoError(t, err)
	require.Equal(t, 3, col.Len())

	// a reference with the wrong type must not resolve
	badRef := NewColumnRef(table, "a", NewColumnType(KindBoolean))
	_, err = acc.Column(badRef)
	require.Error(t, err)

	c1, err := acc.Commitment(ref)
	require.NoError(t, err)
	c2, err := acc.Commitment(ref)
	require.NoError(t, err)
	require.True(t, c1.Equal(c2))
}
