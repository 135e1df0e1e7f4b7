package dlp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xSamWitch/mcl/group"
)

func TestEcTableRoundTripWithinRange(t *testing.T) {
	ctx := group.Default()
	var tbl EcTable
	require.NoError(t, tbl.Init(ctx.P, 64, 4))

	for _, m := range []int64{0, 1, -1, 63, -63, 64 * 5, -64 * 5} {
		x := ctx.P.ScalarMul(group.NewScalarFromInt64(m))
		got, err := tbl.Log(x)
		require.NoError(t, err, "m=%d", m)
		require.Equal(t, m, got, "m=%d", m)
	}
}

func TestEcTableOutOfRangeFails(t *testing.T) {
	ctx := group.Default()
	var tbl EcTable
	require.NoError(t, tbl.Init(ctx.P, 8, 1))

	maxRange := tbl.MaxRange()
	ok := ctx.P.ScalarMul(group.NewScalarFromInt64(maxRange))
	_, err := tbl.Log(ok)
	require.NoError(t, err)

	tooFar := ctx.P.ScalarMul(group.NewScalarFromInt64(maxRange + 1))
	_, err = tbl.Log(tooFar)
	require.ErrorIs(t, err, ErrDlpOutOfRange)
}

func TestEcTableSaveLoad(t *testing.T) {
	ctx := group.Default()
	var tbl EcTable
	require.NoError(t, tbl.Init(ctx.P, 32, 2))

	buf, err := tbl.Save()
	require.NoError(t, err)

	var tbl2 EcTable
	require.NoError(t, tbl2.Load(buf))

	x := ctx.P.ScalarMul(group.NewScalarFromInt64(17))
	got, err := tbl2.Log(x)
	require.NoError(t, err)
	require.EqualValues(t, 17, got)
}

func TestEcTableZeroRangeRejected(t *testing.T) {
	var tbl EcTable
	require.ErrorIs(t, tbl.Init(group.Default().P, 0, 1), ErrRangeZero)
}

func TestGTTableRoundTripWithinRange(t *testing.T) {
	ctx := group.Default()
	g := group.Pair(ctx.P, ctx.Q)
	var tbl GTTable
	require.NoError(t, tbl.Init(g, 64, 4))

	for _, m := range []int64{0, 1, -1, 63, -63, 64 * 5, -64 * 5} {
		x := g.Exp(group.NewScalarFromInt64(m))
		got, err := tbl.Log(x)
		require.NoError(t, err, "m=%d", m)
		require.Equal(t, m, got, "m=%d", m)
	}
}

func TestGTTableSaveLoadAndEscapeRoundTrip(t *testing.T) {
	ctx := group.Default()
	g := group.Pair(ctx.P, ctx.Q)

	const hashSize = 16
	var full GTTable
	require.NoError(t, full.Init(g, hashSize, 0))

	m := int64(hashSize - 1)
	target := g.Exp(group.NewScalarFromInt64(m))
	_, err := full.Log(target)
	require.NoError(t, err)

	buf, err := full.Save()
	require.NoError(t, err)

	var shrunk GTTable
	require.NoError(t, shrunk.Init(g, 1, 1))
	_, err = shrunk.Log(target)
	require.ErrorIs(t, err, ErrDlpOutOfRange)

	var reloaded GTTable
	require.NoError(t, reloaded.Load(buf))
	got, err := reloaded.Log(target)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestEcTableLoadRejectsBadMagic(t *testing.T) {
	ctx := group.Default()
	var tbl EcTable
	require.NoError(t, tbl.Init(ctx.P, 8, 1))
	buf, err := tbl.Save()
	require.NoError(t, err)
	buf[0] ^= 0xFF

	var tbl2 EcTable
	require.ErrorIs(t, tbl2.Load(buf), ErrTableFormat)
}
