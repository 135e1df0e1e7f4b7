package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextDeterministic(t *testing.T) {
	ctx1, err := NewContext(BN254)
	require.NoError(t, err)
	ctx2, err := NewContext(BN254)
	require.NoError(t, err)
	require.True(t, ctx1.P.Equal(ctx2.P))
	require.True(t, ctx1.Q.Equal(ctx2.Q))
}

func TestPairingNonDegenerate(t *testing.T) {
	ctx := Default()
	gt := Pair(ctx.P, ctx.Q)
	require.False(t, gt.IsOne())
}

func TestScalarArithmetic(t *testing.T) {
	a := NewScalarFromInt64(7)
	b := NewScalarFromInt64(-3)
	sum := a.Add(b)
	require.Equal(t, big.NewInt(4), sum.BigInt())

	neg := NewScalarFromInt64(-1)
	require.Equal(t, new(big.Int).Sub(Modulus(), big.NewInt(1)), neg.BigInt())
}

func TestScalarRoundTrip(t *testing.T) {
	s := NewScalarFromInt64(12345)
	b, err := s.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, LFr)

	var s2 Scalar
	require.NoError(t, s2.UnmarshalBinary(b))
	require.True(t, s.Equal(s2))
}

func TestG1RoundTrip(t *testing.T) {
	ctx := Default()
	s := NewScalarFromInt64(42)
	p := ctx.P.ScalarMul(s)

	b, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, SizeG1())

	var p2 G1
	require.NoError(t, p2.UnmarshalBinary(b))
	require.True(t, p.Equal(p2))
}

func TestG1AddNegIdentity(t *testing.T) {
	ctx := Default()
	p := ctx.P.ScalarMul(NewScalarFromInt64(9))
	sum := p.Add(p.Neg())
	require.True(t, sum.IsIdentity())
}

func TestFingerprintStableAcrossEqualPoints(t *testing.T) {
	ctx := Default()
	a := ctx.P.ScalarMul(NewScalarFromInt64(11))
	b := ctx.P.ScalarMul(NewScalarFromInt64(11))
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.Equal(t, a.Parity(), b.Parity())
}

func TestMillerLoopThenFinalExpEqualsPair(t *testing.T) {
	ctx := Default()
	direct := Pair(ctx.P, ctx.Q)
	split := FinalExp(MillerLoop(ctx.P, ctx.Q))
	require.True(t, direct.Equal(split))
}

func TestGTRoundTrip(t *testing.T) {
	ctx := Default()
	gt := Pair(ctx.P, ctx.Q)
	b, err := gt.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, SizeGT())

	var gt2 GT
	require.NoError(t, gt2.UnmarshalBinary(b))
	require.True(t, gt.Equal(gt2))
}
