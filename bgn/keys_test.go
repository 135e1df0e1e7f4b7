package bgn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xSamWitch/mcl/group"
	"github.com/0xSamWitch/mcl/rng"
)

func TestSecretKeyPublicKeyDerivation(t *testing.T) {
	ctx := group.Default()
	src := rng.NewXorshift(1)
	sk, err := NewSecretKey(ctx, src)
	require.NoError(t, err)

	pk := sk.GetPublicKey()
	require.True(t, pk.xP.Equal(ctx.P.ScalarMul(sk.x1)))
	require.True(t, pk.yQ.Equal(ctx.Q.ScalarMul(sk.y2)))
}

func TestSetDecodeRangeRequiredBeforeDec(t *testing.T) {
	ctx := group.Default()
	src := rng.NewXorshift(2)
	sk, err := NewSecretKey(ctx, src)
	require.NoError(t, err)
	pk := sk.GetPublicKey()

	ct, err := pk.EncG1(src, 5)
	require.NoError(t, err)

	_, err = sk.Dec(ct)
	require.ErrorIs(t, err, ErrInitOrder)

	require.NoError(t, sk.SetDecodeRange(256, 4))
	v, err := sk.Dec(ct)
	require.NoError(t, err)
	require.EqualValues(t, 5, v)
}

func TestSecretKeyMarshalRoundTrip(t *testing.T) {
	ctx := group.Default()
	src := rng.NewXorshift(3)
	sk, err := NewSecretKey(ctx, src)
	require.NoError(t, err)

	b, err := sk.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, 6*group.LFr)

	sk2, err := UnmarshalSecretKey(ctx, b)
	require.NoError(t, err)
	require.True(t, sk.b1.Equal(sk2.b1))
	require.True(t, sk.g.Equal(sk2.g))
}

func TestCompactSecretKeyExpandIsDeterministic(t *testing.T) {
	ctx := group.Default()
	src := rng.NewXorshift(4)
	x1, err := group.RandomScalar(src)
	require.NoError(t, err)
	x2, err := group.RandomScalar(src)
	require.NoError(t, err)
	compact := CompactSecretKey{X1: x1, X2: x2}

	b, err := compact.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, 2*group.LFr)

	var compact2 CompactSecretKey
	require.NoError(t, compact2.UnmarshalBinary(b))

	sk1, err := compact.Expand(ctx)
	require.NoError(t, err)
	sk2, err := compact2.Expand(ctx)
	require.NoError(t, err)
	require.True(t, sk1.b1.Equal(sk2.b1))
	require.True(t, sk1.g.Equal(sk2.g))
}

func TestPublicKeyMarshalRoundTrip(t *testing.T) {
	ctx := group.Default()
	src := rng.NewXorshift(5)
	sk, err := NewSecretKey(ctx, src)
	require.NoError(t, err)
	pk := sk.GetPublicKey()

	b, err := pk.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, 3*group.SizeG1()+3*group.SizeG2())

	pk2, err := UnmarshalPublicKey(ctx, b)
	require.NoError(t, err)
	require.True(t, pk.xP.Equal(pk2.xP))
	require.True(t, pk.zQ.Equal(pk2.zQ))
}

func TestUnmarshalSecretKeyRejectsBadLength(t *testing.T) {
	ctx := group.Default()
	_, err := UnmarshalSecretKey(ctx, make([]byte, 3))
	require.ErrorIs(t, err, ErrSerialization)
}
