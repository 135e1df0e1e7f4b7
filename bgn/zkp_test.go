package bgn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xSamWitch/mcl/group"
)

func TestZkpBinG1AcceptsValidBits(t *testing.T) {
	_, pk, src := newTestKeys(t, 30, 64, 4)

	for _, m := range []int64{0, 1} {
		ct, proof, err := pk.EncWithZkpBinG1(src, m)
		require.NoError(t, err)
		require.True(t, pk.VerifyZkpBinG1(ct, proof))
	}
}

func TestZkpBinG1RejectsOutOfRange(t *testing.T) {
	_, pk, src := newTestKeys(t, 31, 64, 4)

	_, _, err := pk.EncWithZkpBinG1(src, 2)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestZkpBinG1RejectsTamperedProof(t *testing.T) {
	_, pk, src := newTestKeys(t, 32, 64, 4)

	ct, proof, err := pk.EncWithZkpBinG1(src, 1)
	require.NoError(t, err)
	require.True(t, pk.VerifyZkpBinG1(ct, proof))

	tampered := proof
	tampered.D01 = tampered.D01.Add(group.NewScalarFromInt64(1))
	require.False(t, pk.VerifyZkpBinG1(ct, tampered))
}

func TestZkpBinG1RejectsSwappedCiphertext(t *testing.T) {
	_, pk, src := newTestKeys(t, 33, 64, 4)

	ct0, proof0, err := pk.EncWithZkpBinG1(src, 0)
	require.NoError(t, err)
	ct1, _, err := pk.EncWithZkpBinG1(src, 1)
	require.NoError(t, err)

	require.False(t, pk.VerifyZkpBinG1(ct1, proof0))
	require.True(t, pk.VerifyZkpBinG1(ct0, proof0))
}

func TestZkpBinG2AcceptsValidBits(t *testing.T) {
	_, pk, src := newTestKeys(t, 34, 64, 4)

	for _, m := range []int64{0, 1} {
		ct, proof, err := pk.EncWithZkpBinG2(src, m)
		require.NoError(t, err)
		require.True(t, pk.VerifyZkpBinG2(ct, proof))
	}
}

func TestZkpBinG2RejectsOutOfRange(t *testing.T) {
	_, pk, src := newTestKeys(t, 35, 64, 4)

	_, _, err := pk.EncWithZkpBinG2(src, -1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestZkpBinG2RejectsTamperedProof(t *testing.T) {
	_, pk, src := newTestKeys(t, 36, 64, 4)

	ct, proof, err := pk.EncWithZkpBinG2(src, 0)
	require.NoError(t, err)
	require.True(t, pk.VerifyZkpBinG2(ct, proof))

	tampered := proof
	tampered.D10 = tampered.D10.Add(group.NewScalarFromInt64(1))
	require.False(t, pk.VerifyZkpBinG2(ct, tampered))
}

func TestZkpBinSerializationRoundTrip(t *testing.T) {
	_, pk, src := newTestKeys(t, 37, 64, 4)

	_, proof, err := pk.EncWithZkpBinG1(src, 1)
	require.NoError(t, err)

	b, err := proof.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, 4*group.LFr)

	var proof2 ZkpBin
	require.NoError(t, proof2.UnmarshalBinary(b))
	require.True(t, proof.D00.Equal(proof2.D00))
	require.True(t, proof.D11.Equal(proof2.D11))
}

func TestZkpBinUnmarshalRejectsBadLength(t *testing.T) {
	var z ZkpBin
	require.ErrorIs(t, z.UnmarshalBinary(make([]byte, 5)), ErrSerialization)
}

func TestPrecomputedPublicKeyZkpBinMatchesPublicKey(t *testing.T) {
	sk, pk, src := newTestKeys(t, 38, 64, 4)
	ppk := NewPrecomputedPublicKey(pk)

	ct, proof, err := ppk.EncWithZkpBinG1(src, 1)
	require.NoError(t, err)
	require.True(t, ppk.VerifyZkpBinG1(ct, proof))
	require.True(t, pk.VerifyZkpBinG1(ct, proof))

	v, err := sk.Dec(ct)
	require.NoError(t, err)
	require.EqualValues(t, 1, v)
}

func TestEqualityProofAcceptsMatchingPlaintexts(t *testing.T) {
	_, pk, src := newTestKeys(t, 39, 64, 4)

	m := int64(17)
	r, err := group.RandomScalar(src)
	require.NoError(t, err)
	r2, err := group.RandomScalar(src)
	require.NoError(t, err)

	c1 := pk.encG1Raw(group.NewScalarFromInt64(m), r)
	c2 := pk.encG2Raw(group.NewScalarFromInt64(m), r2)

	proof, err := pk.ProveEquality(src, c1, c2, m, r, r2)
	require.NoError(t, err)
	require.True(t, pk.VerifyEquality(c1, c2, proof))
}

func TestEqualityProofRejectsMismatchedPlaintexts(t *testing.T) {
	_, pk, src := newTestKeys(t, 40, 64, 4)

	r, err := group.RandomScalar(src)
	require.NoError(t, err)
	r2, err := group.RandomScalar(src)
	require.NoError(t, err)

	c1 := pk.encG1Raw(group.NewScalarFromInt64(5), r)
	c2 := pk.encG2Raw(group.NewScalarFromInt64(6), r2)

	proof, err := pk.ProveEquality(src, c1, c2, 5, r, r2)
	require.NoError(t, err)
	require.False(t, pk.VerifyEquality(c1, c2, proof))
}

func TestEqualityProofRejectsTamperedResponse(t *testing.T) {
	_, pk, src := newTestKeys(t, 41, 64, 4)

	m := int64(8)
	r, err := group.RandomScalar(src)
	require.NoError(t, err)
	r2, err := group.RandomScalar(src)
	require.NoError(t, err)

	c1 := pk.encG1Raw(group.NewScalarFromInt64(m), r)
	c2 := pk.encG2Raw(group.NewScalarFromInt64(m), r2)

	proof, err := pk.ProveEquality(src, c1, c2, m, r, r2)
	require.NoError(t, err)

	tampered := proof
	tampered.Sm = tampered.Sm.Add(group.NewScalarFromInt64(1))
	require.False(t, pk.VerifyEquality(c1, c2, tampered))
}
