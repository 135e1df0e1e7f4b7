package bgn

import (
	"github.com/0xSamWitch/mcl/group"
	"github.com/0xSamWitch/mcl/rng"
)

// ZkpBin is a Fiat-Shamir OR-proof that a ciphertext encrypts 0 or 1, per
// spec.md §4.7. D00/D10 are the two branches' local challenges (they sum to
// the overall challenge c); D01/D11 are the matching Schnorr responses.
type ZkpBin struct {
	D00, D01, D10, D11 group.Scalar
}

func (z ZkpBin) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 4*group.LFr)
	for _, s := range []group.Scalar{z.D00, z.D01, z.D10, z.D11} {
		b, err := s.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func (z *ZkpBin) UnmarshalBinary(b []byte) error {
	if len(b) != 4*group.LFr {
		return ErrSerialization
	}
	fields := []*group.Scalar{&z.D00, &z.D01, &z.D10, &z.D11}
	for i, f := range fields {
		if err := f.UnmarshalBinary(b[i*group.LFr : (i+1)*group.LFr]); err != nil {
			return err
		}
	}
	return nil
}

const zkpBinDomain = "she-bgn-zkpbin"

// EncWithZkpBinG1 encrypts m in G1 and proves m in {0,1} without revealing
// which, via the OR-composition of two Schnorr proofs spec.md §4.7
// describes: "m=0" proves knowledge of r with C=(r·P, r·xP); "m=1" proves
// the same for C-(yP,zP). encWithZkpBinGi in spec.md's naming.
func (pk PublicKey) EncWithZkpBinG1(src rng.Source, m int64) (CipherTextG1, ZkpBin, error) {
	if m != 0 && m != 1 {
		return CipherTextG1{}, ZkpBin{}, ErrOutOfRange
	}
	r, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG1{}, ZkpBin{}, err
	}
	ct := pk.encG1Raw(group.NewScalarFromInt64(m), r)

	x0 := [2]group.G1{ct.S, ct.T}
	x1 := [2]group.G1{ct.S.Sub(pk.yP), ct.T.Sub(pk.zP)}

	wReal, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG1{}, ZkpBin{}, err
	}
	cFake, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG1{}, ZkpBin{}, err
	}
	zFake, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG1{}, ZkpBin{}, err
	}

	var a0, a1 [2]group.G1
	if m == 0 {
		a0[0] = pk.ctx.P.ScalarMul(wReal)
		a0[1] = pk.xP.ScalarMul(wReal)
		a1[0] = pk.ctx.P.ScalarMul(zFake).Sub(x1[0].ScalarMul(cFake))
		a1[1] = pk.xP.ScalarMul(zFake).Sub(x1[1].ScalarMul(cFake))
	} else {
		a0[0] = pk.ctx.P.ScalarMul(zFake).Sub(x0[0].ScalarMul(cFake))
		a0[1] = pk.xP.ScalarMul(zFake).Sub(x0[1].ScalarMul(cFake))
		a1[0] = pk.ctx.P.ScalarMul(wReal)
		a1[1] = pk.xP.ScalarMul(wReal)
	}

	c := zkpBinChallenge(pk, ct.S, ct.T, a0, a1)

	if m == 0 {
		cReal := c.Sub(cFake)
		zReal := wReal.Add(cReal.Mul(r))
		return ct, ZkpBin{D00: cReal, D01: zReal, D10: cFake, D11: zFake}, nil
	}
	cReal := c.Sub(cFake)
	zReal := wReal.Add(cReal.Mul(r))
	return ct, ZkpBin{D00: cFake, D01: zFake, D10: cReal, D11: zReal}, nil
}

// VerifyZkpBinG1 recomputes both branches' commitments from the proof and
// checks the challenge split, per spec.md §4.7. Fully deterministic.
func (pk PublicKey) VerifyZkpBinG1(ct CipherTextG1, z ZkpBin) bool {
	x0 := [2]group.G1{ct.S, ct.T}
	x1 := [2]group.G1{ct.S.Sub(pk.yP), ct.T.Sub(pk.zP)}

	a0 := [2]group.G1{
		pk.ctx.P.ScalarMul(z.D01).Sub(x0[0].ScalarMul(z.D00)),
		pk.xP.ScalarMul(z.D01).Sub(x0[1].ScalarMul(z.D00)),
	}
	a1 := [2]group.G1{
		pk.ctx.P.ScalarMul(z.D11).Sub(x1[0].ScalarMul(z.D10)),
		pk.xP.ScalarMul(z.D11).Sub(x1[1].ScalarMul(z.D10)),
	}

	c := zkpBinChallenge(pk, ct.S, ct.T, a0, a1)
	return z.D00.Add(z.D10).Equal(c)
}

// EncWithZkpBinG2 and VerifyZkpBinG2 mirror the G1 proof over G2/xQ/yQ/zQ.
func (pk PublicKey) EncWithZkpBinG2(src rng.Source, m int64) (CipherTextG2, ZkpBin, error) {
	if m != 0 && m != 1 {
		return CipherTextG2{}, ZkpBin{}, ErrOutOfRange
	}
	r, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG2{}, ZkpBin{}, err
	}
	ct := pk.encG2Raw(group.NewScalarFromInt64(m), r)

	x0 := [2]group.G2{ct.S, ct.T}
	x1 := [2]group.G2{ct.S.Sub(pk.yQ), ct.T.Sub(pk.zQ)}

	wReal, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG2{}, ZkpBin{}, err
	}
	cFake, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG2{}, ZkpBin{}, err
	}
	zFake, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG2{}, ZkpBin{}, err
	}

	var a0, a1 [2]group.G2
	if m == 0 {
		a0[0] = pk.ctx.Q.ScalarMul(wReal)
		a0[1] = pk.xQ.ScalarMul(wReal)
		a1[0] = pk.ctx.Q.ScalarMul(zFake).Sub(x1[0].ScalarMul(cFake))
		a1[1] = pk.xQ.ScalarMul(zFake).Sub(x1[1].ScalarMul(cFake))
	} else {
		a0[0] = pk.ctx.Q.ScalarMul(zFake).Sub(x0[0].ScalarMul(cFake))
		a0[1] = pk.xQ.ScalarMul(zFake).Sub(x0[1].ScalarMul(cFake))
		a1[0] = pk.ctx.Q.ScalarMul(wReal)
		a1[1] = pk.xQ.ScalarMul(wReal)
	}

	c := zkpBinChallengeG2(pk, ct.S, ct.T, a0, a1)

	if m == 0 {
		cReal := c.Sub(cFake)
		zReal := wReal.Add(cReal.Mul(r))
		return ct, ZkpBin{D00: cReal, D01: zReal, D10: cFake, D11: zFake}, nil
	}
	cReal := c.Sub(cFake)
	zReal := wReal.Add(cReal.Mul(r))
	return ct, ZkpBin{D00: cFake, D01: zFake, D10: cReal, D11: zReal}, nil
}

func (pk PublicKey) VerifyZkpBinG2(ct CipherTextG2, z ZkpBin) bool {
	x0 := [2]group.G2{ct.S, ct.T}
	x1 := [2]group.G2{ct.S.Sub(pk.yQ), ct.T.Sub(pk.zQ)}

	a0 := [2]group.G2{
		pk.ctx.Q.ScalarMul(z.D01).Sub(x0[0].ScalarMul(z.D00)),
		pk.xQ.ScalarMul(z.D01).Sub(x0[1].ScalarMul(z.D00)),
	}
	a1 := [2]group.G2{
		pk.ctx.Q.ScalarMul(z.D11).Sub(x1[0].ScalarMul(z.D10)),
		pk.xQ.ScalarMul(z.D11).Sub(x1[1].ScalarMul(z.D10)),
	}

	c := zkpBinChallengeG2(pk, ct.S, ct.T, a0, a1)
	return z.D00.Add(z.D10).Equal(c)
}

// EncWithZkpBinG1/G2 on PrecomputedPublicKey forward to the cached PK, same
// as its Enc* methods.
func (pk *PrecomputedPublicKey) EncWithZkpBinG1(src rng.Source, m int64) (CipherTextG1, ZkpBin, error) {
	return pk.pk.EncWithZkpBinG1(src, m)
}

func (pk *PrecomputedPublicKey) VerifyZkpBinG1(ct CipherTextG1, z ZkpBin) bool {
	return pk.pk.VerifyZkpBinG1(ct, z)
}

func (pk *PrecomputedPublicKey) EncWithZkpBinG2(src rng.Source, m int64) (CipherTextG2, ZkpBin, error) {
	return pk.pk.EncWithZkpBinG2(src, m)
}

func (pk *PrecomputedPublicKey) VerifyZkpBinG2(ct CipherTextG2, z ZkpBin) bool {
	return pk.pk.VerifyZkpBinG2(ct, z)
}

func zkpBinChallenge(pk PublicKey, s, t group.G1, a0, a1 [2]group.G1) group.Scalar {
	pkb, _ := pk.MarshalBinary()
	sb, _ := s.MarshalBinary()
	tb, _ := t.MarshalBinary()
	a000, _ := a0[0].MarshalBinary()
	a001, _ := a0[1].MarshalBinary()
	a100, _ := a1[0].MarshalBinary()
	a101, _ := a1[1].MarshalBinary()
	return hashToScalar(zkpBinDomain, pkb, sb, tb, a000, a001, a100, a101)
}

func zkpBinChallengeG2(pk PublicKey, s, t group.G2, a0, a1 [2]group.G2) group.Scalar {
	pkb, _ := pk.MarshalBinary()
	sb, _ := s.MarshalBinary()
	tb, _ := t.MarshalBinary()
	a000, _ := a0[0].MarshalBinary()
	a001, _ := a0[1].MarshalBinary()
	a100, _ := a1[0].MarshalBinary()
	a101, _ := a1[1].MarshalBinary()
	return hashToScalar(zkpBinDomain, pkb, sb, tb, a000, a001, a100, a101)
}

// EqualityProof proves a CipherTextG1 and a CipherTextG2 encrypt the same m
// without revealing it, per spec.md §4.7's note that this follows the same
// Fiat-Shamir template. Unlike the bit proof this is a single (non-OR)
// Schnorr proof of the shared witness m across four linear equations (two
// per ciphertext), grounded on the same multi-equation Schnorr skeleton as
// discordwell-OnChainPoker's EncShareProof.
type EqualityProof struct {
	A1, A2      group.G1
	A3, A4      group.G2
	Sm, Sr, Sr2 group.Scalar
}

const equalityDomain = "she-bgn-equality"

// ProveEquality takes the plaintext m and the randomness (r, r2) used to
// build c1 = PK.EncG1(m; r) and c2 = PK.EncG2(m; r2).
func (pk PublicKey) ProveEquality(src rng.Source, c1 CipherTextG1, c2 CipherTextG2, m int64, r, r2 group.Scalar) (EqualityProof, error) {
	wm, err := group.RandomScalar(src)
	if err != nil {
		return EqualityProof{}, err
	}
	wr, err := group.RandomScalar(src)
	if err != nil {
		return EqualityProof{}, err
	}
	wr2, err := group.RandomScalar(src)
	if err != nil {
		return EqualityProof{}, err
	}

	a1 := pk.yP.ScalarMul(wm).Add(pk.ctx.P.ScalarMul(wr))
	a2 := pk.zP.ScalarMul(wm).Add(pk.xP.ScalarMul(wr))
	a3 := pk.yQ.ScalarMul(wm).Add(pk.ctx.Q.ScalarMul(wr2))
	a4 := pk.zQ.ScalarMul(wm).Add(pk.xQ.ScalarMul(wr2))

	c := equalityChallenge(pk, c1, c2, a1, a2, a3, a4)

	mScalar := group.NewScalarFromInt64(m)
	return EqualityProof{
		A1: a1, A2: a2, A3: a3, A4: a4,
		Sm:  wm.Add(c.Mul(mScalar)),
		Sr:  wr.Add(c.Mul(r)),
		Sr2: wr2.Add(c.Mul(r2)),
	}, nil
}

// VerifyEquality checks the four linear relations against the shared
// (Sm, Sr, Sr2) responses.
func (pk PublicKey) VerifyEquality(c1 CipherTextG1, c2 CipherTextG2, proof EqualityProof) bool {
	c := equalityChallenge(pk, c1, c2, proof.A1, proof.A2, proof.A3, proof.A4)

	lhs1 := pk.yP.ScalarMul(proof.Sm).Add(pk.ctx.P.ScalarMul(proof.Sr))
	rhs1 := proof.A1.Add(c1.S.ScalarMul(c))
	if !lhs1.Equal(rhs1) {
		return false
	}
	lhs2 := pk.zP.ScalarMul(proof.Sm).Add(pk.xP.ScalarMul(proof.Sr))
	rhs2 := proof.A2.Add(c1.T.ScalarMul(c))
	if !lhs2.Equal(rhs2) {
		return false
	}
	lhs3 := pk.yQ.ScalarMul(proof.Sm).Add(pk.ctx.Q.ScalarMul(proof.Sr2))
	rhs3 := proof.A3.Add(c2.S.ScalarMul(c))
	if !lhs3.Equal(rhs3) {
		return false
	}
	lhs4 := pk.zQ.ScalarMul(proof.Sm).Add(pk.xQ.ScalarMul(proof.Sr2))
	rhs4 := proof.A4.Add(c2.T.ScalarMul(c))
	return lhs4.Equal(rhs4)
}

func equalityChallenge(pk PublicKey, c1 CipherTextG1, c2 CipherTextG2, a1, a2 group.G1, a3, a4 group.G2) group.Scalar {
	pkb, _ := pk.MarshalBinary()
	c1b, _ := c1.MarshalBinary()
	c2b, _ := c2.MarshalBinary()
	a1b, _ := a1.MarshalBinary()
	a2b, _ := a2.MarshalBinary()
	a3b, _ := a3.MarshalBinary()
	a4b, _ := a4.MarshalBinary()
	return hashToScalar(equalityDomain, pkb, c1b, c2b, a1b, a2b, a3b, a4b)
}
