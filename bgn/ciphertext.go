package bgn

import (
	"github.com/0xSamWitch/mcl/group"
	"github.com/0xSamWitch/mcl/rng"
)

// CipherText is the sum type spec.md §9 calls for: Additive(CT_G1|CT_G2) or
// Multiplied(CT_GT), rejected by type-switch pattern match rather than an
// exception hierarchy.
type CipherText interface {
	Level() int
	SourceGroup() string
}

// CipherTextG1 is a level-1 ciphertext (S, T) in G1.
type CipherTextG1 struct {
	S, T group.G1
}

func (CipherTextG1) Level() int          { return 1 }
func (CipherTextG1) SourceGroup() string { return "G1" }

// Add is componentwise G1 addition. Mixing with a different level or
// source group is a type error the Go compiler already rejects; the
// ErrLevelMismatch path only shows up through the CipherText interface
// (see Add, the package-level dispatcher).
func (c CipherTextG1) Add(o CipherTextG1) CipherTextG1 {
	return CipherTextG1{S: c.S.Add(o.S), T: c.T.Add(o.T)}
}

func (c CipherTextG1) Neg() CipherTextG1 {
	return CipherTextG1{S: c.S.Neg(), T: c.T.Neg()}
}

func (c CipherTextG1) Sub(o CipherTextG1) CipherTextG1 {
	return c.Add(o.Neg())
}

// ScalarMul scales by a plaintext k, per spec.md §4.2.
func (c CipherTextG1) ScalarMul(k int64) CipherTextG1 {
	s := group.NewScalarFromInt64(k)
	return CipherTextG1{S: c.S.ScalarMul(s), T: c.T.ScalarMul(s)}
}

func (c CipherTextG1) MarshalBinary() ([]byte, error) {
	return marshalPoints(c.S, c.T)
}

func (c *CipherTextG1) UnmarshalBinary(b []byte) error {
	if len(b) != 2*group.SizeG1() {
		return ErrSerialization
	}
	if err := c.S.UnmarshalBinary(b[:group.SizeG1()]); err != nil {
		return err
	}
	return c.T.UnmarshalBinary(b[group.SizeG1():])
}

// CipherTextG2 is a level-1 ciphertext (S', T') in G2.
type CipherTextG2 struct {
	S, T group.G2
}

func (CipherTextG2) Level() int          { return 1 }
func (CipherTextG2) SourceGroup() string { return "G2" }

func (c CipherTextG2) Add(o CipherTextG2) CipherTextG2 {
	return CipherTextG2{S: c.S.Add(o.S), T: c.T.Add(o.T)}
}

func (c CipherTextG2) Neg() CipherTextG2 {
	return CipherTextG2{S: c.S.Neg(), T: c.T.Neg()}
}

func (c CipherTextG2) Sub(o CipherTextG2) CipherTextG2 {
	return c.Add(o.Neg())
}

func (c CipherTextG2) ScalarMul(k int64) CipherTextG2 {
	s := group.NewScalarFromInt64(k)
	return CipherTextG2{S: c.S.ScalarMul(s), T: c.T.ScalarMul(s)}
}

func (c CipherTextG2) MarshalBinary() ([]byte, error) {
	a, err := c.S.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b, err := c.T.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(a, b...), nil
}

func (c *CipherTextG2) UnmarshalBinary(b []byte) error {
	if len(b) != 2*group.SizeG2() {
		return ErrSerialization
	}
	if err := c.S.UnmarshalBinary(b[:group.SizeG2()]); err != nil {
		return err
	}
	return c.T.UnmarshalBinary(b[group.SizeG2():])
}

// CipherTextGT is a level-2 ciphertext: four GT elements g[0..3]. They are
// stored pre-final-exponentiation unless finalExpApplied is set, per
// spec.md §9's deferred-FE optimization.
type CipherTextGT struct {
	G               [4]group.GT
	finalExpApplied bool
}

func (CipherTextGT) Level() int          { return 2 }
func (CipherTextGT) SourceGroup() string { return "GT" }

// Add multiplies the four components elementwise. Valid whether or not
// finalExpApplied, because final exponentiation is itself a power map and
// so commutes with multiplication: FE(a)*FE(b) = FE(a*b). Both operands
// must agree on finalExpApplied; combining pre- and post-FE ciphertexts
// silently produces a meaningless value, so callers must track that
// invariant the same way spec.md tracks level/source-group tags.
func (c CipherTextGT) Add(o CipherTextGT) CipherTextGT {
	var r CipherTextGT
	r.finalExpApplied = c.finalExpApplied
	for i := range c.G {
		r.G[i] = c.G[i].Mul(o.G[i])
	}
	return r
}

func (c CipherTextGT) ScalarMul(k int64) CipherTextGT {
	s := group.NewScalarFromInt64(k)
	var r CipherTextGT
	r.finalExpApplied = c.finalExpApplied
	for i := range c.G {
		r.G[i] = c.G[i].Exp(s)
	}
	return r
}

func (c CipherTextGT) Neg() CipherTextGT {
	return c.ScalarMul(-1)
}

func (c CipherTextGT) Sub(o CipherTextGT) CipherTextGT {
	return c.Add(o.Neg())
}

// FinalExpGT applies the final exponentiation to each of the four
// components, producing the "eager" representation the allOp/finalExp
// scenarios in she_c_test.hpp exercise (mulML + mulML, add, FinalExpGT,
// then dec — equal to computing each Mul eagerly and adding).
func FinalExpGT(c CipherTextGT) CipherTextGT {
	var r CipherTextGT
	r.finalExpApplied = true
	for i := range c.G {
		r.G[i] = group.FinalExp(c.G[i])
	}
	return r
}

func (c CipherTextGT) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 4*group.SizeGT())
	for _, g := range c.G {
		b, err := g.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func (c *CipherTextGT) UnmarshalBinary(b []byte) error {
	if len(b) != 4*group.SizeGT() {
		return ErrSerialization
	}
	for i := range c.G {
		if err := c.G[i].UnmarshalBinary(b[i*group.SizeGT() : (i+1)*group.SizeGT()]); err != nil {
			return err
		}
	}
	c.finalExpApplied = false
	return nil
}

// Add is the package-level dispatcher for the CipherText sum type: it
// accepts any two CipherText values and rejects a level/source-group
// mismatch with ErrLevelMismatch, per spec.md §4.2 and §9's pattern-match
// design note.
func Add(a, b CipherText) (CipherText, error) {
	switch av := a.(type) {
	case CipherTextG1:
		bv, ok := b.(CipherTextG1)
		if !ok {
			return nil, ErrLevelMismatch
		}
		return av.Add(bv), nil
	case CipherTextG2:
		bv, ok := b.(CipherTextG2)
		if !ok {
			return nil, ErrLevelMismatch
		}
		return av.Add(bv), nil
	case CipherTextGT:
		bv, ok := b.(CipherTextGT)
		if !ok || bv.finalExpApplied != av.finalExpApplied {
			return nil, ErrLevelMismatch
		}
		return av.Add(bv), nil
	default:
		return nil, ErrLevelMismatch
	}
}

// MulML multiplies a G1 ciphertext by a G2 ciphertext, producing a level-2
// ciphertext pre-final-exponentiation: g0=ML(S,S'), g1=ML(S,T'),
// g2=ML(T,S'), g3=ML(T,T'). Never permitted between two level-2
// ciphertexts (there is no overload accepting CipherTextGT, by
// construction).
func MulML(a CipherTextG1, b CipherTextG2) CipherTextGT {
	return CipherTextGT{G: [4]group.GT{
		group.MillerLoop(a.S, b.S),
		group.MillerLoop(a.S, b.T),
		group.MillerLoop(a.T, b.S),
		group.MillerLoop(a.T, b.T),
	}}
}

// Mul is MulML under the name spec.md §4.2 and §8's test vectors use.
func Mul(a CipherTextG1, b CipherTextG2) CipherTextGT {
	return MulML(a, b)
}

// ConvertG2ToGT turns a level-1 G2 ciphertext into a level-2 GT ciphertext
// encrypting the same m, by pairing against (yP, zP) as a deterministic
// Enc(1), per spec.md §4.3. The caller MUST Rerandomize if unlinkability
// matters — this conversion uses randomness 0.
func ConvertG2ToGT(pk PublicKey, c CipherTextG2) CipherTextGT {
	return CipherTextGT{G: [4]group.GT{
		group.MillerLoop(pk.yP, c.S),
		group.MillerLoop(pk.yP, c.T),
		group.MillerLoop(pk.zP, c.S),
		group.MillerLoop(pk.zP, c.T),
	}}
}

// ConvertG1ToGT is the symmetric conversion using (yQ, zQ).
func ConvertG1ToGT(pk PublicKey, c CipherTextG1) CipherTextGT {
	return CipherTextGT{G: [4]group.GT{
		group.MillerLoop(c.S, pk.yQ),
		group.MillerLoop(c.S, pk.zQ),
		group.MillerLoop(c.T, pk.yQ),
		group.MillerLoop(c.T, pk.zQ),
	}}
}

func marshalPoints(pts ...group.G1) ([]byte, error) {
	out := make([]byte, 0, len(pts)*group.SizeG1())
	for _, p := range pts {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// encG1Raw and encG2Raw take an explicit r rather than sampling one, so
// Rerandomize's level-2 path (spec.md §4.5) and the proof code can encrypt
// under a scalar they already hold.
func (pk PublicKey) encG1Raw(m, r group.Scalar) CipherTextG1 {
	return CipherTextG1{
		S: pk.yP.ScalarMul(m).Add(pk.ctx.P.ScalarMul(r)),
		T: pk.zP.ScalarMul(m).Add(pk.xP.ScalarMul(r)),
	}
}

func (pk PublicKey) encG2Raw(m, r group.Scalar) CipherTextG2 {
	return CipherTextG2{
		S: pk.yQ.ScalarMul(m).Add(pk.ctx.Q.ScalarMul(r)),
		T: pk.zQ.ScalarMul(m).Add(pk.xQ.ScalarMul(r)),
	}
}

// EncG1 samples a fresh r and returns (m·yP + r·P, m·zP + r·xP).
func (pk PublicKey) EncG1(src rng.Source, m int64) (CipherTextG1, error) {
	r, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG1{}, err
	}
	return pk.encG1Raw(group.NewScalarFromInt64(m), r), nil
}

// EncG2 samples a fresh r' and returns (m·yQ + r'·Q, m·zQ + r'·xQ).
func (pk PublicKey) EncG2(src rng.Source, m int64) (CipherTextG2, error) {
	r, err := group.RandomScalar(src)
	if err != nil {
		return CipherTextG2{}, err
	}
	return pk.encG2Raw(group.NewScalarFromInt64(m), r), nil
}

// EncGT encrypts in G2 then converts, per spec.md §4.1's primary recipe.
func (pk PublicKey) EncGT(src rng.Source, m int64) (CipherTextGT, error) {
	ct, err := pk.EncG2(src, m)
	if err != nil {
		return CipherTextGT{}, err
	}
	return ConvertG2ToGT(pk, ct), nil
}

// EncG1, EncG2, and EncGT forward to the cached PublicKey: the "cache" in
// PrecomputedPublicKey is the six public points held as struct fields
// rather than re-derived from a SecretKey on every call, per spec.md
// §4.8 ("construction is a pure function of PK"). gnark-crypto exposes no
// public half-Miller-loop precompute primitive to cache beyond that (see
// DESIGN.md).
func (pk *PrecomputedPublicKey) EncG1(src rng.Source, m int64) (CipherTextG1, error) {
	return pk.pk.EncG1(src, m)
}

func (pk *PrecomputedPublicKey) EncG2(src rng.Source, m int64) (CipherTextG2, error) {
	return pk.pk.EncG2(src, m)
}

func (pk *PrecomputedPublicKey) EncGT(src rng.Source, m int64) (CipherTextGT, error) {
	return pk.pk.EncGT(src, m)
}

// Rerandomize adds a fresh encryption of zero: for level-1 ciphertexts,
// directly; for level-2, it multiplies by MulML(EncG1(0,r), (Q, xQ)), per
// spec.md §4.5 and bgn.hpp's rerandomize(CipherTextM&) — the right operand
// stays the unscaled (Q, xQ), with only the left side carrying the fresh
// r. Reusing r to scale both sides would mask the ciphertext with e(P,Q)^r²
// instead of a uniform exponent, halving the mask's entropy.
func (pk PublicKey) Rerandomize(src rng.Source, ct CipherText) (CipherText, error) {
	switch c := ct.(type) {
	case CipherTextG1:
		zero, err := pk.EncG1(src, 0)
		if err != nil {
			return nil, err
		}
		return c.Add(zero), nil
	case CipherTextG2:
		zero, err := pk.EncG2(src, 0)
		if err != nil {
			return nil, err
		}
		return c.Add(zero), nil
	case CipherTextGT:
		r, err := group.RandomScalar(src)
		if err != nil {
			return nil, err
		}
		zero := MulML(pk.encG1Raw(group.NewScalarFromInt64(0), r), CipherTextG2{S: pk.ctx.Q, T: pk.xQ})
		if c.finalExpApplied {
			zero = FinalExpGT(zero)
		}
		return c.Add(zero), nil
	default:
		return nil, ErrLevelMismatch
	}
}
