// Package group wraps the pairing-friendly group arithmetic this module is
// built on (Component A of the design: G1, G2, GT, Fr, and the pairing
// e = FinalExp ∘ MillerLoop) behind concrete wrapper types, the way the
// teacher wraps cloudflare/circl's bls12381 package behind G1Element /
// G2Element / GTElement. The backend here is gnark-crypto's ecc/bn254
// instead, because it exposes MillerLoop and FinalExponentiation as
// separate operations (see DESIGN.md) — required to defer final
// exponentiation on level-2 ciphertexts.
package group

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/0xSamWitch/mcl/rng"
)

// Curve identifies the pairing-friendly curve family in use. Only BN254 is
// wired to a concrete backend; the others are carried for API shape parity
// with the source library's curve enum and are rejected by NewContext.
type Curve int

const (
	BN254 Curve = iota
	BN381_1
	BN462
	BLS12_381
)

// L is the unit-size parameter (words in Fp) for a curve, mirroring the
// source library's MCLBN_FP_UNIT_SIZE.
func (c Curve) L() int {
	switch c {
	case BN254:
		return 4
	case BN381_1:
		return 6
	case BN462:
		return 8
	case BLS12_381:
		return 4
	default:
		return 0
	}
}

func (c Curve) String() string {
	switch c {
	case BN254:
		return "BN254"
	case BN381_1:
		return "BN381_1"
	case BN462:
		return "BN462"
	case BLS12_381:
		return "BLS12_381"
	default:
		return "unknown"
	}
}

// LFr is the fixed little-endian byte length of a serialized Fr element.
const LFr = fr.Bytes

// Context carries curve selection and the two deterministic generators P, Q.
// There is no process-wide mutable singleton (§9's design note): bgn's key
// constructors (NewSecretKey, UnmarshalSecretKey, UnmarshalPublicKey,
// CompactSecretKey.Expand) take a *Context explicitly; dlp tables take their
// base element directly.
type Context struct {
	Curve Curve
	P     G1
	Q     G2
}

// NewContext derives P and Q deterministically via hash-to-curve from the
// fixed string "0", as spec.md §3 requires. Only BN254 is implemented.
func NewContext(c Curve) (*Context, error) {
	if c != BN254 {
		return nil, fmt.Errorf("group: curve %s has no wired backend", c)
	}
	p, err := HashToG1([]byte("0"))
	if err != nil {
		return nil, err
	}
	q, err := HashToG2([]byte("0"))
	if err != nil {
		return nil, err
	}
	return &Context{Curve: c, P: p, Q: q}, nil
}

// Default builds a fresh BN254 Context. It allocates new state on every
// call; it is a convenience constructor, not a cached singleton.
func Default() *Context {
	ctx, err := NewContext(BN254)
	if err != nil {
		// HashToG1/HashToG2 on a fixed, valid domain string cannot fail.
		panic(err)
	}
	return ctx
}

// Scalar wraps an element of Fr.
type Scalar struct {
	v fr.Element
}

// NewScalarFromBigInt reduces x modulo r and returns the corresponding Scalar.
func NewScalarFromBigInt(x *big.Int) Scalar {
	var s Scalar
	s.v.SetBigInt(x)
	return s
}

// NewScalarFromInt64 reduces a possibly-negative plaintext modulo r, per
// spec.md §4.1 ("negative m is first reduced modulo r").
func NewScalarFromInt64(m int64) Scalar {
	return NewScalarFromBigInt(big.NewInt(m))
}

func (s Scalar) BigInt() *big.Int {
	var out big.Int
	s.v.BigInt(&out)
	return &out
}

func (s Scalar) Add(o Scalar) Scalar {
	var r Scalar
	r.v.Add(&s.v, &o.v)
	return r
}

func (s Scalar) Sub(o Scalar) Scalar {
	var r Scalar
	r.v.Sub(&s.v, &o.v)
	return r
}

func (s Scalar) Mul(o Scalar) Scalar {
	var r Scalar
	r.v.Mul(&s.v, &o.v)
	return r
}

func (s Scalar) Neg() Scalar {
	var r Scalar
	r.v.Neg(&s.v)
	return r
}

func (s Scalar) Inverse() Scalar {
	var r Scalar
	r.v.Inverse(&s.v)
	return r
}

func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

func (s Scalar) Equal(o Scalar) bool {
	return s.v.Equal(&o.v)
}

func (s Scalar) MarshalBinary() ([]byte, error) {
	b := s.v.Bytes()
	out := make([]byte, LFr)
	// fr.Element.Bytes() is big-endian; the wire format is little-endian.
	for i := 0; i < LFr; i++ {
		out[i] = b[LFr-1-i]
	}
	return out, nil
}

func (s *Scalar) UnmarshalBinary(b []byte) error {
	if len(b) != LFr {
		return ErrSerialization
	}
	var be [LFr]byte
	for i := 0; i < LFr; i++ {
		be[i] = b[LFr-1-i]
	}
	s.v.SetBytes(be[:])
	return nil
}

// Modulus returns r, the prime order of G1/G2/GT.
func Modulus() *big.Int {
	return fr.Modulus()
}

// RandomScalar draws a uniform element of Fr from src. Every fresh r, r',
// nonce, and proof blinder in bgn is sampled through this function rather
// than any package-level RNG (spec.md §5/§9).
func RandomScalar(src rng.Source) (Scalar, error) {
	v, err := rng.BigInt(src, Modulus())
	if err != nil {
		return Scalar{}, err
	}
	return NewScalarFromBigInt(v), nil
}

// G1 wraps a point of the prime-order group G1.
type G1 struct {
	p bn254.G1Affine
}

func g1Generator() bn254.G1Affine {
	_, _, g1, _ := bn254.Generators()
	return g1
}

func (g G1) Add(o G1) G1 {
	var r bn254.G1Affine
	var rj bn254.G1Jac
	var gj, oj bn254.G1Jac
	gj.FromAffine(&g.p)
	oj.FromAffine(&o.p)
	rj.Set(&gj).AddAssign(&oj)
	r.FromJacobian(&rj)
	return G1{p: r}
}

func (g G1) Neg() G1 {
	var r bn254.G1Affine
	r.Neg(&g.p)
	return G1{p: r}
}

func (g G1) Sub(o G1) G1 {
	return g.Add(o.Neg())
}

func (g G1) ScalarMul(s Scalar) G1 {
	var r bn254.G1Affine
	r.ScalarMultiplication(&g.p, s.BigInt())
	return G1{p: r}
}

func (g G1) Equal(o G1) bool {
	return g.p.Equal(&o.p)
}

func (g G1) IsIdentity() bool {
	return g.p.IsInfinity()
}

// Fingerprint returns the low 32 bits of the canonical X coordinate.
func (g G1) Fingerprint() uint32 {
	x := g.p.X.BigInt(new(big.Int))
	return uint32(x.Uint64())
}

// Parity reports the oddness of the canonical Y coordinate, used by the DLP
// table to disambiguate ±k.
func (g G1) Parity() bool {
	y := g.p.Y.BigInt(new(big.Int))
	return y.Bit(0) == 1
}

func (g G1) MarshalBinary() ([]byte, error) {
	b := g.p.Bytes()
	return b[:], nil
}

func (g *G1) UnmarshalBinary(b []byte) error {
	_, err := g.p.SetBytes(b)
	if err != nil {
		return ErrInvalidPoint
	}
	return nil
}

// G2 wraps a point of the prime-order group G2.
type G2 struct {
	p bn254.G2Affine
}

func g2Generator() bn254.G2Affine {
	_, _, _, g2 := bn254.Generators()
	return g2
}

func (g G2) Add(o G2) G2 {
	var r bn254.G2Affine
	var rj bn254.G2Jac
	var gj, oj bn254.G2Jac
	gj.FromAffine(&g.p)
	oj.FromAffine(&o.p)
	rj.Set(&gj).AddAssign(&oj)
	r.FromJacobian(&rj)
	return G2{p: r}
}

func (g G2) Neg() G2 {
	var r bn254.G2Affine
	r.Neg(&g.p)
	return G2{p: r}
}

func (g G2) Sub(o G2) G2 {
	return g.Add(o.Neg())
}

func (g G2) ScalarMul(s Scalar) G2 {
	var r bn254.G2Affine
	r.ScalarMultiplication(&g.p, s.BigInt())
	return G2{p: r}
}

func (g G2) Equal(o G2) bool {
	return g.p.Equal(&o.p)
}

func (g G2) IsIdentity() bool {
	return g.p.IsInfinity()
}

func (g G2) Fingerprint() uint32 {
	x := g.p.X.A0.BigInt(new(big.Int))
	return uint32(x.Uint64())
}

func (g G2) Parity() bool {
	y := g.p.Y.A0.BigInt(new(big.Int))
	return y.Bit(0) == 1
}

func (g G2) MarshalBinary() ([]byte, error) {
	b := g.p.Bytes()
	return b[:], nil
}

func (g *G2) UnmarshalBinary(b []byte) error {
	_, err := g.p.SetBytes(b)
	if err != nil {
		return ErrInvalidPoint
	}
	return nil
}

// GT wraps an element of the pairing target group.
type GT struct {
	e bn254.GT
}

func (g GT) Mul(o GT) GT {
	var r bn254.GT
	r.Mul(&g.e, &o.e)
	return GT{e: r}
}

// UnitaryInverse returns the inverse of g, exploiting that GT elements
// produced by a pairing lie in the cyclotomic subgroup (conjugation is
// cheaper than a full field inversion).
func (g GT) UnitaryInverse() GT {
	var r bn254.GT
	r.Conjugate(&g.e)
	return GT{e: r}
}

func (g GT) Exp(s Scalar) GT {
	var r bn254.GT
	r.Exp(g.e, s.BigInt())
	return GT{e: r}
}

func (g GT) Equal(o GT) bool {
	return g.e.Equal(&o.e)
}

func (g GT) IsOne() bool {
	return g.e.IsOne()
}

// Fingerprint and Parity fix the tower coefficient per spec.md §9's open
// question: C0.B0.A0 for the fingerprint and C1.B0.A0 for parity, mirroring
// the reference's getFp0()/b.a.a indexing (see DESIGN.md).
func (g GT) Fingerprint() uint32 {
	x := g.e.C0.B0.A0.BigInt(new(big.Int))
	return uint32(x.Uint64())
}

func (g GT) Parity() bool {
	y := g.e.C1.B0.A0.BigInt(new(big.Int))
	return y.Bit(0) == 1
}

func (g GT) MarshalBinary() ([]byte, error) {
	b := g.e.Bytes()
	return b[:], nil
}

func (g *GT) UnmarshalBinary(b []byte) error {
	if len(b) != 12*LFr {
		return ErrSerialization
	}
	var arr [12 * LFr]byte
	copy(arr[:], b)
	g.e.SetBytes(arr[:])
	return nil
}

// G1Generator and G2Generator return the curve's standard generators (not
// the scheme's hash-derived P, Q — those live on *Context).
func G1Generator() G1 { return G1{p: g1Generator()} }
func G2Generator() G2 { return G2{p: g2Generator()} }

// Pair computes the full pairing e(a, b) = FinalExp(MillerLoop(a, b)).
func Pair(a G1, b G2) GT {
	r, err := bn254.Pair([]bn254.G1Affine{a.p}, []bn254.G2Affine{b.p})
	if err != nil {
		panic(err)
	}
	return GT{e: r}
}

// MillerLoop computes the Miller loop of a and b without the final
// exponentiation. The result is only meaningful once combined with other
// ML outputs and passed through FinalExp.
func MillerLoop(a G1, b G2) GT {
	r, err := bn254.MillerLoop([]bn254.G1Affine{a.p}, []bn254.G2Affine{b.p})
	if err != nil {
		panic(err)
	}
	return GT{e: r}
}

// FinalExp applies the final exponentiation to a pre-final-exp GT value
// (or a product of several, accumulated via Mul).
func FinalExp(g GT) GT {
	return GT{e: bn254.FinalExponentiation(&g.e)}
}


// HashToG1 and HashToG2 deterministically map an arbitrary byte string to a
// point, per spec.md §6's hashAndMapToG1/2 contract.
func HashToG1(msg []byte) (G1, error) {
	p, err := bn254.HashToG1(msg, []byte("she-bgn-g1"))
	if err != nil {
		return G1{}, err
	}
	return G1{p: p}, nil
}

func HashToG2(msg []byte) (G2, error) {
	p, err := bn254.HashToG2(msg, []byte("she-bgn-g2"))
	if err != nil {
		return G2{}, err
	}
	return G2{p: p}, nil
}

// sizeG1/sizeG2/sizeGT are the fixed wire sizes from spec.md §6, used by
// the bgn and dlp serializers.
var (
	sizeG1 = len(new(bn254.G1Affine).Bytes())
	sizeG2 = len(new(bn254.G2Affine).Bytes())
	sizeGT = 12 * LFr
)

func SizeG1() int { return sizeG1 }
func SizeG2() int { return sizeG2 }
func SizeGT() int { return sizeGT }

// PutUint32/GetUint32 are small little-endian helpers; dlp's table codec
// calls encoding/binary directly rather than these.
func PutUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func GetUint32(b []byte) uint32    { return binary.LittleEndian.Uint32(b) }
