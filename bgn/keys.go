// Package bgn implements the BGN-style somewhat-homomorphic scheme
// (Components B, D, E of the design) over the abstract group package:
// key generation, ciphertext arithmetic, decryption via the dlp tables,
// and Fiat-Shamir bit proofs. Grounded on
// original_source/include/mcl/bgn.hpp's BGNT<BN,Fr> template, with the
// teacher's key/value-object shape (models.go's SecretKey/PublicKey/CRS)
// kept for the struct layout and MarshalBinary convention.
package bgn

import (
	"github.com/rs/zerolog/log"

	"github.com/0xSamWitch/mcl/dlp"
	"github.com/0xSamWitch/mcl/group"
	"github.com/0xSamWitch/mcl/rng"
)

// SecretKey holds the six scalars spec.md §3 defines and the two DLP
// tables keyed on B1 and g. Immutable after SetDecodeRange per spec.md §5;
// SetDecodeRange itself is the one mutating call and must not race with
// decryption.
type SecretKey struct {
	ctx                    *group.Context
	x1, y1, z1, x2, y2, z2 group.Scalar
	b1                     group.G1
	b2                     group.G2
	xx                     group.Scalar
	g                      group.GT

	ecTbl *dlp.EcTable
	gtTbl *dlp.GTTable
}

// NewSecretKey samples x1, y1, z1, x2, y2, z2 uniformly from src and derives
// B1, B2, xx, g, mirroring SK::setByCSPRNG.
func NewSecretKey(ctx *group.Context, src rng.Source) (*SecretKey, error) {
	scalars := make([]group.Scalar, 6)
	for i := range scalars {
		s, err := group.RandomScalar(src)
		if err != nil {
			return nil, err
		}
		scalars[i] = s
	}
	return deriveSecretKey(ctx, scalars[0], scalars[1], scalars[2], scalars[3], scalars[4], scalars[5]), nil
}

func deriveSecretKey(ctx *group.Context, x1, y1, z1, x2, y2, z2 group.Scalar) *SecretKey {
	b1 := ctx.P.ScalarMul(x1.Mul(y1).Sub(z1))
	b2 := ctx.Q.ScalarMul(x2.Mul(y2).Sub(z2))
	return &SecretKey{
		ctx: ctx,
		x1:  x1, y1: y1, z1: z1,
		x2: x2, y2: y2, z2: z2,
		b1: b1, b2: b2,
		xx: x1.Mul(x2),
		g:  group.Pair(b1, b2),
	}
}

// SetDecodeRange builds the EC table on B1 and the GT table on g. Must run
// before any Dec/DecG1ViaGT/DecG2ViaGT call; operations attempted before it
// return ErrInitOrder.
func (sk *SecretKey) SetDecodeRange(hashSize, tryNum int) error {
	ecTbl := &dlp.EcTable{}
	if err := ecTbl.Init(sk.b1, hashSize, tryNum); err != nil {
		return err
	}
	gtTbl := &dlp.GTTable{}
	if err := gtTbl.Init(sk.g, hashSize, tryNum); err != nil {
		return err
	}
	sk.ecTbl, sk.gtTbl = ecTbl, gtTbl
	return nil
}

// GetPublicKey computes the six public points (x1·P, y1·P, z1·P, x2·Q,
// y2·Q, z2·Q).
func (sk *SecretKey) GetPublicKey() PublicKey {
	return PublicKey{
		ctx: sk.ctx,
		xP:  sk.ctx.P.ScalarMul(sk.x1),
		yP:  sk.ctx.P.ScalarMul(sk.y1),
		zP:  sk.ctx.P.ScalarMul(sk.z1),
		xQ:  sk.ctx.Q.ScalarMul(sk.x2),
		yQ:  sk.ctx.Q.ScalarMul(sk.y2),
		zQ:  sk.ctx.Q.ScalarMul(sk.z2),
	}
}

// MarshalBinary serializes the full six-scalar form; see DESIGN.md for why
// this profile was chosen over the minimal 2·L_Fr (x1, x2) form spec.md §6
// names — the real derivation is not invertible from x1, x2 alone.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 6*group.LFr)
	for _, s := range []group.Scalar{sk.x1, sk.y1, sk.z1, sk.x2, sk.y2, sk.z2} {
		b, err := s.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// UnmarshalSecretKey rebuilds a SecretKey from the six-scalar wire form. It
// takes ctx explicitly rather than implementing encoding.BinaryUnmarshaler,
// since deriving B1/B2/g needs the scheme's P, Q (spec.md §9: no process-
// wide curve singleton).
func UnmarshalSecretKey(ctx *group.Context, b []byte) (*SecretKey, error) {
	if len(b) != 6*group.LFr {
		return nil, ErrSerialization
	}
	scalars := make([]group.Scalar, 6)
	for i := range scalars {
		var s group.Scalar
		if err := s.UnmarshalBinary(b[i*group.LFr : (i+1)*group.LFr]); err != nil {
			return nil, err
		}
		scalars[i] = s
	}
	return deriveSecretKey(ctx, scalars[0], scalars[1], scalars[2], scalars[3], scalars[4], scalars[5]), nil
}

// CompactSecretKey holds only (x1, x2), the 2·L_Fr profile spec.md §6/§9
// describes as the observed byte length. Expand re-derives y1, z1, y2, z2
// deterministically (not by re-sampling) via hashToScalar, so the same
// CompactSecretKey always expands to the same SecretKey.
type CompactSecretKey struct {
	X1, X2 group.Scalar
}

// MarshalBinary writes x1 || x2, 2·L_Fr bytes.
func (c CompactSecretKey) MarshalBinary() ([]byte, error) {
	a, err := c.X1.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b, err := c.X2.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(a, b...), nil
}

// UnmarshalBinary parses the 2·L_Fr wire form.
func (c *CompactSecretKey) UnmarshalBinary(b []byte) error {
	if len(b) != 2*group.LFr {
		return ErrSerialization
	}
	if err := c.X1.UnmarshalBinary(b[:group.LFr]); err != nil {
		return err
	}
	return c.X2.UnmarshalBinary(b[group.LFr:])
}

// Expand deterministically re-derives y1, z1, y2, z2 from x1, x2 and
// rebuilds the full SecretKey.
func (c CompactSecretKey) Expand(ctx *group.Context) (*SecretKey, error) {
	x1b, err := c.X1.MarshalBinary()
	if err != nil {
		return nil, err
	}
	x2b, err := c.X2.MarshalBinary()
	if err != nil {
		return nil, err
	}
	y1 := hashToScalar("she-bgn-compact-sk-y1", x1b)
	z1 := hashToScalar("she-bgn-compact-sk-z1", x1b)
	y2 := hashToScalar("she-bgn-compact-sk-y2", x2b)
	z2 := hashToScalar("she-bgn-compact-sk-z2", x2b)
	return deriveSecretKey(ctx, c.X1, y1, z1, c.X2, y2, z2), nil
}

// PublicKey holds the six public points (xP, yP, zP, xQ, yQ, zQ).
type PublicKey struct {
	ctx        *group.Context
	xP, yP, zP group.G1
	xQ, yQ, zQ group.G2
}

// MarshalBinary serializes all six points (the G1 triple followed by the
// G2 triple). spec.md §6 names only the G1 triple (3·L_Fr) as mandatory and
// leaves the G2 triple "MAY be derivable or also serialized depending on
// profile" — here it isn't derivable (x2,y2,z2 are independent secrets from
// x1,y1,z1), so we always serialize both; the G1 triple is a byte-prefix of
// this encoding for callers that only need G1-side public material.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 3*group.SizeG1()+3*group.SizeG2())
	for _, p := range []group.G1{pk.xP, pk.yP, pk.zP} {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	for _, p := range []group.G2{pk.xQ, pk.yQ, pk.zQ} {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// UnmarshalPublicKey parses the wire form MarshalBinary writes.
func UnmarshalPublicKey(ctx *group.Context, b []byte) (PublicKey, error) {
	want := 3*group.SizeG1() + 3*group.SizeG2()
	if len(b) != want {
		return PublicKey{}, ErrSerialization
	}
	pk := PublicKey{ctx: ctx}
	off := 0
	g1s := make([]*group.G1, 3)
	g1s[0], g1s[1], g1s[2] = &pk.xP, &pk.yP, &pk.zP
	for _, dst := range g1s {
		if err := dst.UnmarshalBinary(b[off : off+group.SizeG1()]); err != nil {
			return PublicKey{}, err
		}
		off += group.SizeG1()
	}
	g2s := make([]*group.G2, 3)
	g2s[0], g2s[1], g2s[2] = &pk.xQ, &pk.yQ, &pk.zQ
	for _, dst := range g2s {
		if err := dst.UnmarshalBinary(b[off : off+group.SizeG2()]); err != nil {
			return PublicKey{}, err
		}
		off += group.SizeG2()
	}
	return pk, nil
}

// PrecomputedPublicKey caches the six public points as struct fields so
// repeated Enc/proof calls skip re-deriving them; gnark-crypto exposes no
// public half-Miller-loop precompute primitive to cache beyond that (see
// DESIGN.md). Construction is a pure function of PK; there is no Destroy
// — the GC reclaims it, per spec.md §4.8's lifetime note and DESIGN.md's
// Open Question resolution.
type PrecomputedPublicKey struct {
	pk PublicKey
}

// NewPrecomputedPublicKey builds the cache. Invalidated implicitly by
// re-keying: callers must build a fresh PrecomputedPublicKey from the new
// PublicKey rather than mutating this one (it has no exported setters).
func NewPrecomputedPublicKey(pk PublicKey) *PrecomputedPublicKey {
	log.Debug().Msg("bgn: precomputed public key cache built")
	return &PrecomputedPublicKey{pk: pk}
}
