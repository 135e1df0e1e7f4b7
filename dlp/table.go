// Package dlp implements the baby-step/giant-step discrete-log tables that
// make BGN decryption tractable (Component C): one over the additive group
// G1 (EcTable), one over the multiplicative group GT (GTTable). Both are
// direct ports of original_source/include/mcl/bgn.hpp's
// mcl::bgn::local::EcHashTable and GTHashTable — this is the one component
// with no pack-repo analogue, so the original C++ is the primary grounding
// source rather than a Go library.
package dlp

import (
	"encoding/binary"
	"sort"

	"github.com/0xSamWitch/mcl/group"
)

// keyCount is one baby-step table entry: a 32-bit fingerprint and a signed
// step count whose sign encodes the parity of the baby step, per
// spec.md §4.6.
type keyCount struct {
	key   uint32
	count int32
}

// byKeyThenAbsCount implements the stable sort spec.md §4.6 requires:
// ascending key, and within equal keys, ascending |count|.
type byKeyThenAbsCount []keyCount

func (s byKeyThenAbsCount) Len() int      { return len(s) }
func (s byKeyThenAbsCount) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byKeyThenAbsCount) Less(i, j int) bool {
	if s[i].key != s[j].key {
		return s[i].key < s[j].key
	}
	return absInt32(s[i].count) < absInt32(s[j].count)
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// equalKeyRange returns the [lo, hi) slice of kcv whose key equals k, via
// binary search over the key-sorted table (ties broken by |count|, so the
// key boundary search only needs to compare keys).
func equalKeyRange(kcv []keyCount, k uint32) (int, int) {
	lo := sort.Search(len(kcv), func(i int) bool { return kcv[i].key >= k })
	hi := sort.Search(len(kcv), func(i int) bool { return kcv[i].key > k })
	return lo, hi
}

// EcTable computes discrete logs in the additive group G1 for targets of
// bounded magnitude, via baby-step/giant-step.
type EcTable struct {
	kcv      []keyCount
	p        group.G1
	nextP    group.G1
	hashSize int
	tryNum   int
}

// Init builds the baby-step table for base M: log_M(X) for |X| <= hashSize.
// The giant step nextM = (2*hashSize+1)*M is also precomputed so Log can
// escape the basic range up to tryNum times in each direction.
func (t *EcTable) Init(m group.G1, hashSize int, tryNum int) error {
	if hashSize <= 0 {
		return ErrRangeZero
	}
	t.p = m
	t.hashSize = hashSize
	t.tryNum = tryNum
	t.kcv = make([]keyCount, hashSize)

	acc := m
	for i := 1; i <= hashSize; i++ {
		if i > 1 {
			acc = acc.Add(m)
		}
		count := int32(i)
		if !acc.Parity() {
			count = -count
		}
		t.kcv[i-1] = keyCount{key: acc.Fingerprint(), count: count}
	}
	// nextM = (2*hashSize+1)*M, built from the running accumulator (acc is
	// currently hashSize*M) without a fresh scalar multiplication.
	doubled := acc.Add(acc)
	t.nextP = doubled.Add(m)

	sort.Stable(byKeyThenAbsCount(t.kcv))
	return nil
}

// BasicLog returns k such that x = k*t.p, for |k| <= hashSize, or ok=false
// if no such k is found in the table.
func (t *EcTable) BasicLog(x group.G1) (int64, bool) {
	if x.IsIdentity() {
		return 0, true
	}
	lo, hi := equalKeyRange(t.kcv, x.Fingerprint())
	// x and -x share an X coordinate (and so a fingerprint); a match on
	// either is accepted and the parity test below picks the sign.
	xNeg := x.Neg()
	q := group.G1{}
	prev := int32(0)
	for i := lo; i < hi; i++ {
		entry := t.kcv[i]
		absC := absInt32(entry.count)
		neg := entry.count < 0
		if absC-prev > 0 {
			q = q.Add(t.p.ScalarMul(group.NewScalarFromInt64(int64(absC - prev))))
		}
		if q.Equal(x) || q.Equal(xNeg) {
			if q.Parity() != x.Parity() != neg {
				return int64(-entry.count), true
			}
			return int64(entry.count), true
		}
		prev = absC
	}
	return 0, false
}

// Log computes log_M(X) for |X| <= tryNum*(2*hashSize+1)+hashSize (see
// MaxRange), escaping the basic range by subtracting/adding the giant step
// up to tryNum times.
func (t *EcTable) Log(x group.G1) (int64, error) {
	if c, ok := t.BasicLog(x); ok {
		return c, nil
	}
	pos, neg := x, x
	var posCenter, negCenter int64
	next := int64(t.hashSize)*2 + 1
	for i := 0; i < t.tryNum; i++ {
		pos = pos.Sub(t.nextP)
		posCenter += next
		if c, ok := t.BasicLog(pos); ok {
			return posCenter + c, nil
		}
		neg = neg.Add(t.nextP)
		negCenter -= next
		if c, ok := t.BasicLog(neg); ok {
			return negCenter + c, nil
		}
	}
	return 0, ErrDlpOutOfRange
}

const ecTableMagic uint32 = 0x54454353 // "SCET" little-endian
const tableVersion byte = 1

// Save writes the table in the fixed little-endian format of spec.md §4.6:
// a 4-byte magic, a version byte, hashSize, tryNum, the base point, and the
// sorted (key, count) records.
func (t *EcTable) Save() ([]byte, error) {
	pb, err := t.p.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 4+1+8+8+len(pb)+len(t.kcv)*8)
	head := make([]byte, 4)
	binary.LittleEndian.PutUint32(head, ecTableMagic)
	buf = append(buf, head...)
	buf = append(buf, tableVersion)
	sizes := make([]byte, 16)
	binary.LittleEndian.PutUint64(sizes[0:8], uint64(t.hashSize))
	binary.LittleEndian.PutUint64(sizes[8:16], uint64(t.tryNum))
	buf = append(buf, sizes...)
	buf = append(buf, pb...)
	for _, kc := range t.kcv {
		rec := make([]byte, 8)
		binary.LittleEndian.PutUint32(rec[0:4], kc.key)
		binary.LittleEndian.PutUint32(rec[4:8], uint32(kc.count))
		buf = append(buf, rec...)
	}
	return buf, nil
}

// Load parses a table written by Save, re-deriving the giant step.
func (t *EcTable) Load(buf []byte) error {
	if len(buf) < 4+1+16+group.SizeG1() {
		return ErrTableFormat
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != ecTableMagic {
		return ErrTableFormat
	}
	if buf[4] != tableVersion {
		return ErrTableFormat
	}
	hashSize := int(binary.LittleEndian.Uint64(buf[5:13]))
	tryNum := int(binary.LittleEndian.Uint64(buf[13:21]))
	off := 21
	var p group.G1
	if err := p.UnmarshalBinary(buf[off : off+group.SizeG1()]); err != nil {
		return err
	}
	off += group.SizeG1()
	want := off + hashSize*8
	if len(buf) != want {
		return ErrTableFormat
	}
	kcv := make([]keyCount, hashSize)
	for i := 0; i < hashSize; i++ {
		rec := buf[off+i*8 : off+i*8+8]
		kcv[i] = keyCount{
			key:   binary.LittleEndian.Uint32(rec[0:4]),
			count: int32(binary.LittleEndian.Uint32(rec[4:8])),
		}
	}
	t.p = p
	t.hashSize = hashSize
	t.tryNum = tryNum
	t.kcv = kcv
	acc := p.ScalarMul(group.NewScalarFromInt64(int64(hashSize)))
	t.nextP = acc.Add(acc).Add(p)
	return nil
}

// GTTable computes discrete logs in the multiplicative group GT.
type GTTable struct {
	kcv      []keyCount
	g        group.GT
	nextG    group.GT
	nextGInv group.GT
	hashSize int
	tryNum   int
}

// Init builds the baby-step table for generator g: log_g(X) for |X| <= hashSize.
func (t *GTTable) Init(g group.GT, hashSize int, tryNum int) error {
	if hashSize <= 0 {
		return ErrRangeZero
	}
	t.g = g
	t.hashSize = hashSize
	t.tryNum = tryNum
	t.kcv = make([]keyCount, hashSize)

	var acc group.GT
	for i := 1; i <= hashSize; i++ {
		if i == 1 {
			acc = g
		} else {
			acc = acc.Mul(g)
		}
		count := int32(i)
		if !acc.Parity() {
			count = -count
		}
		t.kcv[i-1] = keyCount{key: acc.Fingerprint(), count: count}
	}
	t.nextG = acc.Mul(acc).Mul(g) // (2*hashSize+1)*g in the exponent
	t.nextGInv = t.nextG.UnitaryInverse()

	sort.Stable(byKeyThenAbsCount(t.kcv))
	return nil
}

// BasicLog returns k such that x = g^k, for |k| <= hashSize, or ok=false if
// no such k is found in the table.
func (t *GTTable) BasicLog(x group.GT) (int64, bool) {
	if x.IsOne() {
		return 0, true
	}
	lo, hi := equalKeyRange(t.kcv, x.Fingerprint())
	// x and its inverse (conjugate) share the C0 fingerprint coefficient; a
	// match on either is accepted and the parity test below picks the sign.
	xInv := x.UnitaryInverse()
	var q group.GT
	first := true
	prev := int32(0)
	for i := lo; i < hi; i++ {
		entry := t.kcv[i]
		absC := absInt32(entry.count)
		neg := entry.count < 0
		if absC-prev > 0 {
			step := t.g.Exp(group.NewScalarFromInt64(int64(absC - prev)))
			if first {
				q = step
				first = false
			} else {
				q = q.Mul(step)
			}
		}
		if !first && (q.Equal(x) || q.Equal(xInv)) {
			if q.Parity() != x.Parity() != neg {
				return int64(-entry.count), true
			}
			return int64(entry.count), true
		}
		prev = absC
	}
	return 0, false
}

// Log computes log_g(X) for |X| <= tryNum*(2*hashSize+1)+hashSize (see
// MaxRange).
func (t *GTTable) Log(x group.GT) (int64, error) {
	if c, ok := t.BasicLog(x); ok {
		return c, nil
	}
	pos, neg := x, x
	var posCenter, negCenter int64
	next := int64(t.hashSize)*2 + 1
	for i := 0; i < t.tryNum; i++ {
		pos = pos.Mul(t.nextGInv)
		posCenter += next
		if c, ok := t.BasicLog(pos); ok {
			return posCenter + c, nil
		}
		neg = neg.Mul(t.nextG)
		negCenter -= next
		if c, ok := t.BasicLog(neg); ok {
			return negCenter + c, nil
		}
	}
	return 0, ErrDlpOutOfRange
}

const gtTableMagic uint32 = 0x54454754 // "TGET" little-endian

// Save writes the table in the fixed format of spec.md §4.6.
func (t *GTTable) Save() ([]byte, error) {
	gb, err := t.g.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 4+1+16+len(gb)+len(t.kcv)*8)
	head := make([]byte, 4)
	binary.LittleEndian.PutUint32(head, gtTableMagic)
	buf = append(buf, head...)
	buf = append(buf, tableVersion)
	sizes := make([]byte, 16)
	binary.LittleEndian.PutUint64(sizes[0:8], uint64(t.hashSize))
	binary.LittleEndian.PutUint64(sizes[8:16], uint64(t.tryNum))
	buf = append(buf, sizes...)
	buf = append(buf, gb...)
	for _, kc := range t.kcv {
		rec := make([]byte, 8)
		binary.LittleEndian.PutUint32(rec[0:4], kc.key)
		binary.LittleEndian.PutUint32(rec[4:8], uint32(kc.count))
		buf = append(buf, rec...)
	}
	return buf, nil
}

// Load parses a table written by Save (this is saveTableForGTDLP /
// loadTableForGTDLP from spec.md §6 — the one piece of persisted state).
func (t *GTTable) Load(buf []byte) error {
	if len(buf) < 4+1+16+group.SizeGT() {
		return ErrTableFormat
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != gtTableMagic {
		return ErrTableFormat
	}
	if buf[4] != tableVersion {
		return ErrTableFormat
	}
	hashSize := int(binary.LittleEndian.Uint64(buf[5:13]))
	tryNum := int(binary.LittleEndian.Uint64(buf[13:21]))
	off := 21
	var g group.GT
	if err := g.UnmarshalBinary(buf[off : off+group.SizeGT()]); err != nil {
		return err
	}
	off += group.SizeGT()
	want := off + hashSize*8
	if len(buf) != want {
		return ErrTableFormat
	}
	kcv := make([]keyCount, hashSize)
	for i := 0; i < hashSize; i++ {
		rec := buf[off+i*8 : off+i*8+8]
		kcv[i] = keyCount{
			key:   binary.LittleEndian.Uint32(rec[0:4]),
			count: int32(binary.LittleEndian.Uint32(rec[4:8])),
		}
	}
	t.g = g
	t.hashSize = hashSize
	t.tryNum = tryNum
	t.kcv = kcv
	acc := g.Exp(group.NewScalarFromInt64(int64(hashSize)))
	t.nextG = acc.Mul(acc).Mul(g)
	t.nextGInv = t.nextG.UnitaryInverse()
	return nil
}

// MaxRange reports the largest |m| this table can resolve: tryNum giant
// steps of size 2*hashSize+1, plus the basic-range radius of hashSize,
// used by tests exercising spec.md's DLP table escape property.
func (t *EcTable) MaxRange() int64 {
	return int64(t.tryNum)*(2*int64(t.hashSize)+1) + int64(t.hashSize)
}
func (t *GTTable) MaxRange() int64 {
	return int64(t.tryNum)*(2*int64(t.hashSize)+1) + int64(t.hashSize)
}
