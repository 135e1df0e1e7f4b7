package bgn

import (
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/0xSamWitch/mcl/group"
)

// hashToScalar is the fixed hash-to-Fr spec.md §4.7 calls for: a XOF
// (SHAKE256, the ecosystem's analogue of "SHA-256 XOF") over the
// concatenated inputs, truncated and reduced mod r. Used for both the
// Fiat-Shamir challenge and, with a domain tag, for CompactSecretKey's
// deterministic re-derivation of y1, z1, y2, z2 from x1, x2.
func hashToScalar(domain string, parts ...[]byte) group.Scalar {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(domain))
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	// 48 bytes of XOF output gives ~128 bits of bias-free headroom over the
	// 32-byte modulus before the mod-r reduction.
	out := make([]byte, 48)
	_, _ = h.Read(out)
	return group.NewScalarFromBigInt(new(big.Int).SetBytes(out))
}
