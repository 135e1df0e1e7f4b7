package dlp

import "errors"

var (
	// ErrRangeZero is returned by Init when hashSize == 0 (spec.md §7).
	ErrRangeZero = errors.New("dlp: hashSize must be nonzero")
	// ErrDlpOutOfRange is returned by Log when the target lies outside
	// ±(tryNum·(2·hashSize+1) + hashSize), the table's MaxRange.
	ErrDlpOutOfRange = errors.New("dlp: discrete log target out of range")
	// ErrTableFormat is returned by Load on a magic/version/length mismatch.
	ErrTableFormat = errors.New("dlp: table file magic, version, or length mismatch")
)
