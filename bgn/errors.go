package bgn

import (
	"errors"

	"github.com/0xSamWitch/mcl/dlp"
	"github.com/0xSamWitch/mcl/group"
)

var (
	// ErrInitOrder is returned by Dec when it runs before SetDecodeRange.
	ErrInitOrder = errors.New("bgn: called before SetDecodeRange")
	// ErrLevelMismatch is returned by Add when ciphertext levels or
	// source-group tags disagree, and by Dec/Rerandomize for an unknown
	// CipherText type. Mul takes a CipherTextG1 and a CipherTextG2, so a
	// level-2 operand is rejected at compile time rather than with this error.
	ErrLevelMismatch = errors.New("bgn: ciphertext level or source-group mismatch")
	// ErrOutOfRange is returned when a plaintext falls outside the domain a
	// given operation supports (e.g. a bit proof with m not in {0,1}).
	ErrOutOfRange = errors.New("bgn: plaintext out of range for this operation")

	// ErrRangeZero, ErrDlpOutOfRange, and ErrTableFormat are the dlp
	// package's sentinels, re-exported here so bgn callers can errors.Is
	// against a single package without reaching into dlp directly.
	ErrRangeZero     = dlp.ErrRangeZero
	ErrDlpOutOfRange = dlp.ErrDlpOutOfRange
	ErrTableFormat   = dlp.ErrTableFormat

	// ErrSerialization and ErrInvalidPoint are group's sentinels, re-exported
	// for the same reason.
	ErrSerialization = group.ErrSerialization
	ErrInvalidPoint  = group.ErrInvalidPoint
)
