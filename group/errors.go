package group

import "errors"

// ErrSerialization and ErrInvalidPoint are the group-level members of the
// error taxonomy defined in spec.md §7; bgn and dlp define the rest.
var (
	ErrSerialization = errors.New("group: length or format mismatch on deserialize")
	ErrInvalidPoint  = errors.New("group: deserialized point not on curve or not of prime order")
)
