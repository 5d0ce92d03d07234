// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import "errors"

// Errors reported by the methods of a Doc. These are returned without
// wrapping, so callers may compare them directly or with errors.Is.
var (
	// ErrTypeMismatch is reported when an operation is applied to a token of
	// the wrong kind.
	ErrTypeMismatch = errors.New("token has the wrong kind")

	// ErrNotFound is reported when an object has no member with the requested
	// key.
	ErrNotFound = errors.New("key not found")

	// ErrIndexRange is reported when an array index is negative or not less
	// than the size of the array.
	ErrIndexRange = errors.New("index out of range")

	// ErrBufferTooSmall is reported when the content of a token does not fit
	// in the destination buffer.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrParse is reported when the text of a scalar is not a valid literal of
	// the requested type.
	ErrParse = errors.New("invalid literal")

	// ErrInvalidPath is reported by Find for a path element that is neither a
	// string nor an int.
	ErrInvalidPath = errors.New("invalid path element")
)

// ErrTooManyTokens is reported by Parse when the document requires more
// tokens than the capacity of the destination slice.
var ErrTooManyTokens = errors.New("not enough space for tokens")
