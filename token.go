// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import "github.com/creachadair/jtok/scan"

// Kind is the syntactic category of a Token.
type Kind byte

// Constants defining the valid Kind values.
const (
	Undefined Kind = iota // zero value; not produced by Parse
	Object                // object: { ... }
	Array                 // array: [ ... ]
	String                // string value or object key
	Primitive             // number, true, false, or null
)

var kindStr = [...]string{
	Undefined: "undefined",
	Object:    "object",
	Array:     "array",
	String:    "string",
	Primitive: "primitive",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Undefined]
	}
	return kindStr[k]
}

// IsContainer reports whether k is Object or Array.
func (k Kind) IsContainer() bool { return k == Object || k == Array }

// IsScalar reports whether k is String or Primitive.
func (k Kind) IsScalar() bool { return k == String || k == Primitive }

// A Token records one syntactic unit of a JSON document. Tokens are stored in
// a flat slice in pre-order, so that the subtree rooted at any token occupies
// a contiguous run of the slice beginning with that token.
type Token struct {
	Kind Kind

	// Start and End are the half-open byte offsets of the content of the token
	// in the source text. For a String they exclude the quotation marks; for an
	// Object or Array they include the brackets.
	Start, End int

	// Size is the number of children the token owns: the number of key-value
	// pairs of an Object, the number of elements of an Array, 1 for a String
	// used as an object key (its value), and 0 otherwise.
	Size int
}

// Len reports the length in bytes of the content of t.
func (t Token) Len() int { return t.End - t.Start }

// IsKey reports whether t is an object key.
func (t Token) IsKey() bool { return t.Kind == String && t.Size == 1 }

// Span reports the byte span of the content of t.
func (t Token) Span() scan.Span { return scan.Span{Pos: t.Start, End: t.End} }
