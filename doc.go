// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtok navigates JSON documents represented as a flat array of
// tokens, without building a tree of values.
//
// # Tokens
//
// Parse fills a caller-provided slice with one Token per syntactic unit of the
// input, in pre-order. Each token records its Kind, the byte span of its
// content, and the number of children it owns (its Size). Parse never grows
// the slice; if the document needs more tokens than the slice can hold, it
// reports ErrTooManyTokens. Use Count to find how many tokens are needed:
//
//	n, err := jtok.Count(text)
//	if err != nil {
//	   log.Fatalf("Invalid JSON: %v", err)
//	}
//	toks, err := jtok.Parse(text, make([]jtok.Token, 0, n))
//
// # Navigation
//
// A Doc pairs the source text with its tokens. Its methods locate values by
// token position, an offset into the token slice. The root value of a
// document is at position 0:
//
//	doc := jtok.Doc{Text: text, Tokens: toks}
//	msg, err := doc.ObjectGet(doc.Root(), "msg")
//	if errors.Is(err, jtok.ErrNotFound) {
//	   log.Print("No message")
//	}
//	data, err := doc.ObjectGet(msg, "data")
//
// The structure of the document is recovered from the Size of each token as
// needed; no parent or sibling links are stored. Looking up a key or an array
// index costs time proportional to the tokens skipped to reach it.
//
// The methods of a Doc do not modify the text or the tokens, so a Doc may be
// shared by concurrent readers. Apart from Find and Unquote they also do not
// allocate. Scalar values are extracted either as views of the source text
// (Content) or by copying into a caller-provided buffer (CopyString,
// CopyContent, Unquote).
//
// # Errors
//
// Navigation failures are reported as sentinel errors (ErrTypeMismatch,
// ErrNotFound, ErrIndexRange, ErrBufferTooSmall, ErrParse). Whether a missing
// key is an error is for the caller to decide.
//
// The jpath subpackage compiles path expressions like "$.msg.data[0]" into
// arguments for Find.
package jtok
