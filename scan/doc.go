// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package scan implements a lexical scanner and an event-driven stream parser
// for JSON text held in memory.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from a byte slice and call its Next method to iterate over the input. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := scan.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v %s", s.Token(), s.Span())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates a lexical error in the input.  The scanner never copies its
// input: Text returns a view of the current token.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON.  The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type *scan.SyntaxError is returned.
//
//	s := scan.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available.
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. The Anchor passed to a handler method is only valid
// for the duration of that method call.
package scan
