// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jtok"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

const (
	publishInput = `{"op":"publish","topic":"/chatter","msg":{"data":"hi"}}`
	arrayInput   = `["str0","str1",{},[],10]`
	nestedInput  = `{"msg": {"data": "hello"}}`
)

// mustDoc parses input into a Doc, failing t if that is not possible.
func mustDoc(t testing.TB, input string) jtok.Doc {
	t.Helper()
	doc, err := jtok.ParseDoc([]byte(input), make([]jtok.Token, 0, 128))
	if err != nil {
		t.Fatalf("Parse %#q: unexpected error: %v", input, err)
	}
	return doc
}

func TestObjectGet(t *testing.T) {
	doc := mustDoc(t, publishInput)
	root := doc.Root()

	tests := []struct {
		key      string
		wantPos  int
		wantKind jtok.Kind
		wantText string
		wantErr  error
	}{
		{"op", 2, jtok.String, "publish", nil},
		{"topic", 4, jtok.String, "/chatter", nil},
		{"msg", 6, jtok.Object, `{"data":"hi"}`, nil},
		{"missing", -1, jtok.Undefined, "", jtok.ErrNotFound},
		{"data", -1, jtok.Undefined, "", jtok.ErrNotFound},    // not a member of the root
		{"Topic", -1, jtok.Undefined, "", jtok.ErrNotFound},   // case sensitive
		{"publish", -1, jtok.Undefined, "", jtok.ErrNotFound}, // values are not keys
	}
	for _, test := range tests {
		pos, err := doc.ObjectGet(root, test.key)
		if err != test.wantErr {
			t.Errorf("ObjectGet(%q): got error %v, want %v", test.key, err, test.wantErr)
		}
		if pos != test.wantPos {
			t.Errorf("ObjectGet(%q): got pos %d, want %d", test.key, pos, test.wantPos)
		}
		if err != nil {
			continue
		}
		if got := doc.Kind(pos); got != test.wantKind {
			t.Errorf("ObjectGet(%q): got kind %v, want %v", test.key, got, test.wantKind)
		}
		if got := string(doc.Content(pos)); got != test.wantText {
			t.Errorf("ObjectGet(%q): got %#q, want %#q", test.key, got, test.wantText)
		}
	}

	t.Run("Nested", func(t *testing.T) {
		msg, err := doc.ObjectGet(root, "msg")
		if err != nil {
			t.Fatalf("ObjectGet(msg): unexpected error: %v", err)
		}
		data, err := doc.ObjectGet(msg, "data")
		if err != nil {
			t.Fatalf("ObjectGet(data): unexpected error: %v", err)
		}
		if !doc.Equal(data, "hi") {
			t.Errorf("ObjectGet(data): got %#q, want hi", doc.Content(data))
		}
	})

	t.Run("NotObject", func(t *testing.T) {
		for _, pos := range []int{1, 2, 8, -1, 9, 100} {
			if got, err := doc.ObjectGet(pos, "op"); err != jtok.ErrTypeMismatch || got != -1 {
				t.Errorf("ObjectGet(%d): got (%d, %v), want (-1, %v)", pos, got, err, jtok.ErrTypeMismatch)
			}
		}
	})

	t.Run("ValueAfterKey", func(t *testing.T) {
		// Every key found must resolve to the token just after the key.
		for k, v := range doc.Members(root) {
			got, err := doc.ObjectGet(root, string(doc.Content(k)))
			if err != nil || got != k+1 || got != v {
				t.Errorf("ObjectGet(%#q): got (%d, %v), want %d", doc.Content(k), got, err, k+1)
			}
		}
	})
}

func TestObjectGetDuplicate(t *testing.T) {
	doc := mustDoc(t, `{"a": [1, {"a": 2}], "a": 3}`)
	pos, err := doc.ObjectGet(doc.Root(), "a")
	if err != nil {
		t.Fatalf("ObjectGet: unexpected error: %v", err)
	}
	if got := doc.Kind(pos); got != jtok.Array {
		t.Errorf("ObjectGet: got %v, want the first member (array)", got)
	}
}

func TestObjectGetMalformed(t *testing.T) {
	// A hand-built object whose first entry owns no value. The entry must not
	// match, and traversal must continue to the following pair.
	text := []byte(`{"k" "k":"v"}`)
	doc := jtok.Doc{Text: text, Tokens: []jtok.Token{
		{Kind: jtok.Object, Start: 0, End: 13, Size: 2},
		{Kind: jtok.String, Start: 2, End: 3, Size: 0},
		{Kind: jtok.String, Start: 6, End: 7, Size: 1},
		{Kind: jtok.String, Start: 10, End: 11, Size: 0},
	}}
	pos, err := doc.ObjectGet(0, "k")
	if err != nil || pos != 3 {
		t.Errorf("ObjectGet: got (%d, %v), want (3, nil)", pos, err)
	}

	// A truncated stream must not be read past its end.
	short := jtok.Doc{Text: text, Tokens: doc.Tokens[:2]}
	if pos, err := short.ObjectGet(0, "k"); err != jtok.ErrNotFound {
		t.Errorf("ObjectGet(truncated): got (%d, %v), want %v", pos, err, jtok.ErrNotFound)
	}
}

func TestArrayGet(t *testing.T) {
	doc := mustDoc(t, arrayInput)
	root := doc.Root()

	if n, err := doc.ArraySize(root); err != nil || n != 5 {
		t.Errorf("ArraySize: got (%d, %v), want (5, nil)", n, err)
	}

	tests := []struct {
		index    int
		wantKind jtok.Kind
		wantText string
		wantSize int
	}{
		{0, jtok.String, "str0", 0},
		{1, jtok.String, "str1", 0},
		{2, jtok.Object, "{}", 0},
		{3, jtok.Array, "[]", 0},
		{4, jtok.Primitive, "10", 0},
	}
	for _, test := range tests {
		pos, err := doc.ArrayGet(root, test.index)
		if err != nil {
			t.Errorf("ArrayGet(%d): unexpected error: %v", test.index, err)
			continue
		}
		tok := doc.At(pos)
		if tok.Kind != test.wantKind || tok.Size != test.wantSize {
			t.Errorf("ArrayGet(%d): got %v/%d, want %v/%d", test.index, tok.Kind, tok.Size, test.wantKind, test.wantSize)
		}
		if got := string(doc.Content(pos)); got != test.wantText {
			t.Errorf("ArrayGet(%d): got %#q, want %#q", test.index, got, test.wantText)
		}
	}

	last, err := doc.ArrayGet(root, 4)
	if err != nil {
		t.Fatalf("ArrayGet(4): unexpected error: %v", err)
	}
	if v, err := doc.Int(last); err != nil || v != 10 {
		t.Errorf("Int: got (%d, %v), want (10, nil)", v, err)
	}

	t.Run("Range", func(t *testing.T) {
		for _, index := range []int{-1, 5, 6, 1000} {
			if pos, err := doc.ArrayGet(root, index); err != jtok.ErrIndexRange {
				t.Errorf("ArrayGet(%d): got (%d, %v), want %v", index, pos, err, jtok.ErrIndexRange)
			}
		}
	})

	t.Run("NotArray", func(t *testing.T) {
		obj, _ := doc.ArrayGet(root, 2)
		for _, pos := range []int{obj, 1, 5, -3, 42} {
			if _, err := doc.ArrayGet(pos, 0); err != jtok.ErrTypeMismatch {
				t.Errorf("ArrayGet(%d, 0): got %v, want %v", pos, err, jtok.ErrTypeMismatch)
			}
			if n, err := doc.ArraySize(pos); err != jtok.ErrTypeMismatch || n != -1 {
				t.Errorf("ArraySize(%d): got (%d, %v), want (-1, %v)", pos, n, err, jtok.ErrTypeMismatch)
			}
		}
	})
}

func TestNext(t *testing.T) {
	inputs := []string{
		publishInput, arrayInput, nestedInput,
		`0`, `"x"`, `{}`, `[]`, `[[[[]]]]`,
		`{"a": {"b": {"c": [1, 2, {"d": null}]}}, "e": [true, false]}`,
	}
	for _, input := range inputs {
		doc := mustDoc(t, input)
		if got, want := doc.Next(doc.Root()), len(doc.Tokens); got != want {
			t.Errorf("Next(root) of %#q: got %d, want %d", input, got, want)
		}
	}

	doc := mustDoc(t, arrayInput)
	tests := []struct {
		pos, want int
	}{
		{0, 6}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6},
	}
	for _, test := range tests {
		if got := doc.Next(test.pos); got != test.want {
			t.Errorf("Next(%d): got %d, want %d", test.pos, got, test.want)
		}
	}

	// Each top-level value follows the end of the one before.
	multi := mustDoc(t, `{"a":1} [2, 3] "four"`)
	var roots []int
	for pos := 0; pos < len(multi.Tokens); pos = multi.Next(pos) {
		roots = append(roots, pos)
	}
	if diff := cmp.Diff([]int{0, 3, 6}, roots); diff != "" {
		t.Errorf("Top-level positions (-want, +got):\n%s", diff)
	}
}

func TestChild(t *testing.T) {
	doc := mustDoc(t, publishInput)
	tests := []struct {
		pos    int
		want   int
		wantOK bool
	}{
		{0, 1, true},   // object → first key
		{1, 2, true},   // key → value
		{2, -1, false}, // string value
		{6, 7, true},   // nested object
		{8, -1, false}, // last token
		{-1, -1, false},
		{9, -1, false},
	}
	for _, test := range tests {
		got, ok := doc.Child(test.pos)
		if got != test.want || ok != test.wantOK {
			t.Errorf("Child(%d): got (%d, %v), want (%d, %v)", test.pos, got, ok, test.want, test.wantOK)
		}
	}

	empty := mustDoc(t, arrayInput)
	if pos, ok := empty.Child(3); ok {
		t.Errorf("Child of empty object: got %d, want none", pos)
	}
}

func TestIterators(t *testing.T) {
	doc := mustDoc(t, publishInput)

	var keys []string
	for k, v := range doc.Members(doc.Root()) {
		keys = append(keys, string(doc.Content(k)))
		if v != k+1 {
			t.Errorf("Member %#q: value at %d, want %d", doc.Content(k), v, k+1)
		}
	}
	if diff := cmp.Diff([]string{"op", "topic", "msg"}, keys); diff != "" {
		t.Errorf("Members (-want, +got):\n%s", diff)
	}

	// Stopping early must be respected.
	var n int
	for range doc.Members(doc.Root()) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("Members: got %d iterations after break, want 1", n)
	}

	arr := mustDoc(t, arrayInput)
	var elts []int
	for i, pos := range arr.Elements(arr.Root()) {
		want, err := arr.ArrayGet(arr.Root(), i)
		if err != nil || want != pos {
			t.Errorf("Element %d: at %d, ArrayGet reports (%d, %v)", i, pos, want, err)
		}
		elts = append(elts, pos)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, elts); diff != "" {
		t.Errorf("Elements (-want, +got):\n%s", diff)
	}

	// Iterators over the wrong kind are empty.
	for range doc.Elements(doc.Root()) {
		t.Error("Elements of an object: got an element, want none")
	}
	for range arr.Members(arr.Root()) {
		t.Error("Members of an array: got a member, want none")
	}
}

func TestFind(t *testing.T) {
	doc := mustDoc(t, `{"results": [{"name": "a", "tags": ["x", "y"]}, {"name": "b", "tags": []}]}`)

	tests := []struct {
		path    []any
		want    string
		wantErr error
	}{
		{nil, "", nil},
		{[]any{"results", 0, "name"}, "a", nil},
		{[]any{"results", 1, "name"}, "b", nil},
		{[]any{"results", -1, "name"}, "b", nil},
		{[]any{"results", 0, "tags", -1}, "y", nil},
		{[]any{"results", 0, "tags", 1}, "y", nil},
		{[]any{"results", 2}, "", jtok.ErrIndexRange},
		{[]any{"results", -3}, "", jtok.ErrIndexRange},
		{[]any{"results", 1, "tags", 0}, "", jtok.ErrIndexRange},
		{[]any{"results", "name"}, "", jtok.ErrTypeMismatch},
		{[]any{0}, "", jtok.ErrTypeMismatch},
		{[]any{"nonesuch"}, "", jtok.ErrNotFound},
		{[]any{"results", 1.5}, "", jtok.ErrInvalidPath},
	}
	for _, test := range tests {
		pos, err := doc.Find(doc.Root(), test.path...)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("Find %v: got error %v, want %v", test.path, err, test.wantErr)
			continue
		} else if err != nil {
			t.Logf("Find %v: got expected error: %v", test.path, err)
			continue
		}
		if test.path == nil {
			if pos != doc.Root() {
				t.Errorf("Find with no path: got %d, want root", pos)
			}
			continue
		}
		if !doc.Equal(pos, test.want) {
			t.Errorf("Find %v: got %#q, want %#q", test.path, doc.Content(pos), test.want)
		}
	}

	// Find agrees with chained lookups.
	results, _ := doc.ObjectGet(doc.Root(), "results")
	first, _ := doc.ArrayGet(results, 0)
	tags, _ := doc.ObjectGet(first, "tags")
	if got, err := doc.Find(doc.Root(), "results", 0, "tags"); err != nil || got != tags {
		t.Errorf("Find: got (%d, %v), want %d", got, err, tags)
	}
}

func TestAt(t *testing.T) {
	doc := mustDoc(t, arrayInput)
	if got, want := doc.At(5), (jtok.Token{Kind: jtok.Primitive, Start: 21, End: 23}); got != want {
		t.Errorf("At(5): got %+v, want %+v", got, want)
	}
	mtest.MustPanic(t, func() { doc.At(6) })
	mtest.MustPanic(t, func() { doc.At(-1) })

	if got := doc.Content(6); got != nil {
		t.Errorf("Content(6): got %#q, want nil", got)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind      jtok.Kind
		str       string
		container bool
		scalar    bool
	}{
		{jtok.Undefined, "undefined", false, false},
		{jtok.Object, "object", true, false},
		{jtok.Array, "array", true, false},
		{jtok.String, "string", false, true},
		{jtok.Primitive, "primitive", false, true},
		{jtok.Kind(99), "undefined", false, false},
	}
	for _, test := range tests {
		if got := test.kind.String(); got != test.str {
			t.Errorf("String(%d): got %q, want %q", test.kind, got, test.str)
		}
		if got := test.kind.IsContainer(); got != test.container {
			t.Errorf("IsContainer(%v): got %v, want %v", test.kind, got, test.container)
		}
		if got := test.kind.IsScalar(); got != test.scalar {
			t.Errorf("IsScalar(%v): got %v, want %v", test.kind, got, test.scalar)
		}
	}
}

func TestNoAllocs(t *testing.T) {
	doc := mustDoc(t, `{"a": [1, 2, {"b": "c"}], "d": {"e": 2.5, "f": true}, "g": "xyz"}`)
	var buf [16]byte

	allocs := testing.AllocsPerRun(100, func() {
		a, _ := doc.ObjectGet(doc.Root(), "a")
		elt, _ := doc.ArrayGet(a, 2)
		b, _ := doc.ObjectGet(elt, "b")
		doc.CopyString(b, buf[:])
		one, _ := doc.ArrayGet(a, 0)
		doc.Int(one)
		d, _ := doc.ObjectGet(doc.Root(), "d")
		e, _ := doc.ObjectGet(d, "e")
		doc.Float(e)
		f, _ := doc.ObjectGet(d, "f")
		doc.Bool(f)
		doc.ObjectGet(doc.Root(), "missing")
		doc.Next(doc.Root())
	})
	if allocs != 0 {
		t.Errorf("Navigation allocated %.1f times per run, want 0", allocs)
	}
}
