// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "testing"

func TestMethodLinked(t *testing.T) {
	m := &Method{RawName: "bark", Types: "v@:"}
	if m.Linked() {
		t.Error("a freshly-parsed method should not report Linked() before linkMethod runs")
	}

	pool := newNamePool()
	sel := newSelectorTable(KeyNameAndType, pool)
	if !linkMethod(sel, m) {
		t.Fatal("linkMethod failed on a well-formed method")
	}
	if !m.Linked() {
		t.Error("linkMethod succeeded but Linked() still reports false")
	}
}

func TestMethodListAllOrdersPrimaryThenSuccessors(t *testing.T) {
	tail := &MethodList{Methods: []*Method{{RawName: "eat"}}}
	head := &MethodList{Methods: []*Method{{RawName: "bark"}, {RawName: "sit"}}, Next: tail}

	got := head.All()
	want := []string{"bark", "sit", "eat"}
	if len(got) != len(want) {
		t.Fatalf("All() returned %d methods, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.RawName != want[i] {
			t.Errorf("All()[%d].RawName = %q, want %q", i, m.RawName, want[i])
		}
	}
}

func TestMethodListIteratorOnNilList(t *testing.T) {
	var l *MethodList
	if got := l.All(); got != nil {
		t.Errorf("All() on a nil MethodList = %v, want nil", got)
	}
}

func TestPrependSplicesAheadOfExisting(t *testing.T) {
	class := &MethodList{Methods: []*Method{{RawName: "bark"}}}
	category := &MethodList{Methods: []*Method{{RawName: "fetch"}}}

	merged := prepend(class, category)
	got := merged.All()
	if len(got) != 2 || got[0].RawName != "fetch" || got[1].RawName != "bark" {
		t.Errorf("prepend produced %v, want [fetch bark]", methodNames(got))
	}
}

func TestPrependNilOtherIsNoop(t *testing.T) {
	class := &MethodList{Methods: []*Method{{RawName: "bark"}}}
	if got := prepend(class, nil); got != class {
		t.Error("prepend(l, nil) should return l unchanged")
	}
}

func methodNames(ms []*Method) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.RawName
	}
	return out
}
