// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "testing"

func TestNamePoolInternReturnsSamePointer(t *testing.T) {
	pool := newNamePool()

	a := pool.intern("NSObject")
	b := pool.intern("NSObject")

	if a != b {
		t.Errorf("intern(%q) returned distinct pointers on repeat calls", "NSObject")
	}
}

func TestNamePoolInternDistinctStrings(t *testing.T) {
	pool := newNamePool()

	a := pool.intern("Animal")
	b := pool.intern("Dog")

	if a == b {
		t.Error("intern returned the same Symbol for two distinct strings")
	}
	if a.String() != "Animal" || b.String() != "Dog" {
		t.Errorf("got %q, %q, want %q, %q", a.String(), b.String(), "Animal", "Dog")
	}
}

func TestNamePoolLookupMiss(t *testing.T) {
	pool := newNamePool()

	if _, ok := pool.lookup("Nonexistent"); ok {
		t.Error("lookup found a name that was never interned")
	}
}

func TestSymbolStringOnNil(t *testing.T) {
	var s *Symbol
	if got := s.String(); got != "" {
		t.Errorf("(*Symbol)(nil).String() = %q, want \"\"", got)
	}
}
