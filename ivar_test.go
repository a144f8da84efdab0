// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "testing"

func TestIvarListCountAndAt(t *testing.T) {
	l := &IvarList{ivars: []Ivar{
		{Name: "age", Types: "i", Offset: 8},
		{Name: "name", Types: "*", Offset: 12},
	}}

	if got, want := l.Count(), 2; got != want {
		t.Errorf("Count() = %d, want %d", got, want)
	}

	v, err := l.At(1)
	if err != nil {
		t.Fatalf("At(1) failed: %v", err)
	}
	if v.Name != "name" || v.Offset != 12 {
		t.Errorf("At(1) = %+v, want {Name:name Offset:12 ...}", v)
	}
}

func TestIvarListAtOutOfBounds(t *testing.T) {
	l := &IvarList{ivars: []Ivar{{Name: "age"}}}
	if _, err := l.At(5); err != ErrOutOfBounds {
		t.Errorf("At(5) error = %v, want %v", err, ErrOutOfBounds)
	}
	if _, err := l.At(-1); err != ErrOutOfBounds {
		t.Errorf("At(-1) error = %v, want %v", err, ErrOutOfBounds)
	}
}

func TestIvarListCountOnNil(t *testing.T) {
	var l *IvarList
	if got := l.Count(); got != 0 {
		t.Errorf("(*IvarList)(nil).Count() = %d, want 0", got)
	}
}
