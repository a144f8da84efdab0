// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "testing"

func TestClassCreateInstanceSizing(t *testing.T) {
	class := &Class{InstanceSize: 16}

	obj := ClassCreateInstance(class, 4)
	if obj == nil {
		t.Fatal("ClassCreateInstance returned nil for a non-nil class")
	}
	if obj.Isa != class {
		t.Error("ClassCreateInstance did not set Isa to the given class")
	}
	if got, want := len(obj.Extra), 20; got != want {
		t.Errorf("len(Extra) = %d, want %d", got, want)
	}
}

func TestClassCreateInstanceNilClass(t *testing.T) {
	if obj := ClassCreateInstance(nil, 4); obj != nil {
		t.Errorf("ClassCreateInstance(nil, ...) = %v, want nil", obj)
	}
}

func TestClassCreateInstanceClampsNegativeSize(t *testing.T) {
	class := &Class{InstanceSize: 4}
	obj := ClassCreateInstance(class, -8)
	if obj == nil {
		t.Fatal("ClassCreateInstance returned nil unexpectedly")
	}
	if got, want := len(obj.Extra), 0; got != want {
		t.Errorf("len(Extra) = %d, want %d (clamped to zero)", got, want)
	}
}

func TestObjectDisposeClearsFields(t *testing.T) {
	obj := &Object{Isa: &Class{}, Extra: []byte{1, 2, 3}}
	ObjectDispose(obj)
	if obj.Isa != nil || obj.Extra != nil {
		t.Error("ObjectDispose left Isa or Extra set")
	}
}

func TestObjectDisposeNilIsNoop(t *testing.T) {
	ObjectDispose(nil) // must not panic
}
