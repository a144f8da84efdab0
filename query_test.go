// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "testing"

func TestQuerySurfaceNilSafety(t *testing.T) {
	if got := ObjectGetClass(nil); got != nil {
		t.Errorf("ObjectGetClass(nil) = %v, want nil", got)
	}
	if got := ClassGetSuperclass(nil); got != nil {
		t.Errorf("ClassGetSuperclass(nil) = %v, want nil", got)
	}
	if got := ClassGetName(nil); got != "" {
		t.Errorf("ClassGetName(nil) = %q, want \"\"", got)
	}
	if got := ClassIsMetaClass(nil); got {
		t.Error("ClassIsMetaClass(nil) = true, want false")
	}
	if _, ok := ClassGetInstanceMethod(nil, nil); ok {
		t.Error("ClassGetInstanceMethod(nil, nil) reported a hit")
	}
	if _, ok := ClassGetClassMethod(nil, nil); ok {
		t.Error("ClassGetClassMethod(nil, nil) reported a hit")
	}
}

func TestObjectGetClassAndClassIsMetaClass(t *testing.T) {
	pool := newNamePool()
	cls := newTestClass(pool, "Animal")
	obj := &Object{Isa: cls}

	if ObjectGetClass(obj) != cls {
		t.Error("ObjectGetClass did not return the object's isa")
	}
	if ClassIsMetaClass(cls) {
		t.Error("a class record should not report IsMetaClass")
	}

	meta := newTestClass(pool, "Animal")
	meta.Info = ClassInfo(infoIsMeta)
	if !ClassIsMetaClass(meta) {
		t.Error("a metaclass record should report IsMetaClass")
	}
}

func TestGetClassAndGetMetaClassMiss(t *testing.T) {
	rt := NewRuntime(nil)
	if rt.GetClass("Nonexistent") != nil {
		t.Error("GetClass should return nil for an unregistered name")
	}
	if rt.GetMetaClass("Nonexistent") != nil {
		t.Error("GetMetaClass should return nil for an unregistered name")
	}
}
