// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// Object is an instance allocated by ClassCreateInstance: a class pointer
// plus a zero-filled extra region standing in for instance variables. The
// runtime itself never reads Extra; ivar layout fixup is out of scope.
type Object struct {
	Isa   *Class
	Extra []byte
}

// ClassCreateInstance allocates a zero-initialized object whose isa is
// class and whose extra storage is instance_size + extraBytes long. A nil
// class yields a nil object, matching the no-crash-on-bad-input discipline
// the rest of the dispatch surface follows.
func ClassCreateInstance(class *Class, extraBytes int32) *Object {
	if class == nil {
		return nil
	}
	size := class.InstanceSize + extraBytes
	if size < 0 {
		size = 0
	}
	return &Object{Isa: class, Extra: make([]byte, size)}
}

// ObjectDispose releases an object. Go's garbage collector does the actual
// reclamation; this exists so callers mirror the reference API and so a
// future pooled allocator has a seam to plug into.
func ObjectDispose(obj *Object) {
	if obj == nil {
		return
	}
	obj.Isa = nil
	obj.Extra = nil
}
