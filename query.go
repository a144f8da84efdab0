// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// The functions in this file are thin, mechanical projections over core
// state: registry lookups and field reads. None of them mutate anything,
// so each takes the reader lock independently rather than sharing one
// with the dispatch path.

// ObjectGetClass returns obj's class, or nil for a nil object.
func ObjectGetClass(obj *Object) *Class {
	if obj == nil {
		return nil
	}
	return obj.Isa
}

// ClassGetInstanceMethod looks sel up on class's own dispatch table only
// — no super-chain walk, unlike MsgLookup.
func ClassGetInstanceMethod(class *Class, sel *Selector) (*Method, bool) {
	if class == nil || sel == nil {
		return nil, false
	}
	return class.Dispatch.lookup(sel)
}

// ClassGetClassMethod looks sel up on class's metaclass.
func ClassGetClassMethod(class *Class, sel *Selector) (*Method, bool) {
	if class == nil {
		return nil, false
	}
	return ClassGetInstanceMethod(class.Isa, sel)
}

// ClassGetSuperclass returns class's resolved superclass, or nil for a
// root class or one still sitting in the orphan queue.
func ClassGetSuperclass(class *Class) *Class {
	if class == nil {
		return nil
	}
	return class.Super.Class
}

// ClassGetName returns class's interned name, or "" for nil.
func ClassGetName(class *Class) string {
	if class == nil {
		return ""
	}
	return class.Name.String()
}

// ClassIsMetaClass reports whether class is a metaclass record.
func ClassIsMetaClass(class *Class) bool {
	return class != nil && class.IsMeta()
}

// GetClass looks name up in the runtime's registry.
func (rt *Runtime) GetClass(name string) *Class {
	pair, ok := rt.classes.lookup(name)
	if !ok {
		return nil
	}
	return pair.class
}

// GetMetaClass looks name up in the runtime's registry and returns its
// metaclass.
func (rt *Runtime) GetMetaClass(name string) *Class {
	pair, ok := rt.classes.lookup(name)
	if !ok {
		return nil
	}
	return pair.meta
}

// InternSelector returns the canonical selector for (name, types),
// exposed for callers building a message send without a method or
// selector-ref record already in hand (e.g. cmd/objcrt-dump).
func (rt *Runtime) InternSelector(name, types string) (*Selector, error) {
	return rt.selectors.intern(name, types)
}
