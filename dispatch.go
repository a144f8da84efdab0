// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "reflect"

// noopCode is the stable, pointer-comparable code pointer msg_lookup and
// msg_lookup_super return for a nil receiver, a nil selector, or a
// selector the class chain does not answer. It returns nil and has no
// side effects, matching "messages to nil return nil."
var noopCode CodePointer = func(receiver *Object, sel *Selector, args ...interface{}) interface{} {
	return nil
}

// IsNoop reports whether code is the shared no-op returned for an
// unanswerable message, letting a caller distinguish "found" from "nil
// response" the way pointer comparison against the reference
// implementation's sentinel would.
func IsNoop(code CodePointer) bool {
	return sameCode(code, noopCode)
}

// sameCode compares two CodePointer values by the address of the function
// they point to. Go funcs are not comparable with ==, so this is the only
// way to ask "is this literally the shared sentinel."
func sameCode(a, b CodePointer) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// SuperRecord is the argument to MsgLookupSuper: the sending object plus
// the class to start the super-chain walk from, skipping the receiver's
// own class.
type SuperRecord struct {
	Receiver   *Object
	SuperClass *Class
}

// MsgLookup resolves (receiver, sel) to a code pointer by reading
// receiver's isa and walking the class chain: consult each class's
// dispatch table, and on miss ascend to its superclass. ShortCircuitSelf,
// if enabled, answers the selector "self" with an identity function
// before ever touching a dispatch table.
func (rt *Runtime) MsgLookup(receiver *Object, sel *Selector) CodePointer {
	if receiver == nil || sel == nil {
		return noopCode
	}
	if rt.opts.ShortCircuitSelf && sel.Name.String() == "self" {
		return identityCode
	}
	return rt.walkChain(receiver.Isa, sel)
}

// MsgLookupSuper is MsgLookup starting one level above the receiver's own
// class, for a `[super foo]` send.
func (rt *Runtime) MsgLookupSuper(rec SuperRecord, sel *Selector) CodePointer {
	if rec.Receiver == nil || sel == nil {
		return noopCode
	}
	return rt.walkChain(rec.SuperClass, sel)
}

func (rt *Runtime) walkChain(start *Class, sel *Selector) CodePointer {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	for c := start; c != nil; c = c.Super.Class {
		if m, ok := c.Dispatch.lookup(sel); ok {
			return m.Code
		}
	}
	return noopCode
}

// identityCode is the optional `self` fast path: it returns the receiver
// unchanged without consulting any dispatch table.
var identityCode CodePointer = func(receiver *Object, sel *Selector, args ...interface{}) interface{} {
	return receiver
}
