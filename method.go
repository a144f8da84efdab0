// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// CodePointer is the opaque, runtime-never-invokes-it callable a Method
// carries. The real signature is (receiver, selector, ...user args) ->
// result; the runtime only ever returns it to the caller, never calls it
// itself.
type CodePointer func(receiver *Object, sel *Selector, args ...interface{}) interface{}

// Method is the triple (selector_name_or_identity, type_encoding,
// code_pointer). Before method-linking Name is nil and RawName holds the
// compiler-emitted selector name; after linking Name holds the canonical
// Selector and RawName is no longer consulted.
type Method struct {
	Name    *Selector
	RawName string
	Types   string
	Code    CodePointer
}

// Linked reports whether this method has been assigned a canonical
// selector identity by the method linker (C8).
func (m *Method) Linked() bool {
	return m.Name != nil
}

// selectorName returns the name to resolve against: the raw compiler name
// before linking, or the already-canonical selector's name afterward (an
// idempotent re-link is a no-op, see linkMethod).
func (m *Method) selectorName() string {
	if m.Name != nil {
		return m.Name.Name.String()
	}
	return m.RawName
}

// MethodList is an ordered sequence of methods with an optional link to a
// successor list. Categories attach by prepending new lists to a class's
// chain.
type MethodList struct {
	Methods []*Method
	Next    *MethodList
}

// MethodListIterator walks a method-list chain lazily: the primary list's
// methods in order, then each successor's.
type MethodListIterator struct {
	list *MethodList
	idx  int
}

// Iter returns a fresh iterator positioned before the first method.
func (l *MethodList) Iter() *MethodListIterator {
	return &MethodListIterator{list: l}
}

// Next returns the next method in chain order, or (nil, false) once the
// chain is exhausted.
func (it *MethodListIterator) Next() (*Method, bool) {
	for it.list != nil {
		if it.idx < len(it.list.Methods) {
			m := it.list.Methods[it.idx]
			it.idx++
			return m, true
		}
		it.list = it.list.Next
		it.idx = 0
	}
	return nil, false
}

// All drains the iterator into a slice, primary list first then every
// successor, in order. Chain order alone does not decide dispatch-table
// precedence: attachCategory overwrites a class's table directly when a
// category redefines a selector, regardless of where the category's
// methods end up sitting in this chain.
func (l *MethodList) All() []*Method {
	var out []*Method
	it := l.Iter()
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, m)
	}
	return out
}

// prepend returns a new MethodList with other spliced in ahead of l. Used
// when a category attaches to a class so that walking the class's chain
// afterward still reaches the category's methods, for introspection.
// Dispatch-table precedence for overridden selectors is decided separately
// by attachCategory, not by this ordering.
func prepend(l, other *MethodList) *MethodList {
	if other == nil {
		return l
	}
	if other.Next != nil {
		// other is itself a chain (e.g. a category re-attached twice in
		// tests); walk to its tail and splice l on there instead of
		// dropping the rest of the chain.
		tail := other
		for tail.Next != nil {
			tail = tail.Next
		}
		tail.Next = l
		return other
	}
	return &MethodList{Methods: other.Methods, Next: l}
}
