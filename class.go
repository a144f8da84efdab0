// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "sync/atomic"

// ClassInfo is the class record's bit-flag field. Bit 0 is is_class, bit 1
// is_meta; exactly one must be set.
type ClassInfo uint32

// IsClass reports whether bit 0 is set.
func (i ClassInfo) IsClass() bool { return i&infoIsClass != 0 }

// IsMeta reports whether bit 1 is set.
func (i ClassInfo) IsMeta() bool { return i&infoIsMeta != 0 }

// valid reports whether exactly one of is_class/is_meta is set.
func (i ClassInfo) valid() bool {
	return i.IsClass() != i.IsMeta()
}

// SuperRef is a tagged alternative to pointer-punning a class's super
// field: a name before linking, a resolved *Class after, or neither for a
// root class.
type SuperRef struct {
	Name    string // set before linking, if Class is not a root
	Class   *Class // set once the linker (C5) resolves Name
	Pending bool   // true while queued in the orphan queue
}

// IsRoot reports a class with no superclass (e.g. NSObject).
func (s SuperRef) IsRoot() bool {
	return s.Name == "" && s.Class == nil
}

// Resolved reports whether the super reference is settled: either a root,
// or rewritten to a live *Class.
func (s SuperRef) Resolved() bool {
	return s.IsRoot() || s.Class != nil
}

// DispatchTable is a class's own selector->method map. It is built once
// under the loader's writer lock and then published with a single atomic
// pointer swap, so the dispatch path can read it without taking any lock
// once a class is linked — a lock-free reader optimization layered on top
// of the coarse process-wide RWMutex the rest of the loader uses.
type DispatchTable struct {
	tbl atomic.Pointer[map[*Selector]*Method]
}

func newDispatchTable() *DispatchTable {
	return &DispatchTable{}
}

// publish atomically installs a freshly built table, replacing any
// previous one wholesale (method-linking re-publishes after resolving
// selectors that were missing at first build).
func (d *DispatchTable) publish(m map[*Selector]*Method) {
	d.tbl.Store(&m)
}

// lookup is the hot path: one atomic load, one map read, no lock.
func (d *DispatchTable) lookup(sel *Selector) (*Method, bool) {
	p := d.tbl.Load()
	if p == nil {
		return nil, false
	}
	m, ok := (*p)[sel]
	return m, ok
}

// snapshot returns the current table contents for tests and for the
// copy-then-republish updates in mergeMethods and publishLinked; callers
// must not mutate the returned map.
func (d *DispatchTable) snapshot() map[*Selector]*Method {
	p := d.tbl.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Class is a class or metaclass record. The low bits of Info say which; a
// class's Isa points at its metaclass, a metaclass's Isa points at the
// root class's metaclass, a deliberate cycle. subclass_list, sibling_list,
// protocol conformance and a GC object-type tag are intentionally not
// modeled here: ivar layout, protocol conformance and garbage collection
// sit outside what this loader and dispatcher do, and nothing in this
// package ever reads them.
type Class struct {
	Isa          *Class
	Super        SuperRef
	Name         *Symbol
	Version      int32
	Info         ClassInfo
	InstanceSize int32
	Ivars        *IvarList
	Methods      *MethodList
	Dispatch     *DispatchTable

	// owner is the module that defined this class, kept for diagnostics
	// and for cmd/objcrt-dump; the runtime itself never consults it.
	owner string
}

// IsClass reports whether this record is a class (as opposed to a
// metaclass).
func (c *Class) IsClass() bool { return c.Info.IsClass() }

// IsMeta reports whether this record is a metaclass.
func (c *Class) IsMeta() bool { return c.Info.IsMeta() }
