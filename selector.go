// Copyright 2015 Google Inc. All rights reserved
//
// The interning discipline (a mutex-guarded map handing out one canonical
// handle per distinct key) is adapted from google/kati's symtab.go; the
// dual name/name+types keying policy lets callers choose between the
// authentic (name, types) scheme and a looser name-only scheme some
// runtimes use.

package objcrt

import "sync"

// SelectorKeyMode selects how two methods are considered "the same
// selector": authentic Objective-C keys by (name, types), but some
// runtimes treat same-named selectors as identical regardless of type
// encoding. Both are supported.
type SelectorKeyMode int

const (
	// KeyNameAndType is the authentic default: a selector identity is
	// unique per (name, type_encoding) pair.
	KeyNameAndType SelectorKeyMode = iota

	// KeyNameOnly collapses selector identity to the name alone: methods
	// that share a name share a selector identity regardless of type
	// encoding.
	KeyNameOnly
)

// Selector is the canonical identity of a message name, optionally paired
// with a type encoding. Pointer equality of two *Selector values is the
// runtime's definition of selector equality.
type Selector struct {
	Name  *Symbol
	Types *Symbol // nil in KeyNameOnly mode, or when the type encoding is unknown
}

func (s *Selector) String() string {
	if s == nil {
		return "<nil selector>"
	}
	if s.Types == nil {
		return s.Name.String()
	}
	return s.Name.String() + " " + s.Types.String()
}

// selectorKey is the map key selectorTable uses internally; it collapses to
// just the name under KeyNameOnly.
type selectorKey struct {
	name  string
	types string
}

// selectorTable uniques selector identities across every module loaded into
// one Runtime.
type selectorTable struct {
	mode SelectorKeyMode
	mu   sync.RWMutex
	m    map[selectorKey]*Selector
	pool *namePool
}

func newSelectorTable(mode SelectorKeyMode, pool *namePool) *selectorTable {
	return &selectorTable{
		mode: mode,
		m:    make(map[selectorKey]*Selector),
		pool: pool,
	}
}

func (t *selectorTable) key(name, types string) selectorKey {
	if t.mode == KeyNameOnly {
		return selectorKey{name: name}
	}
	return selectorKey{name: name, types: types}
}

// intern returns the canonical Selector for (name, types), creating it on
// first sight. name must be non-empty; types may be empty (no type
// encoding known yet, e.g. a selector reference the compiler hasn't
// attached types to).
func (t *selectorTable) intern(name, types string) (*Selector, error) {
	if name == "" {
		return nil, ErrNilName
	}
	key := t.key(name, types)

	t.mu.RLock()
	sel, ok := t.m[key]
	t.mu.RUnlock()
	if ok {
		return sel, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if sel, ok := t.m[key]; ok {
		return sel, nil
	}
	sel = &Selector{Name: t.pool.intern(name)}
	if types != "" && t.mode != KeyNameOnly {
		sel.Types = t.pool.intern(types)
	}
	t.m[key] = sel
	return sel, nil
}

// lookup is a pure read.
func (t *selectorTable) lookup(name, types string) (*Selector, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sel, ok := t.m[t.key(name, types)]
	return sel, ok
}
