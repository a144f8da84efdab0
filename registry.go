// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "sync"

// classPair is the registry's value type: a class and its metaclass.
type classPair struct {
	class *Class
	meta  *Class
}

// classRegistry is the process-wide name -> (class, metaclass) map. Writes
// happen only while the loader holds Runtime's exclusive lock; reads
// (dispatch and queries) take the shared lock. The registry gets its own
// mutex too so query-surface callers that don't go through
// Runtime.MsgLookup (e.g. GetClass from a reader-held context) never need
// to reach for the writer lock.
type classRegistry struct {
	mu sync.RWMutex
	m  map[string]classPair
}

func newClassRegistry() *classRegistry {
	return &classRegistry{m: make(map[string]classPair)}
}

// register inserts name -> (class, metaclass), first-load-wins: across
// modules, the class that registers the name first keeps it, and later
// registrations of the same name are silently ignored. Returns the pair
// that ended up in the registry (the new one, or the existing one if this
// was a duplicate) and whether this call actually inserted it.
func (r *classRegistry) register(class, meta *Class) (classPair, bool) {
	name := class.Name.String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.m[name]; ok {
		return existing, false
	}
	pair := classPair{class: class, meta: meta}
	r.m[name] = pair
	return pair, true
}

// lookup is a pure read.
func (r *classRegistry) lookup(name string) (classPair, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pair, ok := r.m[name]
	return pair, ok
}

// count returns the number of registered classes, for tests and the query
// surface.
func (r *classRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}
