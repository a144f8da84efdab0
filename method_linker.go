// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// linkMethod assigns m its canonical selector identity, interning
// (m.RawName, m.Types) through the selector table. It is idempotent: a
// method that already carries a Name is left alone. It fails only when
// RawName is empty — a corrupt descriptor — in which case the caller queues
// m for retry on a future exec_class.
func linkMethod(sel *selectorTable, m *Method) bool {
	if m.Linked() {
		return true
	}
	if m.RawName == "" {
		return false
	}
	identity, err := sel.intern(m.RawName, m.Types)
	if err != nil {
		return false
	}
	m.Name = identity
	return true
}

// internSelectorRefs registers every (name, types) pair in a module's
// selector-reference array with the canonical selector table. This
// guarantees a selector referenced only by a call site (never defined as a
// method in this module) still gets a stable, cross-module identity: two
// modules that each reserve a ref for the same (name, types) end up
// pointing at the same *Selector.
func internSelectorRefs(sel *selectorTable, refs []SelRef) error {
	for _, ref := range refs {
		if ref.Name == "" {
			continue
		}
		if _, err := sel.intern(ref.Name, ref.Types); err != nil {
			return err
		}
	}
	return nil
}

// drainMethods retries linkMethod for every still-queued method, using the
// same fixpoint discipline as drainOrphans. A method that resolves gets
// published directly into its owning class's dispatch table.
func drainMethods(sel *selectorTable, queue []deferredMethod) []deferredMethod {
	for {
		before := len(queue)
		if before == 0 {
			return queue
		}
		var remaining []deferredMethod
		for _, d := range queue {
			if linkMethod(sel, d.method) {
				publishLinked(d)
			} else {
				remaining = append(remaining, d)
			}
		}
		if len(remaining) == before {
			return remaining
		}
		queue = remaining
	}
}
