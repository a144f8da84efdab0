// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "github.com/gnuobjc/objcrt/internal/log"

// deferredMethod pairs an unlinked method with the class whose dispatch
// table it belongs in, so a later successful link (drainMethods) can
// publish it into the right table instead of just marking it resolved.
type deferredMethod struct {
	class  *Class
	method *Method
}

// buildDispatchTable walks a class's own method-list chain and links each
// method as it goes, producing a fresh selector->method map. Within a
// single list, a later entry for the same selector overwrites an earlier
// one — the way the GNU runtime tolerates (rare) duplicate method records
// emitted by the compiler for the same selector. A method whose name
// can't yet be linked (an empty raw name, a corrupt descriptor) is
// appended to pending for the caller to retry later and is left out of
// the table for now.
func buildDispatchTable(sel *selectorTable, owner *Class, methods *MethodList, pending *[]deferredMethod, logger *log.Helper) map[*Selector]*Method {
	table := make(map[*Selector]*Method)
	for _, m := range methods.All() {
		if !linkMethod(sel, m) {
			if logger != nil {
				logger.Debugf("queuing method %q on %s: %s", m.RawName, ClassGetName(owner), reasonMissingSelector)
			}
			*pending = append(*pending, deferredMethod{class: owner, method: m})
			continue
		}
		table[m.Name] = m
	}
	return table
}

// publishLinked inserts a freshly linked method into its class's table
// directly, used by drainMethods once a previously-unlinkable method
// resolves.
func publishLinked(d deferredMethod) {
	next := d.class.Dispatch.snapshot()
	out := make(map[*Selector]*Method, len(next)+1)
	for k, v := range next {
		out[k] = v
	}
	out[d.method.Name] = d.method
	d.class.Dispatch.publish(out)
}
