// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// resolveSuper rewrites one class or metaclass record's super reference
// from a compiler-emitted name to a registry pointer: null stays null
// (root), a name is looked up in the registry and rewritten to the
// registry's class (for a non-meta record) or metaclass (for a meta
// record).
func resolveSuper(reg *classRegistry, c *Class) bool {
	if c.Super.IsRoot() {
		c.Super.Pending = false
		return true
	}
	if c.Super.Class != nil {
		return true
	}
	pair, ok := reg.lookup(c.Super.Name)
	if !ok {
		c.Super.Pending = true
		return false
	}
	if c.IsMeta() {
		c.Super.Class = pair.meta
	} else {
		c.Super.Class = pair.class
	}
	c.Super.Pending = false
	return true
}

// drainOrphans repeatedly retries every class in queue until a pass makes
// no further progress: a pass that reduces queue size is followed by
// another pass; a pass that leaves queue size unchanged terminates the
// drain. Classes still present on return keep a null super pointer until a
// future exec_class resolves them.
func drainOrphans(reg *classRegistry, queue []*Class) []*Class {
	for {
		before := len(queue)
		if before == 0 {
			return queue
		}
		var remaining []*Class
		for _, c := range queue {
			if !resolveSuper(reg, c) {
				remaining = append(remaining, c)
			}
		}
		if len(remaining) == before {
			return remaining
		}
		queue = remaining
	}
}
