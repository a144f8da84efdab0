// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "github.com/gnuobjc/objcrt/internal/log"

// attachCategory merges a category's instance and class methods onto its
// target class and metaclass. It reports whether the target was found; a
// false return means the caller should queue cat for retry on a later
// load, matching the way an orphan superclass reference is queued.
//
// A category's methods win over whatever the class already has for the
// same selector, authentic Objective-C behavior, and a later-loaded
// category wins over an earlier one for the same reason: each attach call
// overwrites the dispatch table directly rather than relying on the order
// methods happen to sit in a class's method-list chain.
func attachCategory(reg *classRegistry, sel *selectorTable, cat *Category, pending *[]deferredMethod, logger *log.Helper) bool {
	pair, ok := reg.lookup(cat.TargetClassName)
	if !ok {
		return false
	}
	mergeMethods(sel, pair.class, cat.InstanceMethods, pending, logger)
	mergeMethods(sel, pair.meta, cat.ClassMethods, pending, logger)
	return true
}

// mergeMethods overwrites target's dispatch table with newly linked
// methods from list and splices list onto target's chain for
// introspection. A nil list (a category with no methods in this category
// of methods) is a no-op.
func mergeMethods(sel *selectorTable, target *Class, list *MethodList, pending *[]deferredMethod, logger *log.Helper) {
	if target == nil || list == nil {
		return
	}
	next := target.Dispatch.snapshot()
	out := make(map[*Selector]*Method, len(next)+len(list.Methods))
	for k, v := range next {
		out[k] = v
	}
	for _, m := range list.All() {
		if !linkMethod(sel, m) {
			if logger != nil {
				logger.Debugf("queuing category method %q on %s: %s", m.RawName, ClassGetName(target), reasonMissingSelector)
			}
			*pending = append(*pending, deferredMethod{class: target, method: m})
			continue
		}
		out[m.Name] = m
	}
	target.Dispatch.publish(out)
	target.Methods = prepend(target.Methods, list)
}

// drainCategories retries every queued category against the registry
// until a pass makes no further progress, the same fixpoint discipline as
// drainOrphans.
func drainCategories(reg *classRegistry, sel *selectorTable, queue []*Category, pending *[]deferredMethod, logger *log.Helper) []*Category {
	for {
		before := len(queue)
		if before == 0 {
			return queue
		}
		var remaining []*Category
		for _, cat := range queue {
			if !attachCategory(reg, sel, cat, pending, logger) {
				remaining = append(remaining, cat)
			}
		}
		if len(remaining) == before {
			return remaining
		}
		queue = remaining
	}
}
