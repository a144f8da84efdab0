// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import (
	"sync"

	"github.com/gnuobjc/objcrt/internal/log"
)

// Runtime owns every piece of process-wide state: the class registry, the
// selector table, the name pool, and the three deferred-work queues an
// exec_class call can leave behind. One process normally needs exactly
// one Runtime; tests construct an isolated one per case.
type Runtime struct {
	mu sync.RWMutex

	opts      *Options
	classes   *classRegistry
	selectors *selectorTable
	pool      *namePool
	logger    *log.Helper

	orphans       []*Class
	pendingCats   []*Category
	pendingMethod []deferredMethod
}

// NewRuntime constructs an empty Runtime. A nil opts uses the defaults
// normalizeOptions documents.
func NewRuntime(opts *Options) *Runtime {
	o := normalizeOptions(opts)
	pool := newNamePool()
	return &Runtime{
		opts:      o,
		classes:   newClassRegistry(),
		selectors: newSelectorTable(o.SelectorKeyMode, pool),
		pool:      pool,
		logger:    log.NewHelper(o.Logger),
	}
}

// NamePool exposes the runtime's name pool, for callers assembling a
// Module via LoadModuleBytes or OpenModuleFile ahead of ExecClass.
func (rt *Runtime) NamePool() *namePool { return rt.pool }

// ClassCount reports how many classes are currently registered, for tests
// and cmd/objcrt-dump.
func (rt *Runtime) ClassCount() int { return rt.classes.count() }

// PendingCounts reports the size of each deferred queue, for diagnostics.
func (rt *Runtime) PendingCounts() (orphans, categories, methods int) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.orphans), len(rt.pendingCats), len(rt.pendingMethod)
}

// ExecClass runs the full module-load pipeline for module: build dispatch
// tables, register classes, attach categories, then drain every deferred
// queue to fixpoint. It never returns an error: a malformed individual
// class or category is logged and skipped, the rest of the module still
// loads, matching the "a failure in one item never aborts the load"
// policy.
func (rt *Runtime) ExecClass(module *Module) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.opts.RequireSignedModules {
		if err := verifyModuleSignature(module, rt.opts); err != nil {
			rt.logger.Errorf("module %s rejected: %v", module.Name, err)
			return
		}
	}

	symtab := module.Symtab
	for i := 0; i < symtab.ClassCount(); i++ {
		cls, err := symtab.ClassAt(i)
		if err != nil {
			rt.logger.Errorf("module %s: class %d: %v", module.Name, i, err)
			continue
		}
		rt.loadClass(module.Name, cls)
	}

	for j := 0; j < symtab.CategoryCount(); j++ {
		cat, err := symtab.CategoryAt(j)
		if err != nil {
			rt.logger.Errorf("module %s: category %d: %v", module.Name, j, err)
			continue
		}
		cat.owner = module.Name
		if !attachCategory(rt.classes, rt.selectors, cat, &rt.pendingMethod, rt.logger) {
			rt.logger.Debugf("queuing category %q for %s: %s", cat.CategoryName, cat.TargetClassName, reasonMissingCategoryTarget)
			rt.pendingCats = append(rt.pendingCats, cat)
		}
	}

	refs, err := symtab.SelectorRefs()
	if err != nil {
		rt.logger.Errorf("module %s: selector refs: %v", module.Name, err)
	} else if err := internSelectorRefs(rt.selectors, refs); err != nil {
		rt.logger.Errorf("module %s: interning selector refs: %v", module.Name, err)
	}

	rt.orphans = drainOrphans(rt.classes, rt.orphans)
	rt.pendingCats = drainCategories(rt.classes, rt.selectors, rt.pendingCats, &rt.pendingMethod, rt.logger)
	rt.pendingMethod = drainMethods(rt.selectors, rt.pendingMethod)
}

// loadClass builds and registers one class/metaclass pair, per
// exec_class step 2.
func (rt *Runtime) loadClass(owner string, cls *Class) {
	cls.owner = owner
	if cls.Isa != nil {
		cls.Isa.owner = owner
	}

	cls.Dispatch.publish(buildDispatchTable(rt.selectors, cls, cls.Methods, &rt.pendingMethod, rt.logger))
	if cls.Isa != nil && cls.Isa.Methods != nil {
		cls.Isa.Dispatch.publish(buildDispatchTable(rt.selectors, cls.Isa, cls.Isa.Methods, &rt.pendingMethod, rt.logger))
	}

	if !resolveSuper(rt.classes, cls) {
		rt.logger.Debugf("queuing class %q: %s", ClassGetName(cls), reasonMissingSuperclass)
		rt.orphans = append(rt.orphans, cls)
	}
	if cls.Isa != nil && !resolveSuper(rt.classes, cls.Isa) {
		rt.logger.Debugf("queuing metaclass %q: %s", ClassGetName(cls.Isa), reasonMissingSuperclass)
		rt.orphans = append(rt.orphans, cls.Isa)
	}

	rt.classes.register(cls, cls.Isa)
}
