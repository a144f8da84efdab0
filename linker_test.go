// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "testing"

func TestResolveSuperRoot(t *testing.T) {
	pool := newNamePool()
	reg := newClassRegistry()

	root := newTestClass(pool, "Animal")
	if !resolveSuper(reg, root) {
		t.Fatal("resolveSuper on a root class (empty super name) reported unresolved")
	}
	if !root.Super.IsRoot() {
		t.Error("root class's Super should report IsRoot() == true")
	}
}

func TestResolveSuperMissingTarget(t *testing.T) {
	reg := newClassRegistry()
	pool := newNamePool()

	dog := newTestClass(pool, "Dog")
	dog.Super = SuperRef{Name: "Animal"}

	if resolveSuper(reg, dog) {
		t.Fatal("resolveSuper reported success against an unregistered superclass")
	}
	if !dog.Super.Pending {
		t.Error("an unresolved SuperRef should be marked Pending")
	}
}

func TestResolveSuperRewritesOnceRegistered(t *testing.T) {
	reg := newClassRegistry()
	pool := newNamePool()

	animal := newTestClass(pool, "Animal")
	animalMeta := newTestClass(pool, "Animal")
	animalMeta.Info = ClassInfo(infoIsMeta)
	reg.register(animal, animalMeta)

	dog := newTestClass(pool, "Dog")
	dog.Super = SuperRef{Name: "Animal"}

	if !resolveSuper(reg, dog) {
		t.Fatal("resolveSuper failed against a registered superclass")
	}
	if dog.Super.Class != animal {
		t.Error("resolveSuper did not rewrite Super.Class to the registered class")
	}
	if dog.Super.Pending {
		t.Error("a resolved SuperRef should not remain Pending")
	}
}

func TestResolveSuperMetaUsesMetaclass(t *testing.T) {
	reg := newClassRegistry()
	pool := newNamePool()

	animal := newTestClass(pool, "Animal")
	animalMeta := newTestClass(pool, "Animal")
	animalMeta.Info = ClassInfo(infoIsMeta)
	reg.register(animal, animalMeta)

	dogMeta := newTestClass(pool, "Dog")
	dogMeta.Info = ClassInfo(infoIsMeta)
	dogMeta.Super = SuperRef{Name: "Animal"}

	if !resolveSuper(reg, dogMeta) {
		t.Fatal("resolveSuper failed for a metaclass super reference")
	}
	if dogMeta.Super.Class != animalMeta {
		t.Error("a metaclass's super should resolve to the target's metaclass, not its class")
	}
}

func TestDrainOrphansReachesFixpoint(t *testing.T) {
	reg := newClassRegistry()
	pool := newNamePool()

	cat := newTestClass(pool, "Cat")
	cat.Super = SuperRef{Name: "Animal"}

	queue := drainOrphans(reg, []*Class{cat})
	if len(queue) != 1 {
		t.Fatalf("drainOrphans against an empty registry should leave the class queued, got len %d", len(queue))
	}

	animal := newTestClass(pool, "Animal")
	animalMeta := newTestClass(pool, "Animal")
	animalMeta.Info = ClassInfo(infoIsMeta)
	reg.register(animal, animalMeta)

	queue = drainOrphans(reg, queue)
	if len(queue) != 0 {
		t.Fatalf("drainOrphans left %d classes queued after the superclass was registered", len(queue))
	}
	if cat.Super.Class != animal {
		t.Error("drainOrphans did not resolve Cat's superclass once Animal became available")
	}
}
