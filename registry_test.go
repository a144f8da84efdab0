// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "testing"

func newTestClass(pool *namePool, name string) *Class {
	return &Class{
		Name:     pool.intern(name),
		Info:     ClassInfo(infoIsClass),
		Dispatch: newDispatchTable(),
	}
}

func TestClassRegistryFirstLoadWins(t *testing.T) {
	pool := newNamePool()
	reg := newClassRegistry()

	first := newTestClass(pool, "Animal")
	firstMeta := newTestClass(pool, "Animal")
	firstMeta.Info = ClassInfo(infoIsMeta)

	second := newTestClass(pool, "Animal")
	secondMeta := newTestClass(pool, "Animal")
	secondMeta.Info = ClassInfo(infoIsMeta)

	pair, inserted := reg.register(first, firstMeta)
	if !inserted {
		t.Fatal("first register() call reported no insertion")
	}
	if pair.class != first {
		t.Error("register() did not return the class it just inserted")
	}

	pair, inserted = reg.register(second, secondMeta)
	if inserted {
		t.Error("second register() of the same name reported an insertion")
	}
	if pair.class != first {
		t.Error("a duplicate register() overwrote the first-loaded class")
	}
}

func TestClassRegistryLookupMiss(t *testing.T) {
	reg := newClassRegistry()
	if _, ok := reg.lookup("Nonexistent"); ok {
		t.Error("lookup found a class that was never registered")
	}
}

func TestClassRegistryCount(t *testing.T) {
	pool := newNamePool()
	reg := newClassRegistry()

	reg.register(newTestClass(pool, "Animal"), newTestClass(pool, "Animal"))
	reg.register(newTestClass(pool, "Dog"), newTestClass(pool, "Dog"))

	if got, want := reg.count(), 2; got != want {
		t.Errorf("count() = %d, want %d", got, want)
	}
}
