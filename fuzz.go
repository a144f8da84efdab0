// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// Fuzz exercises the descriptor parser against arbitrary bytes: it must
// never panic, only return an error. go-fuzz knows how to drive this
// signature; Go's native fuzzing needs a FuzzXxx(*testing.F) test instead.
func Fuzz(data []byte) int {
	pool := newNamePool()
	mod, err := ParseModule(data, nil, pool)
	if err != nil {
		return 0
	}
	for i := 0; i < mod.Symtab.ClassCount(); i++ {
		if _, err := mod.Symtab.ClassAt(i); err != nil {
			return 0
		}
	}
	for j := 0; j < mod.Symtab.CategoryCount(); j++ {
		if _, err := mod.Symtab.CategoryAt(j); err != nil {
			return 0
		}
	}
	if _, err := mod.Symtab.SelectorRefs(); err != nil {
		return 0
	}
	return 1
}
