// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// Ivar is a (name, type_encoding, byte_offset) triple. The runtime never
// interprets an ivar beyond reporting it; instance size (needed to
// allocate objects) is carried separately on Class.
type Ivar struct {
	Name   string
	Types  string
	Offset int32
}

// IvarList is an ordered, bounds-checked sequence of ivars: count() and
// indexed access, where an out-of-range index fails with ErrOutOfBounds.
type IvarList struct {
	ivars []Ivar
}

// Count returns the number of ivars.
func (l *IvarList) Count() int {
	if l == nil {
		return 0
	}
	return len(l.ivars)
}

// At returns the i-th ivar, or ErrOutOfBounds if i is out of range.
func (l *IvarList) At(i int) (Ivar, error) {
	if l == nil || i < 0 || i >= len(l.ivars) {
		return Ivar{}, ErrOutOfBounds
	}
	return l.ivars[i], nil
}
