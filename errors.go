// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "errors"

// Errors returned while reading a module image. These mirror the descriptor
// view's bounds-checking discipline: a short read never panics, it returns
// one of these.
var (
	// ErrOutsideBoundary is returned when a read would run past the end of
	// the module image.
	ErrOutsideBoundary = errors.New("objcrt: read outside module image boundary")

	// ErrInvalidModuleSize is returned when a module image is smaller than
	// the smallest possible header.
	ErrInvalidModuleSize = errors.New("objcrt: module image smaller than minimum header size")

	// ErrBadDescriptor is returned when a class record has neither or both
	// of the is_class/is_meta info bits set, or a symtab index is
	// out-of-range. Fatal to the offending item only; does not abort the
	// rest of exec_class.
	ErrBadDescriptor = errors.New("objcrt: malformed descriptor")

	// ErrOutOfBounds is returned by indexed ivar-list access past count().
	ErrOutOfBounds = errors.New("objcrt: index out of bounds")

	// ErrNilName is returned by selector interning when name is empty.
	ErrNilName = errors.New("objcrt: selector name must be non-empty")

	// ErrNotSigned is returned by verifyModuleSignature when
	// Options.RequireSignedModules is set and no signature was supplied.
	ErrNotSigned = errors.New("objcrt: module signature required but absent")
)

// These are not errors returned to callers; they are the queuing reasons
// logged at Debug level when loadClass, ExecClass, buildDispatchTable, or
// mergeMethods leave an item in one of the three deferred-work queues
// instead of resolving it immediately.
const (
	reasonMissingSuperclass     = "missing superclass"
	reasonMissingCategoryTarget = "missing category target"
	reasonMissingSelector       = "missing selector"
)
