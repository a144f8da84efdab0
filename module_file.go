// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/gnuobjc/objcrt/internal/log"
)

// ModuleFile is a module image memory-mapped from disk, adapted from
// saferwall/pe's File: the same "map read-only, never copy, Close
// unmaps" discipline, applied to a previously-dumped or cross-compiled
// module image instead of a PE binary. The common case — compiler-emitted
// memory already resident in the calling process — skips this entirely and
// calls LoadModuleBytes directly.
type ModuleFile struct {
	data   mmap.MMap
	f      *os.File
	opts   *Options
	logger *log.Helper
}

// OpenModuleFile memory-maps name read-only and parses it as a module
// image. The returned Module's Symtab aliases the mapped memory for as
// long as the ModuleFile stays open.
func OpenModuleFile(name string, opts *Options, code []CodePointer, pool *namePool) (*Module, *ModuleFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	mf := &ModuleFile{f: f, data: data, opts: normalizeOptions(opts)}
	mf.logger = log.NewHelper(mf.opts.Logger)

	mod, err := ParseModule(data, code, pool)
	if err != nil {
		mf.logger.Errorf("module parse failed for %s: %v", name, err)
		mf.Close()
		return nil, nil, err
	}
	return mod, mf, nil
}

// Close unmaps the backing file. The Module returned by OpenModuleFile
// must not be used afterward: its Symtab aliases the now-unmapped memory.
func (mf *ModuleFile) Close() error {
	if mf.data != nil {
		_ = mf.data.Unmap()
	}
	if mf.f != nil {
		return mf.f.Close()
	}
	return nil
}
