// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "encoding/binary"

// LoadModuleBytes parses a module image already resident in the calling
// process's memory — the common case, since the compiler normally hands
// the loader a pointer into its own data segment rather than a file on
// disk. code supplies the CodeID -> CodePointer table the compiler built
// alongside the image; pool is the name pool backing this Runtime.
func LoadModuleBytes(data []byte, code []CodePointer, pool *namePool) (*Module, error) {
	return ParseModule(data, code, pool)
}

// ParseModule decodes a module header, its symtab, and (if flagged) a
// trailing signature block. ClassAt/CategoryAt on the returned Module's
// Symtab decode lazily from data (ClassAt caches each decoded class by
// offset); data must outlive the Module.
func ParseModule(data []byte, code []CodePointer, pool *namePool) (*Module, error) {
	r := newImageReader(data)
	if r.size < moduleHeaderSize {
		return nil, ErrInvalidModuleSize
	}

	hdr, err := r.readModuleHeader(0)
	if err != nil {
		return nil, err
	}
	wide := hdr.Flags&moduleFlagWideNames != 0

	name, err := decodeName(r, hdr.NameOff, wide)
	if err != nil {
		return nil, err
	}

	symHdr, err := r.readSymtabHeader(hdr.SymtabOff)
	if err != nil {
		return nil, err
	}
	total := int(symHdr.ClsDefCnt) + int(symHdr.CatDefCnt)
	defOffsets, err := r.readDefOffsets(hdr.SymtabOff, total)
	if err != nil {
		return nil, err
	}

	symtab := &Symtab{
		r:          r,
		code:       code,
		pool:       pool,
		wide:       wide,
		selRefsOff: symHdr.SelRefsOff,
		clsDefCnt:  int(symHdr.ClsDefCnt),
		catDefCnt:  int(symHdr.CatDefCnt),
		defOffsets: defOffsets,
		cache:      make(map[uint32]*Class),
	}

	mod := &Module{
		AbiVersion: hdr.AbiVersion,
		Size:       hdr.Size,
		Name:       name,
		Symtab:     symtab,
	}

	if hdr.Flags&moduleFlagSigned != 0 {
		sig, err := readSignatureTrailer(data, hdr.Size)
		if err != nil {
			return nil, err
		}
		mod.Signature = sig
	}

	return mod, nil
}

// readSignatureTrailer reads the uint32-length-prefixed DER block that
// follows the bytes hdr.Size accounts for.
func readSignatureTrailer(data []byte, moduleSize int32) (*Signature, error) {
	if moduleSize < 0 || int(moduleSize)+4 > len(data) {
		return nil, ErrOutsideBoundary
	}
	lenOff := int(moduleSize)
	length := binary.LittleEndian.Uint32(data[lenOff : lenOff+4])
	start := lenOff + 4
	end := start + int(length)
	if end > len(data) {
		return nil, ErrOutsideBoundary
	}
	return &Signature{DER: data[start:end]}, nil
}
