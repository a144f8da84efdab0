// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// This file is the bit-exact binary layout of a module image (little-endian,
// offsets relative to the start of the mapped region). There is no such
// thing as a portable raw pointer once a compiler descriptor crosses a file
// boundary, so every "pointer" field here is a uint32 byte offset into the
// same image instead. Field order, the is_class/is_meta info bits, the
// symtab's class-then-category definition array, and the selector-refs
// null-name terminator are otherwise exactly as a loader expects. See
// SPEC_FULL.md, "Module image container".

const (
	moduleHeaderSize = 20 // AbiVersion, Size, NameOff, SymtabOff, Flags
	symtabHeaderSize = 12 // SelRefCount, SelRefsOff, ClsDefCnt, CatDefCnt
	selRefSize       = 8  // NameOff, TypesOff
	classRecordSize  = 32 // IsaOff, SuperNameOff, NameOff, Version, Info, InstanceSize, IvarsOff, MethodsOff
	methodListHdrSz  = 8  // NextOff, Count
	methodRecordSize = 12 // NameOff, TypesOff, CodeID
	ivarListHdrSize  = 4  // Count
	ivarRecordSize   = 12 // NameOff, TypesOff, Offset
	categoryRecSize  = 16 // CategoryNameOff, TargetClassNameOff, InstanceMethodsOff, ClassMethodsOff

	// moduleFlagWideNames marks a module whose class/selector/ivar names
	// were emitted by a Windows-hosted cross-compile as UTF-16LE instead
	// of the usual ASCII/UTF-8 C strings (see SPEC_FULL.md DOMAIN STACK).
	moduleFlagWideNames = uint32(1 << 0)

	// moduleFlagSigned marks a module image with a trailing PKCS#7
	// signature block: a uint32 length followed by that many bytes of
	// DER, appended after the last byte the module header's Size field
	// accounts for.
	moduleFlagSigned = uint32(1 << 1)

	// infoIsClass and infoIsMeta are the low two bits of Class.Info;
	// exactly one must be set.
	infoIsClass = uint32(1 << 0)
	infoIsMeta  = uint32(1 << 1)

	// noCode marks a method record with no resolved code pointer; the
	// builder never emits it, but a corrupt or hand-crafted image might.
	noCode = uint32(0xFFFFFFFF)
)

type rawModuleHeader struct {
	AbiVersion int32
	Size       int32
	NameOff    uint32
	SymtabOff  uint32
	Flags      uint32
}

type rawSymtabHeader struct {
	SelRefCount int32
	SelRefsOff  uint32
	ClsDefCnt   uint16
	CatDefCnt   uint16
}

type rawSelRef struct {
	NameOff  uint32
	TypesOff uint32
}

type rawClass struct {
	IsaOff       uint32
	SuperNameOff uint32
	NameOff      uint32
	Version      int32
	Info         uint32
	InstanceSize int32
	IvarsOff     uint32
	MethodsOff   uint32
}

type rawMethodListHeader struct {
	NextOff uint32
	Count   int32
}

type rawMethod struct {
	NameOff  uint32
	TypesOff uint32
	CodeID   uint32
}

type rawIvarListHeader struct {
	Count int32
}

type rawIvar struct {
	NameOff  uint32
	TypesOff uint32
	Offset   int32
}

type rawCategory struct {
	CategoryNameOff    uint32
	TargetClassNameOff uint32
	InstanceMethodsOff uint32
	ClassMethodsOff    uint32
}

func (r *imageReader) readModuleHeader(offset uint32) (rawModuleHeader, error) {
	var h rawModuleHeader
	err := r.structUnpack(&h, offset, moduleHeaderSize)
	return h, err
}

func (r *imageReader) readSymtabHeader(offset uint32) (rawSymtabHeader, error) {
	var h rawSymtabHeader
	err := r.structUnpack(&h, offset, symtabHeaderSize)
	return h, err
}

// readDefOffsets reads the combined cls_def_cnt+cat_def_cnt offset array
// that immediately follows a symtab header.
func (r *imageReader) readDefOffsets(symtabOff uint32, count int) ([]uint32, error) {
	base := symtabOff + symtabHeaderSize
	out := make([]uint32, count)
	for i := 0; i < count; i++ {
		off, err := r.readUint32(base + uint32(i)*4)
		if err != nil {
			return nil, err
		}
		out[i] = off
	}
	return out, nil
}

func (r *imageReader) readSelRef(offset uint32) (rawSelRef, error) {
	var s rawSelRef
	err := r.structUnpack(&s, offset, selRefSize)
	return s, err
}

func (r *imageReader) readClass(offset uint32) (rawClass, error) {
	var c rawClass
	err := r.structUnpack(&c, offset, classRecordSize)
	return c, err
}

func (r *imageReader) readMethodListHeader(offset uint32) (rawMethodListHeader, error) {
	var h rawMethodListHeader
	err := r.structUnpack(&h, offset, methodListHdrSz)
	return h, err
}

func (r *imageReader) readMethod(offset uint32) (rawMethod, error) {
	var m rawMethod
	err := r.structUnpack(&m, offset, methodRecordSize)
	return m, err
}

func (r *imageReader) readIvarListHeader(offset uint32) (rawIvarListHeader, error) {
	var h rawIvarListHeader
	err := r.structUnpack(&h, offset, ivarListHdrSize)
	return h, err
}

func (r *imageReader) readIvar(offset uint32) (rawIvar, error) {
	var v rawIvar
	err := r.structUnpack(&v, offset, ivarRecordSize)
	return v, err
}

func (r *imageReader) readCategory(offset uint32) (rawCategory, error) {
	var c rawCategory
	err := r.structUnpack(&c, offset, categoryRecSize)
	return c, err
}
