// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "encoding/binary"

// This file builds synthetic .objcmod images byte-for-byte, for tests:
// there is no real GNU Objective-C compiler available to produce fixtures
// against, so tests construct their own module images the same way a
// compiler's linker pass would, then feed them through ParseModule. It
// lives in the main package rather than a separate package because it
// has to stay bit-exact with the unexported layout constants in wire.go.

// MethodDef describes one method record for ImageBuilder.
type MethodDef struct {
	Name   string
	Types  string
	CodeID uint32
}

// IvarDef describes one ivar record for ImageBuilder.
type IvarDef struct {
	Name   string
	Types  string
	Offset int32
}

// ClassDef describes one class (and its auto-generated metaclass) for
// ImageBuilder. SuperName is "" for a root class.
type ClassDef struct {
	Name         string
	SuperName    string
	Version      int32
	InstanceSize int32
	Ivars        []IvarDef
	Methods      []MethodDef // instance methods
	ClassMethods []MethodDef // methods on the metaclass
}

// CategoryDef describes one category record for ImageBuilder.
type CategoryDef struct {
	CategoryName    string
	TargetClassName string
	InstanceMethods []MethodDef
	ClassMethods    []MethodDef
}

// SelRefDef describes one selector-reference entry for ImageBuilder.
type SelRefDef struct {
	Name  string
	Types string
}

// ImageBuilder assembles a module image field by field, the way a
// compiler's code generator lays out a translation unit's descriptors.
// Classes, categories and selector refs are collected and only actually
// laid out into bytes when Bytes is called.
type ImageBuilder struct {
	ModuleName string
	Classes    []ClassDef
	Categories []CategoryDef
	SelRefs    []SelRefDef
	WideNames  bool
}

// Bytes lays out the collected definitions into a little-endian module
// image and returns it. The layout mirrors wire.go exactly: module
// header at offset 0, a string pool, method/ivar lists, metaclass
// records, class records, category records, the selector-refs array,
// then the symtab header and its definition-offset array.
func (b *ImageBuilder) Bytes() []byte {
	buf := make([]byte, moduleHeaderSize)
	strOff := make(map[string]uint32)

	str := func(s string) uint32 {
		if s == "" {
			return 0
		}
		if off, ok := strOff[s]; ok {
			return off
		}
		off := uint32(len(buf))
		if b.WideNames {
			buf = append(buf, encodeUTF16LE(s)...)
			buf = append(buf, 0, 0)
		} else {
			buf = append(buf, []byte(s)...)
			buf = append(buf, 0)
		}
		strOff[s] = off
		return off
	}

	writeMethodList := func(methods []MethodDef) uint32 {
		if len(methods) == 0 {
			return 0
		}
		off := uint32(len(buf))
		buf = appendStruct(buf, rawMethodListHeader{NextOff: 0, Count: int32(len(methods))})
		for _, m := range methods {
			buf = appendStruct(buf, rawMethod{NameOff: str(m.Name), TypesOff: str(m.Types), CodeID: m.CodeID})
		}
		return off
	}

	writeIvarList := func(ivars []IvarDef) uint32 {
		if len(ivars) == 0 {
			return 0
		}
		off := uint32(len(buf))
		buf = appendStruct(buf, rawIvarListHeader{Count: int32(len(ivars))})
		for _, v := range ivars {
			buf = appendStruct(buf, rawIvar{NameOff: str(v.Name), TypesOff: str(v.Types), Offset: v.Offset})
		}
		return off
	}

	moduleNameOff := str(b.ModuleName)

	type built struct {
		nameOff      uint32
		superNameOff uint32
		ivarsOff     uint32
		instMethOff  uint32
		classMethOff uint32
	}
	prepared := make([]built, len(b.Classes))
	rootIdx := -1
	for i, def := range b.Classes {
		prepared[i] = built{
			nameOff:      str(def.Name),
			superNameOff: str(def.SuperName),
			ivarsOff:     writeIvarList(def.Ivars),
			instMethOff:  writeMethodList(def.Methods),
			classMethOff: writeMethodList(def.ClassMethods),
		}
		if def.SuperName == "" && rootIdx < 0 {
			rootIdx = i
		}
	}

	metaBase := uint32(len(buf))
	metaOffsets := make([]uint32, len(b.Classes))
	for i := range b.Classes {
		metaOffsets[i] = metaBase + uint32(i)*classRecordSize
	}
	rootMetaOff := uint32(0)
	if rootIdx >= 0 {
		rootMetaOff = metaOffsets[rootIdx]
	}
	for i := range b.Classes {
		isa := rootMetaOff
		if rootIdx < 0 {
			isa = metaOffsets[i] // no root in this image; self-reference as a placeholder
		}
		buf = appendStruct(buf, rawClass{
			IsaOff:       isa,
			SuperNameOff: prepared[i].superNameOff,
			NameOff:      prepared[i].nameOff,
			Version:      0,
			Info:         infoIsMeta,
			InstanceSize: 0,
			IvarsOff:     0,
			MethodsOff:   prepared[i].classMethOff,
		})
	}

	classBase := uint32(len(buf))
	classOffsets := make([]uint32, len(b.Classes))
	for i := range b.Classes {
		classOffsets[i] = classBase + uint32(i)*classRecordSize
	}
	for i, def := range b.Classes {
		buf = appendStruct(buf, rawClass{
			IsaOff:       metaOffsets[i],
			SuperNameOff: prepared[i].superNameOff,
			NameOff:      prepared[i].nameOff,
			Version:      def.Version,
			Info:         infoIsClass,
			InstanceSize: def.InstanceSize,
			IvarsOff:     prepared[i].ivarsOff,
			MethodsOff:   prepared[i].instMethOff,
		})
	}

	catOffsets := make([]uint32, len(b.Categories))
	for j, cat := range b.Categories {
		instOff := writeMethodList(cat.InstanceMethods)
		clsOff := writeMethodList(cat.ClassMethods)
		catOffsets[j] = uint32(len(buf))
		buf = appendStruct(buf, rawCategory{
			CategoryNameOff:    str(cat.CategoryName),
			TargetClassNameOff: str(cat.TargetClassName),
			InstanceMethodsOff: instOff,
			ClassMethodsOff:    clsOff,
		})
	}

	selRefsOff := uint32(len(buf))
	for _, ref := range b.SelRefs {
		buf = appendStruct(buf, rawSelRef{NameOff: str(ref.Name), TypesOff: str(ref.Types)})
	}
	buf = appendStruct(buf, rawSelRef{NameOff: 0, TypesOff: 0}) // terminator

	symtabOff := uint32(len(buf))
	buf = appendStruct(buf, rawSymtabHeader{
		SelRefCount: int32(len(b.SelRefs)),
		SelRefsOff:  selRefsOff,
		ClsDefCnt:   uint16(len(b.Classes)),
		CatDefCnt:   uint16(len(b.Categories)),
	})
	for _, off := range classOffsets {
		buf = appendUint32(buf, off)
	}
	for _, off := range catOffsets {
		buf = appendUint32(buf, off)
	}

	flags := uint32(0)
	if b.WideNames {
		flags |= moduleFlagWideNames
	}
	binary.LittleEndian.PutUint32(buf[0:4], 1)             // AbiVersion
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(buf))) // Size
	binary.LittleEndian.PutUint32(buf[8:12], moduleNameOff)
	binary.LittleEndian.PutUint32(buf[12:16], symtabOff)
	binary.LittleEndian.PutUint32(buf[16:20], flags)

	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendStruct(buf []byte, v interface{}) []byte {
	switch s := v.(type) {
	case rawMethodListHeader:
		buf = appendUint32(buf, s.NextOff)
		buf = appendUint32(buf, uint32(s.Count))
	case rawMethod:
		buf = appendUint32(buf, s.NameOff)
		buf = appendUint32(buf, s.TypesOff)
		buf = appendUint32(buf, s.CodeID)
	case rawIvarListHeader:
		buf = appendUint32(buf, uint32(s.Count))
	case rawIvar:
		buf = appendUint32(buf, s.NameOff)
		buf = appendUint32(buf, s.TypesOff)
		buf = appendUint32(buf, uint32(s.Offset))
	case rawClass:
		buf = appendUint32(buf, s.IsaOff)
		buf = appendUint32(buf, s.SuperNameOff)
		buf = appendUint32(buf, s.NameOff)
		buf = appendUint32(buf, uint32(s.Version))
		buf = appendUint32(buf, s.Info)
		buf = appendUint32(buf, uint32(s.InstanceSize))
		buf = appendUint32(buf, s.IvarsOff)
		buf = appendUint32(buf, s.MethodsOff)
	case rawCategory:
		buf = appendUint32(buf, s.CategoryNameOff)
		buf = appendUint32(buf, s.TargetClassNameOff)
		buf = appendUint32(buf, s.InstanceMethodsOff)
		buf = appendUint32(buf, s.ClassMethodsOff)
	case rawSelRef:
		buf = appendUint32(buf, s.NameOff)
		buf = appendUint32(buf, s.TypesOff)
	case rawSymtabHeader:
		buf = appendUint32(buf, uint32(s.SelRefCount))
		buf = appendUint32(buf, s.SelRefsOff)
		var tmp [4]byte
		binary.LittleEndian.PutUint16(tmp[0:2], s.ClsDefCnt)
		binary.LittleEndian.PutUint16(tmp[2:4], s.CatDefCnt)
		buf = append(buf, tmp[:]...)
	default:
		panic("objcrt: appendStruct: unknown type")
	}
	return buf
}
