// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// Module is the compiler-emitted per-translation-unit descriptor exec_class
// ingests. Symtab is a live view over the backing image: it materializes
// classes and categories on demand, by lazy indexed access rather than
// decoding the whole image up front.
type Module struct {
	AbiVersion int32
	Size       int32
	Name       string
	Symtab     *Symtab

	// Signature is set by ParseModule when the image carries a trailing
	// PKCS#7 block (flagged by moduleFlagSigned); nil otherwise.
	Signature *Signature
}

// SelRef is one entry of a module's selector-reference array: a canonical
// pointer the compiler reserved for every (name[, types]) pair used in
// this translation unit.
type SelRef struct {
	Name  string
	Types string
}

// Symtab is the per-module directory of class definitions, category
// definitions and selector references. It owns no data of its own beyond
// bookkeeping: CategoryAt decodes directly from the backing image on every
// call, while ClassAt caches each class record it decodes by offset, so
// repeated calls return the same *Class and a class's metaclass identity
// stays stable.
type Symtab struct {
	r          *imageReader
	code       []CodePointer
	pool       *namePool
	wide       bool
	selRefsOff uint32
	clsDefCnt  int
	catDefCnt  int
	defOffsets []uint32 // classes first, then categories
	cache      map[uint32]*Class
}

// ClassCount returns cls_def_cnt.
func (s *Symtab) ClassCount() int { return s.clsDefCnt }

// CategoryCount returns cat_def_cnt.
func (s *Symtab) CategoryCount() int { return s.catDefCnt }

// ClassAt returns the i-th class definition, 0 <= i < ClassCount().
func (s *Symtab) ClassAt(i int) (*Class, error) {
	if i < 0 || i >= s.clsDefCnt {
		return nil, ErrBadDescriptor
	}
	return parseClassAt(s.r, s.defOffsets[i], s.cache, s.code, s.pool, s.wide)
}

// CategoryAt returns the j-th category definition, 0 <= j < CategoryCount().
func (s *Symtab) CategoryAt(j int) (*Category, error) {
	if j < 0 || j >= s.catDefCnt {
		return nil, ErrBadDescriptor
	}
	off := s.defOffsets[s.clsDefCnt+j]
	return parseCategoryAt(s.r, off, s.code, s.pool, s.wide)
}

// SelectorRefs iterates the selector-reference array from its base pointer
// until an entry with a null name field. The terminator is not yielded.
// The null-name check runs before anything that would assume a non-null
// Types field, so a terminator entry with garbage in its Types slot is
// never dereferenced.
func (s *Symtab) SelectorRefs() ([]SelRef, error) {
	var out []SelRef
	off := s.selRefsOff
	for {
		raw, err := s.r.readSelRef(off)
		if err != nil {
			return out, err
		}
		if raw.NameOff == 0 {
			return out, nil
		}
		name, err := decodeName(s.r, raw.NameOff, s.wide)
		if err != nil {
			return out, err
		}
		types, err := decodeName(s.r, raw.TypesOff, s.wide)
		if err != nil {
			return out, err
		}
		out = append(out, SelRef{Name: name, Types: types})
		off += selRefSize
	}
}

func decodeName(r *imageReader, off uint32, wide bool) (string, error) {
	if wide {
		return r.readWideCString(off)
	}
	return r.readCString(off)
}

// parseClassAt materializes the class record at offset, recursing through
// Isa to materialize its metaclass. cache breaks the isa cycle a root
// metaclass forms with itself and ensures two classes sharing a metaclass
// offset (a class and its metaclass's own isa target) get the same *Class
// identity.
func parseClassAt(r *imageReader, offset uint32, cache map[uint32]*Class, code []CodePointer, pool *namePool, wide bool) (*Class, error) {
	if c, ok := cache[offset]; ok {
		return c, nil
	}
	raw, err := r.readClass(offset)
	if err != nil {
		return nil, err
	}
	info := ClassInfo(raw.Info)
	if !info.valid() {
		return nil, ErrBadDescriptor
	}
	if raw.IsaOff == 0 {
		return nil, ErrBadDescriptor
	}

	cls := &Class{
		Info:         info,
		Version:      raw.Version,
		InstanceSize: raw.InstanceSize,
		Dispatch:     newDispatchTable(),
	}
	cache[offset] = cls // inserted before recursing into Isa to break cycles

	name, err := decodeName(r, raw.NameOff, wide)
	if err != nil {
		return nil, err
	}
	cls.Name = pool.intern(name)

	if raw.SuperNameOff != 0 {
		superName, err := decodeName(r, raw.SuperNameOff, wide)
		if err != nil {
			return nil, err
		}
		cls.Super = SuperRef{Name: superName}
	}

	if raw.IvarsOff != 0 {
		ivars, err := parseIvarList(r, raw.IvarsOff, wide)
		if err != nil {
			return nil, err
		}
		cls.Ivars = ivars
	}

	if raw.MethodsOff != 0 {
		methods, err := parseMethodList(r, raw.MethodsOff, code, wide)
		if err != nil {
			return nil, err
		}
		cls.Methods = methods
	}

	isa, err := parseClassAt(r, raw.IsaOff, cache, code, pool, wide)
	if err != nil {
		return nil, err
	}
	cls.Isa = isa
	return cls, nil
}

func parseIvarList(r *imageReader, offset uint32, wide bool) (*IvarList, error) {
	hdr, err := r.readIvarListHeader(offset)
	if err != nil {
		return nil, err
	}
	if hdr.Count < 0 {
		return nil, ErrBadDescriptor
	}
	ivars := make([]Ivar, 0, hdr.Count)
	base := offset + ivarListHdrSize
	for i := int32(0); i < hdr.Count; i++ {
		raw, err := r.readIvar(base + uint32(i)*ivarRecordSize)
		if err != nil {
			return nil, err
		}
		name, err := decodeName(r, raw.NameOff, wide)
		if err != nil {
			return nil, err
		}
		types, err := decodeName(r, raw.TypesOff, wide)
		if err != nil {
			return nil, err
		}
		ivars = append(ivars, Ivar{Name: name, Types: types, Offset: raw.Offset})
	}
	return &IvarList{ivars: ivars}, nil
}

func parseMethodList(r *imageReader, offset uint32, code []CodePointer, wide bool) (*MethodList, error) {
	if offset == 0 {
		return nil, nil
	}
	hdr, err := r.readMethodListHeader(offset)
	if err != nil {
		return nil, err
	}
	if hdr.Count < 0 {
		return nil, ErrBadDescriptor
	}
	methods := make([]*Method, 0, hdr.Count)
	base := offset + methodListHdrSz
	for i := int32(0); i < hdr.Count; i++ {
		raw, err := r.readMethod(base + uint32(i)*methodRecordSize)
		if err != nil {
			return nil, err
		}
		rawName, err := decodeName(r, raw.NameOff, wide)
		if err != nil {
			return nil, err
		}
		types, err := decodeName(r, raw.TypesOff, wide)
		if err != nil {
			return nil, err
		}
		methods = append(methods, &Method{
			RawName: rawName,
			Types:   types,
			Code:    codeAt(code, raw.CodeID),
		})
	}
	next, err := parseMethodList(r, hdr.NextOff, code, wide)
	if err != nil {
		return nil, err
	}
	return &MethodList{Methods: methods, Next: next}, nil
}

func parseCategoryAt(r *imageReader, offset uint32, code []CodePointer, pool *namePool, wide bool) (*Category, error) {
	raw, err := r.readCategory(offset)
	if err != nil {
		return nil, err
	}
	catName, err := decodeName(r, raw.CategoryNameOff, wide)
	if err != nil {
		return nil, err
	}
	targetName, err := decodeName(r, raw.TargetClassNameOff, wide)
	if err != nil {
		return nil, err
	}
	if targetName == "" {
		return nil, ErrBadDescriptor
	}
	cat := &Category{CategoryName: catName, TargetClassName: targetName}
	if raw.InstanceMethodsOff != 0 {
		cat.InstanceMethods, err = parseMethodList(r, raw.InstanceMethodsOff, code, wide)
		if err != nil {
			return nil, err
		}
	}
	if raw.ClassMethodsOff != 0 {
		cat.ClassMethods, err = parseMethodList(r, raw.ClassMethodsOff, code, wide)
		if err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func codeAt(code []CodePointer, id uint32) CodePointer {
	if id == noCode || int(id) >= len(code) {
		return nil
	}
	return code[id]
}
