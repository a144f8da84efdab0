// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "testing"

func TestParseModuleRoundTrip(t *testing.T) {
	code := []CodePointer{
		func(receiver *Object, sel *Selector, args ...interface{}) interface{} { return "bark!" },
	}

	b := &ImageBuilder{
		ModuleName: "Animals",
		Classes: []ClassDef{
			{
				Name:         "Animal",
				InstanceSize: 8,
				Ivars:        []IvarDef{{Name: "age", Types: "i", Offset: 0}},
				Methods:      []MethodDef{{Name: "bark", Types: "v@:", CodeID: 0}},
			},
		},
		SelRefs: []SelRefDef{{Name: "bark", Types: "v@:"}},
	}

	pool := newNamePool()
	mod, err := ParseModule(b.Bytes(), code, pool)
	if err != nil {
		t.Fatalf("ParseModule failed: %v", err)
	}
	if mod.Name != "Animals" {
		t.Errorf("Module.Name = %q, want %q", mod.Name, "Animals")
	}
	if got, want := mod.Symtab.ClassCount(), 1; got != want {
		t.Fatalf("ClassCount() = %d, want %d", got, want)
	}

	cls, err := mod.Symtab.ClassAt(0)
	if err != nil {
		t.Fatalf("ClassAt(0) failed: %v", err)
	}
	if cls.Name.String() != "Animal" {
		t.Errorf("class name = %q, want %q", cls.Name.String(), "Animal")
	}
	if !cls.Super.IsRoot() {
		t.Error("Animal should be a root class")
	}
	if cls.Ivars.Count() != 1 {
		t.Fatalf("Ivars.Count() = %d, want 1", cls.Ivars.Count())
	}
	iv, _ := cls.Ivars.At(0)
	if iv.Name != "age" || iv.Types != "i" {
		t.Errorf("ivar = %+v, want {age i 0}", iv)
	}

	methods := cls.Methods.All()
	if len(methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(methods))
	}
	if methods[0].RawName != "bark" || methods[0].Types != "v@:" {
		t.Errorf("method = %+v", methods[0])
	}
	if methods[0].Code == nil {
		t.Fatal("method's code pointer was not resolved from the code table")
	}
	if got := methods[0].Code(nil, nil); got != "bark!" {
		t.Errorf("method code returned %v, want %q", got, "bark!")
	}

	refs, err := mod.Symtab.SelectorRefs()
	if err != nil {
		t.Fatalf("SelectorRefs failed: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "bark" {
		t.Errorf("SelectorRefs = %+v, want one ref named bark", refs)
	}
}

func TestParseModuleIsaCycle(t *testing.T) {
	b := &ImageBuilder{
		ModuleName: "Animals",
		Classes: []ClassDef{
			{Name: "Animal"},
			{Name: "Dog", SuperName: "Animal"},
		},
	}

	pool := newNamePool()
	mod, err := ParseModule(b.Bytes(), nil, pool)
	if err != nil {
		t.Fatalf("ParseModule failed: %v", err)
	}

	animal, err := mod.Symtab.ClassAt(0)
	if err != nil {
		t.Fatalf("ClassAt(0) failed: %v", err)
	}
	dog, err := mod.Symtab.ClassAt(1)
	if err != nil {
		t.Fatalf("ClassAt(1) failed: %v", err)
	}

	if animal.Isa != dog.Isa.Isa {
		t.Error("every metaclass's isa should point at the root class's metaclass")
	}
	if dog.Super.Name != "Animal" {
		t.Errorf("Dog.Super.Name = %q, want %q", dog.Super.Name, "Animal")
	}
}

func TestParseModuleWideNames(t *testing.T) {
	b := &ImageBuilder{
		ModuleName: "Animals",
		WideNames:  true,
		Classes: []ClassDef{
			{Name: "Animal", Methods: []MethodDef{{Name: "bark", Types: "v@:"}}},
		},
	}

	pool := newNamePool()
	mod, err := ParseModule(b.Bytes(), nil, pool)
	if err != nil {
		t.Fatalf("ParseModule failed on a wide-name image: %v", err)
	}
	cls, err := mod.Symtab.ClassAt(0)
	if err != nil {
		t.Fatalf("ClassAt(0) failed: %v", err)
	}
	if cls.Name.String() != "Animal" {
		t.Errorf("wide-decoded class name = %q, want %q", cls.Name.String(), "Animal")
	}
}

func TestParseModuleCategory(t *testing.T) {
	b := &ImageBuilder{
		ModuleName: "Animals",
		Classes: []ClassDef{
			{Name: "Calc", Methods: []MethodDef{{Name: "add", Types: "i@:"}}},
		},
		Categories: []CategoryDef{
			{
				CategoryName:    "Extra",
				TargetClassName: "Calc",
				InstanceMethods: []MethodDef{{Name: "subtract", Types: "i@:"}},
			},
		},
	}

	pool := newNamePool()
	mod, err := ParseModule(b.Bytes(), nil, pool)
	if err != nil {
		t.Fatalf("ParseModule failed: %v", err)
	}
	if got, want := mod.Symtab.CategoryCount(), 1; got != want {
		t.Fatalf("CategoryCount() = %d, want %d", got, want)
	}
	cat, err := mod.Symtab.CategoryAt(0)
	if err != nil {
		t.Fatalf("CategoryAt(0) failed: %v", err)
	}
	if cat.TargetClassName != "Calc" {
		t.Errorf("cat.TargetClassName = %q, want %q", cat.TargetClassName, "Calc")
	}
}

func TestParseModuleTooShort(t *testing.T) {
	if _, err := ParseModule([]byte{1, 2, 3}, nil, newNamePool()); err != ErrInvalidModuleSize {
		t.Errorf("ParseModule on a too-short buffer: err = %v, want %v", err, ErrInvalidModuleSize)
	}
}
