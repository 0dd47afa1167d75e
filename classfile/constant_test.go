package classfile

import (
	"math"
	"slices"
	"testing"
)

func TestConstantWords(t *testing.T) {
	tests := []struct {
		name string
		c    Constant
		want []uint32
	}{
		{"int", IntConstant(42), []uint32{42}},
		{"negative int", IntConstant(-1), []uint32{0xFFFFFFFF}},
		{"float", FloatConstant(1.5), []uint32{math.Float32bits(1.5)}},
		{"long -1", LongConstant(-1), []uint32{0xFFFFFFFF, 0xFFFFFFFF}},
		{"long low word first", LongConstant(0x0000000100000002), []uint32{2, 1}},
		{"double zero", DoubleConstant(0.0), []uint32{0, 0}},
		{"double one", DoubleConstant(1.0), []uint32{0, 0x3FF00000}},
		{"string", StringConstant("hi"), []uint32{0}},
		{"class", ClassRef("Foo"), []uint32{0}},
		{"method", MethodRef{Class: "Foo", Name: "f", Type: EmptyMethodDescriptor}, []uint32{0}},
		{"placeholder", Placeholder{}, []uint32{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Words(); !slices.Equal(got, tt.want) {
				t.Errorf("Words() = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestConstantSlots(t *testing.T) {
	for _, c := range []Constant{LongConstant(1), DoubleConstant(1)} {
		if c.Slots() != 2 || !IsWide(c) {
			t.Errorf("%s should take two slots", c)
		}
	}
	for _, c := range []Constant{IntConstant(1), FloatConstant(1), StringConstant("x"), Placeholder{}} {
		if c.Slots() != 1 || IsWide(c) {
			t.Errorf("%s should take one slot", c)
		}
	}
}

func TestConstantString(t *testing.T) {
	md := NewMethodDescriptor(Int, Long, Int)

	tests := []struct {
		c    Constant
		want string
	}{
		{StringConstant("a\"b"), `"a\"b"`},
		{IntConstant(-7), "-7"},
		{FloatConstant(1.5), "1.5"},
		{FloatConstant(2), "2"},
		{FloatConstant(float32(math.Inf(1))), "inf"},
		{DoubleConstant(math.Inf(-1)), "-inf"},
		{DoubleConstant(math.NaN()), "NaN"},
		{LongConstant(1 << 40), "1099511627776"},
		{DoubleConstant(0.1), "0.1"},
		{ClassRef("java/lang/Object"), "class java/lang/Object"},
		{StringRef("hello"), `&"hello"`},
		{FieldRef{Class: "Foo", Name: "x", Type: ArrayOf(Int)}, "Field(int[] Foo.x)"},
		{MethodRef{Class: "Foo", Name: "f", Type: md}, "Method(int 3(long, int) Foo.f)"},
		{InterfaceRef{Class: "Bar", Name: "g", Type: EmptyMethodDescriptor}, "InterfaceMethod(void 0() Bar.g)"},
		{NameTypeDescriptor{Name: "f", Descriptor: "(JI)I"}, "NameTypeDescriptor((JI)I f)"},
		{MethodHandleConstant{Handle: InvokeStatic("Foo", "f", md)}, `MethodHandle(InvokeStatic { class: "Foo", name: "f", method_type: int 3(long, int) })`},
		{MethodTypeConstant{Type: md}, "MethodType(int 3(long, int))"},
		{InvokeDynamic{BootstrapIndex: 3, Name: "run", Type: NewMethodDescriptor(Object("java/lang/Runnable"))}, "InvokeDynamic(#3 java/lang/Runnable 0() run)"},
		{DynamicConstant{BootstrapIndex: 1, Name: "c", Type: Int}, "Dynamic(#1 int c)"},
		{ModuleRef("java.base"), "Module(java.base)"},
		{PackageRef("java/lang"), "Package(java/lang)"},
		{Placeholder{}, "Placeholder"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestConstantEquality(t *testing.T) {
	base := MethodRef{Class: "Foo", Name: "f", Type: NewMethodDescriptor(Int, Long)}
	same := MethodRef{Class: "Foo", Name: "f", Type: NewDescriptorBuilder().Param(Long).Returns(Int).Build()}

	if !base.Equal(same) {
		t.Fatal("identical method refs should be equal")
	}
	if base.Hash() != same.Hash() {
		t.Fatal("identical method refs should hash identically")
	}

	changed := []Constant{
		MethodRef{Class: "Bar", Name: "f", Type: base.Type},
		MethodRef{Class: "Foo", Name: "g", Type: base.Type},
		MethodRef{Class: "Foo", Name: "f", Type: NewMethodDescriptor(Long, Long)},
		InterfaceRef{Class: "Foo", Name: "f", Type: base.Type},
	}
	for _, c := range changed {
		if base.Equal(c) {
			t.Errorf("%s should not equal %s", base, c)
		}
	}
}

func TestConstantEqualityByVariant(t *testing.T) {
	pairs := []struct {
		a, b  Constant
		equal bool
	}{
		{StringConstant("x"), StringConstant("x"), true},
		{StringConstant("x"), StringRef("x"), false},
		{ClassRef("x"), StringRef("x"), false},
		{IntConstant(1), LongConstant(1), false},
		{FloatConstant(0), FloatConstant(float32(math.Copysign(0, -1))), false},
		{DoubleConstant(math.NaN()), DoubleConstant(math.NaN()), true},
		{FieldRef{"A", "b", Int}, FieldRef{"A", "b", Int}, true},
		{FieldRef{"A", "b", Int}, FieldRef{"A", "b", Long}, false},
		{MethodHandleConstant{GetField("A", "b", Int)}, MethodHandleConstant{GetField("A", "b", Int)}, true},
		{MethodHandleConstant{GetField("A", "b", Int)}, MethodHandleConstant{PutField("A", "b", Int)}, false},
		{Placeholder{}, Placeholder{}, true},
		{Placeholder{}, IntConstant(0), false},
		{IntConstant(0), Placeholder{}, false},
	}

	for _, p := range pairs {
		if got := p.a.Equal(p.b); got != p.equal {
			t.Errorf("%s.Equal(%s) = %v, want %v", p.a, p.b, got, p.equal)
		}
		if p.equal && p.a.Hash() != p.b.Hash() {
			t.Errorf("%s and %s are equal but hash differently", p.a, p.b)
		}
	}
}

func TestConstantHashDistinguishesVariants(t *testing.T) {
	constants := []Constant{
		StringConstant("Foo"),
		ClassRef("Foo"),
		StringRef("Foo"),
		ModuleRef("Foo"),
		PackageRef("Foo"),
		IntConstant(0),
		LongConstant(0),
		Placeholder{},
	}

	seen := map[uint64]Constant{}
	for _, c := range constants {
		if prev, ok := seen[c.Hash()]; ok {
			t.Errorf("%s and %s hash identically", prev, c)
		}
		seen[c.Hash()] = c
	}
}
