package classfile

import (
	"errors"
	"strings"
	"testing"
)

var allBaseTypes = []BaseType{Byte, Char, Double, Float, Int, Long, Short, Boolean}

func TestFieldTypeSize(t *testing.T) {
	for _, bt := range allBaseTypes {
		want := 1
		if bt == Double || bt == Long {
			want = 2
		}
		if got := bt.Size(); got != want {
			t.Errorf("%s.Size() = %d, want %d", bt, got, want)
		}
	}
	if got := Object("java/lang/Long").Size(); got != 1 {
		t.Errorf("Object.Size() = %d, want 1", got)
	}
	if got := ArrayOf(Long).Size(); got != 1 {
		t.Errorf("long[].Size() = %d, want 1", got)
	}
}

func TestFieldTypeIsReference(t *testing.T) {
	for _, bt := range allBaseTypes {
		if bt.IsReference() {
			t.Errorf("%s.IsReference() = true", bt)
		}
	}
	refs := []FieldType{Object("java/lang/String"), ArrayOf(Int), ArrayOf(Object("Foo"))}
	for _, ft := range refs {
		if !ft.IsReference() {
			t.Errorf("%s.IsReference() = false", ft)
		}
	}
}

func TestFieldTypeIndex(t *testing.T) {
	tests := []struct {
		ft   FieldType
		want int
	}{
		{Byte, 0},
		{Char, 1},
		{Double, 2},
		{Float, 3},
		{Int, 4},
		{Long, 5},
		{Object("Foo"), 6},
		{Short, 7},
		{Boolean, 8},
		{ArrayOf(Byte), 9},
	}

	var table [NumFieldTypeIndexes]bool
	for _, tt := range tests {
		if got := tt.ft.Index(); got != tt.want {
			t.Errorf("%s.Index() = %d, want %d", tt.ft, got, tt.want)
		}
		table[tt.ft.Index()] = true
	}
	for i, seen := range table {
		if !seen {
			t.Errorf("index %d not produced by any variant", i)
		}
	}
}

func TestFieldTypeString(t *testing.T) {
	tests := []struct {
		ft   FieldType
		want string
	}{
		{Int, "int"},
		{Boolean, "boolean"},
		{Object("java/lang/String"), "java/lang/String"},
		{ArrayOf(Int), "int[]"},
		{ArrayOf(ArrayOf(Int)), "int[][]"},
		{ArrayOfDepth(Object("Foo"), 3), "Foo[][][]"},
	}

	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFieldTypeEquality(t *testing.T) {
	if Object("a/B") != Object("a/B") {
		t.Error("equal class names should compare equal")
	}
	if Object("a/B") == Object("a/C") {
		t.Error("different class names should differ")
	}

	var x, y FieldType = ArrayOf(ArrayOf(Int)), ArrayOf(ArrayOf(Int))
	if x != y {
		t.Error("nested arrays with equal elements should compare equal")
	}
	if x == FieldType(ArrayOf(ArrayOf(Long))) {
		t.Error("arrays with different elements should differ")
	}
	if x == FieldType(ArrayOf(Int)) {
		t.Error("arrays of different depth should differ")
	}

	seen := map[FieldType]int{}
	seen[ArrayOf(Object("Foo"))]++
	seen[ArrayOf(Object("Foo"))]++
	seen[Int]++
	if len(seen) != 2 || seen[ArrayOf(Object("Foo"))] != 2 {
		t.Errorf("map keyed by FieldType = %v", seen)
	}
}

func TestArrayTypeDimensions(t *testing.T) {
	depth, elem := ArrayOfDepth(Object("Foo"), 4).Dimensions()
	if depth != 4 || elem != FieldType(Object("Foo")) {
		t.Errorf("Dimensions() = %d, %v", depth, elem)
	}
}

func TestArrayOfNilElement(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ArrayOf(nil) did not panic")
		}
	}()
	ArrayOf(nil)
}

func TestParseTypeNameRoundTrip(t *testing.T) {
	types := []FieldType{
		Byte, Char, Double, Float, Int, Long, Short, Boolean,
		Object("java/lang/String"),
		ArrayOf(Int),
		ArrayOfDepth(Object("java/util/List"), 2),
	}

	for _, ft := range types {
		t.Run(ft.String(), func(t *testing.T) {
			got, err := ParseTypeName(ft.String())
			if err != nil {
				t.Fatalf("ParseTypeName() error = %v", err)
			}
			if got != ft {
				t.Errorf("ParseTypeName(%q) = %v, want %v", ft.String(), got, ft)
			}
		})
	}

	for _, bad := range []string{"", "[]", "void", "int[", "a b"} {
		if _, err := ParseTypeName(bad); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseTypeName(%q) error = %v, want ErrMalformed", bad, err)
		}
	}
}

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want FieldType
	}{
		{"I", Int},
		{"J", Long},
		{"Z", Boolean},
		{"Ljava/lang/String;", Object("java/lang/String")},
		{"[I", ArrayOf(Int)},
		{"[[Ljava/lang/Object;", ArrayOfDepth(Object("java/lang/Object"), 2)},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := ParseFieldDescriptor(tt.desc)
			if err != nil {
				t.Fatalf("ParseFieldDescriptor() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFieldDescriptor(%q) = %v, want %v", tt.desc, got, tt.want)
			}
			if got.Descriptor() != tt.desc {
				t.Errorf("Descriptor() = %q, want %q", got.Descriptor(), tt.desc)
			}
		})
	}
}

func TestParseFieldDescriptorErrors(t *testing.T) {
	bad := []string{
		"",
		"V",
		"X",
		"[",
		"L;",
		"Ljava/lang/String",
		"II",
		strings.Repeat("[", 256) + "I",
	}

	for _, desc := range bad {
		if _, err := ParseFieldDescriptor(desc); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseFieldDescriptor(%q) error = %v, want ErrMalformed", desc, err)
		}
	}

	if _, err := ParseFieldDescriptor(strings.Repeat("[", 255) + "I"); err != nil {
		t.Errorf("255 dimensions should be accepted: %v", err)
	}
}
