package classfile

import (
	"strconv"
	"strings"
)

// FieldType is the type of a field, parameter, return value or array
// element. Implementations are BaseType, ObjectType and ArrayType; all of
// them are comparable, so == is structural equality and FieldType values can
// be used as map keys.
type FieldType interface {
	// Size is the number of operand stack or local variable slots a value
	// of this type occupies.
	Size() int
	// IsReference reports whether values of this type are heap references.
	IsReference() bool
	// Index is a dense discriminant usable as a dispatch table index.
	Index() int
	// Descriptor returns the JVM descriptor text, e.g. "[Ljava/lang/String;".
	Descriptor() string
	String() string

	fieldType()
}

// Dispatch table indexes returned by FieldType.Index.
const (
	IndexByte = iota
	IndexChar
	IndexDouble
	IndexFloat
	IndexInt
	IndexLong
	IndexObject
	IndexShort
	IndexBoolean
	IndexArray

	NumFieldTypeIndexes
)

// BaseType is one of the eight primitive types.
type BaseType uint8

const (
	Byte BaseType = iota
	Char
	Double
	Float
	Int
	Long
	Short
	Boolean
)

var baseTypes = [...]struct {
	keyword string
	desc    byte
	index   int
}{
	Byte:    {"byte", 'B', IndexByte},
	Char:    {"char", 'C', IndexChar},
	Double:  {"double", 'D', IndexDouble},
	Float:   {"float", 'F', IndexFloat},
	Int:     {"int", 'I', IndexInt},
	Long:    {"long", 'J', IndexLong},
	Short:   {"short", 'S', IndexShort},
	Boolean: {"boolean", 'Z', IndexBoolean},
}

func (t BaseType) Size() int {
	if t == Double || t == Long {
		return 2
	}
	return 1
}

func (t BaseType) IsReference() bool  { return false }
func (t BaseType) Index() int         { return baseTypes[t].index }
func (t BaseType) String() string     { return baseTypes[t].keyword }
func (t BaseType) Descriptor() string { return string(baseTypes[t].desc) }
func (BaseType) fieldType()           {}

// ObjectType is a reference to an instance of the named class. Class is the
// internal (slash separated) binary name.
type ObjectType struct {
	Class string
}

// Object returns the ObjectType for class, sharing the interned name.
func Object(class string) ObjectType {
	return ObjectType{Class: Intern(class)}
}

func (t ObjectType) Size() int          { return 1 }
func (t ObjectType) IsReference() bool  { return true }
func (t ObjectType) Index() int         { return IndexObject }
func (t ObjectType) String() string     { return t.Class }
func (t ObjectType) Descriptor() string { return "L" + t.Class + ";" }
func (ObjectType) fieldType()           {}

// ArrayType is an array whose components are Elem.
type ArrayType struct {
	Elem FieldType
}

// ArrayOf returns a one-dimensional array of elem, which must not be nil.
func ArrayOf(elem FieldType) ArrayType {
	if elem == nil {
		panic("classfile: nil array element type")
	}
	return ArrayType{Elem: elem}
}

// ArrayOfDepth wraps elem in depth array dimensions. depth must be at
// least one.
func ArrayOfDepth(elem FieldType, depth int) ArrayType {
	t := ArrayOf(elem)
	for i := 1; i < depth; i++ {
		t = ArrayOf(t)
	}
	return t
}

func (t ArrayType) Size() int          { return 1 }
func (t ArrayType) IsReference() bool  { return true }
func (t ArrayType) Index() int         { return IndexArray }
func (t ArrayType) String() string     { return t.Elem.String() + "[]" }
func (t ArrayType) Descriptor() string { return "[" + t.Elem.Descriptor() }
func (ArrayType) fieldType()           {}

// Dimensions returns the number of array dimensions and the innermost
// non-array component type.
func (t ArrayType) Dimensions() (int, FieldType) {
	var elem FieldType = t
	depth := 0
	for {
		arr, ok := elem.(ArrayType)
		if !ok {
			return depth, elem
		}
		depth++
		elem = arr.Elem
	}
}

// ParseTypeName parses the source-level rendering produced by
// FieldType.String: a primitive keyword, a class name, each optionally
// followed by "[]" pairs.
func ParseTypeName(name string) (FieldType, error) {
	base := name
	depth := 0
	for strings.HasSuffix(base, "[]") {
		base = base[:len(base)-2]
		depth++
	}
	if base == "" {
		return nil, malformed("type name", "empty type name %q", name)
	}
	if base == "void" || strings.ContainsAny(base, "[]; ") {
		return nil, malformed("type name", "invalid type name %q", name)
	}

	var t FieldType = Object(base)
	for i, bt := range baseTypes {
		if bt.keyword == base {
			t = BaseType(i)
			break
		}
	}
	if depth > 0 {
		t = ArrayOfDepth(t, depth)
	}
	return t, nil
}

// ParseFieldDescriptor parses a complete field descriptor such as "I" or
// "[Ljava/lang/Object;".
func ParseFieldDescriptor(desc string) (FieldType, error) {
	t, n, err := parseFieldType(desc, 0)
	if err != nil {
		return nil, err
	}
	if n != len(desc) {
		return nil, malformed("field descriptor", "trailing characters in %q", desc)
	}
	return t, nil
}

// maxArrayDimensions is the JVMS limit on array descriptor dimensions.
const maxArrayDimensions = 255

func parseFieldType(desc string, start int) (FieldType, int, error) {
	i := start
	depth := 0
	for i < len(desc) && desc[i] == '[' {
		depth++
		i++
	}
	if depth > maxArrayDimensions {
		return nil, 0, malformed("field descriptor", "too many array dimensions in %q", desc)
	}
	if i >= len(desc) {
		return nil, 0, malformed("field descriptor", "unexpected end of %q", desc)
	}

	var t FieldType
	switch desc[i] {
	case 'B':
		t = Byte
	case 'C':
		t = Char
	case 'D':
		t = Double
	case 'F':
		t = Float
	case 'I':
		t = Int
	case 'J':
		t = Long
	case 'S':
		t = Short
	case 'Z':
		t = Boolean
	case 'L':
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon <= 1 {
			return nil, 0, malformed("field descriptor", "bad class name in %q", desc)
		}
		t = Object(desc[i+1 : i+semicolon])
		i += semicolon
	default:
		return nil, 0, malformed("field descriptor", "unexpected %q in %q", desc[i], desc)
	}
	i++

	if depth > 0 {
		t = ArrayOfDepth(t, depth)
	}
	return t, i - start, nil
}

func typeDescriptor(t FieldType) string {
	if t == nil {
		return ""
	}
	return t.Descriptor()
}

// debugFieldType renders t as a variant name with its payload, e.g. Int,
// Object("java/lang/String") or Array(Array(Long)).
func debugFieldType(t FieldType) string {
	switch t := t.(type) {
	case BaseType:
		if kw := t.String(); kw != "" {
			return strings.ToUpper(kw[:1]) + kw[1:]
		}
	case ObjectType:
		return "Object(" + strconv.Quote(t.Class) + ")"
	case ArrayType:
		return "Array(" + debugFieldType(t.Elem) + ")"
	}
	return "<nil>"
}
