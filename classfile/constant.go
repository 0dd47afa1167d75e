package classfile

import (
	"fmt"
	"math"
	"strconv"
)

// ConstantTag is the tag byte of a constant pool entry.
type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantDynamic            ConstantTag = 17
	ConstantInvokeDynamic      ConstantTag = 18
	ConstantModule             ConstantTag = 19
	ConstantPackage            ConstantTag = 20

	// ConstantPlaceholder marks the unusable slot after a Long or Double.
	// It never appears in a class file.
	ConstantPlaceholder ConstantTag = 0
)

// Constant is a resolved constant pool entry.
type Constant interface {
	Tag() ConstantTag
	// Words returns the 32-bit words of a numeric literal, low word first
	// for Long and Double. Every other constant yields a single zero word.
	Words() []uint32
	// Slots is the number of pool slots the entry occupies.
	Slots() int
	Equal(Constant) bool
	Hash() uint64
	String() string

	constant()
}

// IsWide reports whether c is followed by a Placeholder slot in a pool.
func IsWide(c Constant) bool { return c.Slots() == 2 }

// StringConstant is the text of a CONSTANT_Utf8 entry.
type StringConstant string

func (c StringConstant) Tag() ConstantTag { return ConstantUtf8 }
func (c StringConstant) Words() []uint32  { return []uint32{0} }
func (c StringConstant) Slots() int       { return 1 }
func (c StringConstant) String() string   { return strconv.Quote(string(c)) }
func (StringConstant) constant()          {}

func (c StringConstant) Equal(other Constant) bool {
	o, ok := other.(StringConstant)
	return ok && c == o
}

func (c StringConstant) Hash() uint64 { return newHasher(c.Tag()).str(string(c)).sum() }

type IntConstant int32

func (c IntConstant) Tag() ConstantTag { return ConstantInteger }
func (c IntConstant) Words() []uint32  { return []uint32{uint32(c)} }
func (c IntConstant) Slots() int       { return 1 }
func (c IntConstant) String() string   { return strconv.FormatInt(int64(c), 10) }
func (IntConstant) constant()          {}

func (c IntConstant) Equal(other Constant) bool {
	o, ok := other.(IntConstant)
	return ok && c == o
}

func (c IntConstant) Hash() uint64 { return newHasher(c.Tag()).u64(uint64(c)).sum() }

// FloatConstant compares by bit pattern, so NaN equals itself and 0.0 and
// -0.0 are distinct entries.
type FloatConstant float32

func (c FloatConstant) Tag() ConstantTag { return ConstantFloat }
func (c FloatConstant) Words() []uint32  { return []uint32{math.Float32bits(float32(c))} }
func (c FloatConstant) Slots() int       { return 1 }
func (c FloatConstant) String() string   { return formatFloat(float64(c), 32) }
func (FloatConstant) constant()          {}

func (c FloatConstant) Equal(other Constant) bool {
	o, ok := other.(FloatConstant)
	return ok && math.Float32bits(float32(c)) == math.Float32bits(float32(o))
}

func (c FloatConstant) Hash() uint64 {
	return newHasher(c.Tag()).u64(uint64(math.Float32bits(float32(c)))).sum()
}

type LongConstant int64

func (c LongConstant) Tag() ConstantTag { return ConstantLong }
func (c LongConstant) Words() []uint32  { return splitWords(uint64(c)) }
func (c LongConstant) Slots() int       { return 2 }
func (c LongConstant) String() string   { return strconv.FormatInt(int64(c), 10) }
func (LongConstant) constant()          {}

func (c LongConstant) Equal(other Constant) bool {
	o, ok := other.(LongConstant)
	return ok && c == o
}

func (c LongConstant) Hash() uint64 { return newHasher(c.Tag()).u64(uint64(c)).sum() }

// DoubleConstant compares by bit pattern, like FloatConstant.
type DoubleConstant float64

func (c DoubleConstant) Tag() ConstantTag { return ConstantDouble }
func (c DoubleConstant) Words() []uint32  { return splitWords(math.Float64bits(float64(c))) }
func (c DoubleConstant) Slots() int       { return 2 }
func (c DoubleConstant) String() string   { return formatFloat(float64(c), 64) }
func (DoubleConstant) constant()          {}

func (c DoubleConstant) Equal(other Constant) bool {
	o, ok := other.(DoubleConstant)
	return ok && math.Float64bits(float64(c)) == math.Float64bits(float64(o))
}

func (c DoubleConstant) Hash() uint64 {
	return newHasher(c.Tag()).u64(math.Float64bits(float64(c))).sum()
}

// ClassRef names a class or interface by its internal binary name.
type ClassRef string

func (c ClassRef) Tag() ConstantTag { return ConstantClass }
func (c ClassRef) Words() []uint32  { return []uint32{0} }
func (c ClassRef) Slots() int       { return 1 }
func (c ClassRef) String() string   { return "class " + string(c) }
func (ClassRef) constant()          {}

func (c ClassRef) Equal(other Constant) bool {
	o, ok := other.(ClassRef)
	return ok && c == o
}

func (c ClassRef) Hash() uint64 { return newHasher(c.Tag()).str(string(c)).sum() }

// StringRef is a java.lang.String literal.
type StringRef string

func (c StringRef) Tag() ConstantTag { return ConstantString }
func (c StringRef) Words() []uint32  { return []uint32{0} }
func (c StringRef) Slots() int       { return 1 }
func (c StringRef) String() string   { return "&" + strconv.Quote(string(c)) }
func (StringRef) constant()          {}

func (c StringRef) Equal(other Constant) bool {
	o, ok := other.(StringRef)
	return ok && c == o
}

func (c StringRef) Hash() uint64 { return newHasher(c.Tag()).str(string(c)).sum() }

type FieldRef struct {
	Class string
	Name  string
	Type  FieldType
}

func (c FieldRef) Tag() ConstantTag { return ConstantFieldref }
func (c FieldRef) Words() []uint32  { return []uint32{0} }
func (c FieldRef) Slots() int       { return 1 }
func (FieldRef) constant()          {}

func (c FieldRef) String() string {
	return fmt.Sprintf("Field(%s %s.%s)", c.Type, c.Class, c.Name)
}

func (c FieldRef) Equal(other Constant) bool {
	o, ok := other.(FieldRef)
	return ok && c == o
}

func (c FieldRef) Hash() uint64 {
	return newHasher(c.Tag()).str(c.Class).str(c.Name).str(typeDescriptor(c.Type)).sum()
}

type MethodRef struct {
	Class string
	Name  string
	Type  MethodDescriptor
}

func (c MethodRef) Tag() ConstantTag { return ConstantMethodref }
func (c MethodRef) Words() []uint32  { return []uint32{0} }
func (c MethodRef) Slots() int       { return 1 }
func (MethodRef) constant()          {}

func (c MethodRef) String() string {
	return fmt.Sprintf("Method(%s %s.%s)", c.Type, c.Class, c.Name)
}

func (c MethodRef) Equal(other Constant) bool {
	o, ok := other.(MethodRef)
	return ok && c.Class == o.Class && c.Name == o.Name && c.Type.Equal(o.Type)
}

func (c MethodRef) Hash() uint64 {
	return newHasher(c.Tag()).str(c.Class).str(c.Name).str(c.Type.Descriptor()).sum()
}

type InterfaceRef struct {
	Class string
	Name  string
	Type  MethodDescriptor
}

func (c InterfaceRef) Tag() ConstantTag { return ConstantInterfaceMethodref }
func (c InterfaceRef) Words() []uint32  { return []uint32{0} }
func (c InterfaceRef) Slots() int       { return 1 }
func (InterfaceRef) constant()          {}

func (c InterfaceRef) String() string {
	return fmt.Sprintf("InterfaceMethod(%s %s.%s)", c.Type, c.Class, c.Name)
}

func (c InterfaceRef) Equal(other Constant) bool {
	o, ok := other.(InterfaceRef)
	return ok && c.Class == o.Class && c.Name == o.Name && c.Type.Equal(o.Type)
}

func (c InterfaceRef) Hash() uint64 {
	return newHasher(c.Tag()).str(c.Class).str(c.Name).str(c.Type.Descriptor()).sum()
}

// NameTypeDescriptor keeps its descriptor as raw text: whether it is a field
// or a method descriptor depends on the entry referring to it.
type NameTypeDescriptor struct {
	Name       string
	Descriptor string
}

func (c NameTypeDescriptor) Tag() ConstantTag { return ConstantNameAndType }
func (c NameTypeDescriptor) Words() []uint32  { return []uint32{0} }
func (c NameTypeDescriptor) Slots() int       { return 1 }
func (NameTypeDescriptor) constant()          {}

func (c NameTypeDescriptor) String() string {
	return fmt.Sprintf("NameTypeDescriptor(%s %s)", c.Descriptor, c.Name)
}

func (c NameTypeDescriptor) Equal(other Constant) bool {
	o, ok := other.(NameTypeDescriptor)
	return ok && c == o
}

func (c NameTypeDescriptor) Hash() uint64 {
	return newHasher(c.Tag()).str(c.Name).str(c.Descriptor).sum()
}

type MethodHandleConstant struct {
	Handle MethodHandle
}

func (c MethodHandleConstant) Tag() ConstantTag { return ConstantMethodHandle }
func (c MethodHandleConstant) Words() []uint32  { return []uint32{0} }
func (c MethodHandleConstant) Slots() int       { return 1 }
func (c MethodHandleConstant) String() string   { return fmt.Sprintf("MethodHandle(%s)", c.Handle) }
func (MethodHandleConstant) constant()          {}

func (c MethodHandleConstant) Equal(other Constant) bool {
	o, ok := other.(MethodHandleConstant)
	if !ok {
		return false
	}
	if c.Handle == nil || o.Handle == nil {
		return c.Handle == nil && o.Handle == nil
	}
	return c.Handle.Equal(o.Handle)
}

func (c MethodHandleConstant) Hash() uint64 {
	if c.Handle == nil {
		return newHasher(c.Tag()).sum()
	}
	return c.Handle.Hash()
}

type MethodTypeConstant struct {
	Type MethodDescriptor
}

func (c MethodTypeConstant) Tag() ConstantTag { return ConstantMethodType }
func (c MethodTypeConstant) Words() []uint32  { return []uint32{0} }
func (c MethodTypeConstant) Slots() int       { return 1 }
func (c MethodTypeConstant) String() string   { return fmt.Sprintf("MethodType(%s)", c.Type) }
func (MethodTypeConstant) constant()          {}

func (c MethodTypeConstant) Equal(other Constant) bool {
	o, ok := other.(MethodTypeConstant)
	return ok && c.Type.Equal(o.Type)
}

func (c MethodTypeConstant) Hash() uint64 { return c.Type.Hash() }

// InvokeDynamic is a call site; BootstrapIndex points into the
// BootstrapMethods attribute.
type InvokeDynamic struct {
	BootstrapIndex uint16
	Name           string
	Type           MethodDescriptor
}

func (c InvokeDynamic) Tag() ConstantTag { return ConstantInvokeDynamic }
func (c InvokeDynamic) Words() []uint32  { return []uint32{0} }
func (c InvokeDynamic) Slots() int       { return 1 }
func (InvokeDynamic) constant()          {}

func (c InvokeDynamic) String() string {
	return fmt.Sprintf("InvokeDynamic(#%d %s %s)", c.BootstrapIndex, c.Type, c.Name)
}

func (c InvokeDynamic) Equal(other Constant) bool {
	o, ok := other.(InvokeDynamic)
	return ok && c.BootstrapIndex == o.BootstrapIndex && c.Name == o.Name && c.Type.Equal(o.Type)
}

func (c InvokeDynamic) Hash() uint64 {
	return newHasher(c.Tag()).u64(uint64(c.BootstrapIndex)).str(c.Name).str(c.Type.Descriptor()).sum()
}

// DynamicConstant is a dynamically computed constant (CONSTANT_Dynamic).
type DynamicConstant struct {
	BootstrapIndex uint16
	Name           string
	Type           FieldType
}

func (c DynamicConstant) Tag() ConstantTag { return ConstantDynamic }
func (c DynamicConstant) Words() []uint32  { return []uint32{0} }
func (c DynamicConstant) Slots() int       { return 1 }
func (DynamicConstant) constant()          {}

func (c DynamicConstant) String() string {
	return fmt.Sprintf("Dynamic(#%d %s %s)", c.BootstrapIndex, c.Type, c.Name)
}

func (c DynamicConstant) Equal(other Constant) bool {
	o, ok := other.(DynamicConstant)
	return ok && c == o
}

func (c DynamicConstant) Hash() uint64 {
	return newHasher(c.Tag()).u64(uint64(c.BootstrapIndex)).str(c.Name).str(typeDescriptor(c.Type)).sum()
}

type ModuleRef string

func (c ModuleRef) Tag() ConstantTag { return ConstantModule }
func (c ModuleRef) Words() []uint32  { return []uint32{0} }
func (c ModuleRef) Slots() int       { return 1 }
func (c ModuleRef) String() string   { return "Module(" + string(c) + ")" }
func (ModuleRef) constant()          {}

func (c ModuleRef) Equal(other Constant) bool {
	o, ok := other.(ModuleRef)
	return ok && c == o
}

func (c ModuleRef) Hash() uint64 { return newHasher(c.Tag()).str(string(c)).sum() }

type PackageRef string

func (c PackageRef) Tag() ConstantTag { return ConstantPackage }
func (c PackageRef) Words() []uint32  { return []uint32{0} }
func (c PackageRef) Slots() int       { return 1 }
func (c PackageRef) String() string   { return "Package(" + string(c) + ")" }
func (PackageRef) constant()          {}

func (c PackageRef) Equal(other Constant) bool {
	o, ok := other.(PackageRef)
	return ok && c == o
}

func (c PackageRef) Hash() uint64 { return newHasher(c.Tag()).str(string(c)).sum() }

// Placeholder fills the slot after a Long or Double.
type Placeholder struct{}

func (Placeholder) Tag() ConstantTag { return ConstantPlaceholder }
func (Placeholder) Words() []uint32  { return []uint32{0} }
func (Placeholder) Slots() int       { return 1 }
func (Placeholder) String() string   { return "Placeholder" }
func (Placeholder) constant()        {}

func (Placeholder) Equal(other Constant) bool {
	_, ok := other.(Placeholder)
	return ok
}

func (Placeholder) Hash() uint64 { return newHasher(ConstantPlaceholder).sum() }

func splitWords(bits uint64) []uint32 {
	return []uint32{uint32(bits), uint32(bits >> 32)}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

var (
	_ Constant = StringConstant("")
	_ Constant = IntConstant(0)
	_ Constant = FloatConstant(0)
	_ Constant = LongConstant(0)
	_ Constant = DoubleConstant(0)
	_ Constant = ClassRef("")
	_ Constant = StringRef("")
	_ Constant = FieldRef{}
	_ Constant = MethodRef{}
	_ Constant = InterfaceRef{}
	_ Constant = NameTypeDescriptor{}
	_ Constant = MethodHandleConstant{}
	_ Constant = MethodTypeConstant{}
	_ Constant = InvokeDynamic{}
	_ Constant = DynamicConstant{}
	_ Constant = ModuleRef("")
	_ Constant = PackageRef("")
	_ Constant = Placeholder{}
)
