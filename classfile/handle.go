package classfile

import "fmt"

// ReferenceKind is the reference_kind item of a CONSTANT_MethodHandle.
type ReferenceKind uint8

const (
	RefGetField         ReferenceKind = 1
	RefGetStatic        ReferenceKind = 2
	RefPutField         ReferenceKind = 3
	RefPutStatic        ReferenceKind = 4
	RefInvokeVirtual    ReferenceKind = 5
	RefInvokeStatic     ReferenceKind = 6
	RefInvokeSpecial    ReferenceKind = 7
	RefNewInvokeSpecial ReferenceKind = 8
	RefInvokeInterface  ReferenceKind = 9
)

var referenceKindNames = [...]string{
	RefGetField:         "GetField",
	RefGetStatic:        "GetStatic",
	RefPutField:         "PutField",
	RefPutStatic:        "PutStatic",
	RefInvokeVirtual:    "InvokeVirtual",
	RefInvokeStatic:     "InvokeStatic",
	RefInvokeSpecial:    "InvokeSpecial",
	RefNewInvokeSpecial: "NewInvokeSpecial",
	RefInvokeInterface:  "InvokeInterface",
}

func (k ReferenceKind) String() string {
	if k.Valid() {
		return referenceKindNames[k]
	}
	return fmt.Sprintf("ReferenceKind(%d)", uint8(k))
}

func (k ReferenceKind) Valid() bool { return k >= RefGetField && k <= RefInvokeInterface }

// IsFieldAccess reports whether handles of this kind carry a field type.
func (k ReferenceKind) IsFieldAccess() bool { return k >= RefGetField && k <= RefPutStatic }

// MethodHandle is a symbolic reference resolved at a dynamic call site. The
// concrete type fixes the payload: FieldHandle carries a FieldType,
// InvokeHandle a MethodDescriptor.
type MethodHandle interface {
	Kind() ReferenceKind
	Owner() string
	Member() string
	Equal(MethodHandle) bool
	Hash() uint64
	String() string

	methodHandle()
}

// FieldHandle is a GetField, GetStatic, PutField or PutStatic handle.
type FieldHandle struct {
	kind  ReferenceKind
	Class string
	Name  string
	Type  FieldType
}

func newFieldHandle(kind ReferenceKind, class, name string, t FieldType) FieldHandle {
	return FieldHandle{kind: kind, Class: Intern(class), Name: Intern(name), Type: t}
}

func GetField(class, name string, t FieldType) FieldHandle {
	return newFieldHandle(RefGetField, class, name, t)
}

func GetStatic(class, name string, t FieldType) FieldHandle {
	return newFieldHandle(RefGetStatic, class, name, t)
}

func PutField(class, name string, t FieldType) FieldHandle {
	return newFieldHandle(RefPutField, class, name, t)
}

func PutStatic(class, name string, t FieldType) FieldHandle {
	return newFieldHandle(RefPutStatic, class, name, t)
}

func (h FieldHandle) Kind() ReferenceKind { return h.kind }
func (h FieldHandle) Owner() string       { return h.Class }
func (h FieldHandle) Member() string      { return h.Name }
func (FieldHandle) methodHandle()         {}

func (h FieldHandle) Equal(other MethodHandle) bool {
	o, ok := other.(FieldHandle)
	return ok && h == o
}

func (h FieldHandle) Hash() uint64 {
	return newHasher(ConstantMethodHandle).
		u64(uint64(h.kind)).
		str(h.Class).
		str(h.Name).
		str(typeDescriptor(h.Type)).
		sum()
}

// String renders the handle as its kind with named fields, e.g.
// GetStatic { class: "java/lang/System", name: "out", field_type: Object("java/io/PrintStream") }.
func (h FieldHandle) String() string {
	return fmt.Sprintf("%s { class: %q, name: %q, field_type: %s }", h.kind, h.Class, h.Name, debugFieldType(h.Type))
}

// InvokeHandle is an InvokeVirtual, InvokeStatic, InvokeSpecial,
// NewInvokeSpecial or InvokeInterface handle.
type InvokeHandle struct {
	kind  ReferenceKind
	Class string
	Name  string
	Type  MethodDescriptor
}

func newInvokeHandle(kind ReferenceKind, class, name string, md MethodDescriptor) InvokeHandle {
	return InvokeHandle{kind: kind, Class: Intern(class), Name: Intern(name), Type: md}
}

func InvokeVirtual(class, name string, md MethodDescriptor) InvokeHandle {
	return newInvokeHandle(RefInvokeVirtual, class, name, md)
}

func InvokeStatic(class, name string, md MethodDescriptor) InvokeHandle {
	return newInvokeHandle(RefInvokeStatic, class, name, md)
}

func InvokeSpecial(class, name string, md MethodDescriptor) InvokeHandle {
	return newInvokeHandle(RefInvokeSpecial, class, name, md)
}

// NewInvokeSpecial refers to a constructor; name is normally "<init>".
func NewInvokeSpecial(class, name string, md MethodDescriptor) InvokeHandle {
	return newInvokeHandle(RefNewInvokeSpecial, class, name, md)
}

func InvokeInterface(class, name string, md MethodDescriptor) InvokeHandle {
	return newInvokeHandle(RefInvokeInterface, class, name, md)
}

func (h InvokeHandle) Kind() ReferenceKind { return h.kind }
func (h InvokeHandle) Owner() string       { return h.Class }
func (h InvokeHandle) Member() string      { return h.Name }
func (InvokeHandle) methodHandle()         {}

func (h InvokeHandle) Equal(other MethodHandle) bool {
	o, ok := other.(InvokeHandle)
	return ok && h.kind == o.kind && h.Class == o.Class && h.Name == o.Name && h.Type.Equal(o.Type)
}

func (h InvokeHandle) Hash() uint64 {
	return newHasher(ConstantMethodHandle).
		u64(uint64(h.kind)).
		str(h.Class).
		str(h.Name).
		str(h.Type.Descriptor()).
		sum()
}

func (h InvokeHandle) String() string {
	return fmt.Sprintf("%s { class: %q, name: %q, method_type: %s }", h.kind, h.Class, h.Name, h.Type)
}

var (
	_ MethodHandle = FieldHandle{}
	_ MethodHandle = InvokeHandle{}
)
