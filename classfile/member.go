package classfile

import "fmt"

// Field is a field declaration of a class.
type Field struct {
	Access AccessFlags
	Class  string
	Name   string
	Type   FieldType
}

func (f Field) String() string {
	return fmt.Sprintf("%s%s %s.%s", f.Access, f.Type, f.Class, f.Name)
}

// Ref returns the constant a class referring to this field would use.
func (f Field) Ref() FieldRef {
	return FieldRef{Class: f.Class, Name: f.Name, Type: f.Type}
}

// Method is a method declaration of a class.
type Method struct {
	Access AccessFlags
	Class  string
	Name   string
	Type   MethodDescriptor
}

func (m Method) String() string {
	return fmt.Sprintf("%s%s %s.%s", m.Access.MethodString(), m.Type, m.Class, m.Name)
}

func (m Method) IsConstructor() bool { return m.Name == "<init>" }

func (m Method) IsStaticInitializer() bool { return m.Name == "<clinit>" }

// LocalsSize is the number of local variable slots taken by the receiver
// and the parameters on entry.
func (m Method) LocalsSize() int {
	return m.Type.InvocationSize(m.Access.IsStatic())
}

// Handle returns the method handle that invokes m. Constructors use
// NewInvokeSpecial, private methods InvokeSpecial.
func (m Method) Handle(isInterface bool) InvokeHandle {
	switch {
	case m.IsConstructor():
		return NewInvokeSpecial(m.Class, m.Name, m.Type)
	case m.Access.IsStatic():
		return InvokeStatic(m.Class, m.Name, m.Type)
	case m.Access.IsPrivate():
		return InvokeSpecial(m.Class, m.Name, m.Type)
	case isInterface:
		return InvokeInterface(m.Class, m.Name, m.Type)
	default:
		return InvokeVirtual(m.Class, m.Name, m.Type)
	}
}
