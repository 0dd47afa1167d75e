package classfile

import (
	"fmt"
	"strconv"
	"strings"
)

// MethodDescriptor is the parameter and return types of a method. The
// parameter slot width is computed once on construction; the zero value is
// the descriptor of a void method without parameters.
type MethodDescriptor struct {
	parameters    []FieldType
	returnType    FieldType
	parameterSize int
}

// EmptyMethodDescriptor takes no parameters and returns void.
var EmptyMethodDescriptor = MethodDescriptor{}

// NewMethodDescriptor builds a descriptor. A nil ret means void; nil is
// not a valid parameter type and panics.
func NewMethodDescriptor(ret FieldType, params ...FieldType) MethodDescriptor {
	return newMethodDescriptor(ret, append([]FieldType(nil), params...))
}

// newMethodDescriptor takes ownership of params.
func newMethodDescriptor(ret FieldType, params []FieldType) MethodDescriptor {
	size := 0
	for i, p := range params {
		if p == nil {
			panic(fmt.Sprintf("classfile: nil type for method parameter %d", i))
		}
		size += p.Size()
	}
	if len(params) == 0 {
		params = nil
	}
	return MethodDescriptor{
		parameters:    params,
		returnType:    ret,
		parameterSize: size,
	}
}

// Parameters returns a copy of the parameter types in declaration order.
func (md MethodDescriptor) Parameters() []FieldType {
	return append([]FieldType(nil), md.parameters...)
}

func (md MethodDescriptor) NumParameters() int { return len(md.parameters) }

func (md MethodDescriptor) Parameter(i int) FieldType { return md.parameters[i] }

// ReturnType is nil for void methods.
func (md MethodDescriptor) ReturnType() FieldType { return md.returnType }

func (md MethodDescriptor) IsVoid() bool { return md.returnType == nil }

// ParameterSize is the number of local variable slots the parameters take.
func (md MethodDescriptor) ParameterSize() int { return md.parameterSize }

// InvocationSize adds the receiver slot for instance methods.
func (md MethodDescriptor) InvocationSize(static bool) int {
	if static {
		return md.parameterSize
	}
	return md.parameterSize + 1
}

// ReturnSize is the operand stack width of the result, 0 for void.
func (md MethodDescriptor) ReturnSize() int {
	if md.returnType == nil {
		return 0
	}
	return md.returnType.Size()
}

func (md MethodDescriptor) Equal(other MethodDescriptor) bool {
	if md.returnType != other.returnType || len(md.parameters) != len(other.parameters) {
		return false
	}
	for i, p := range md.parameters {
		if p != other.parameters[i] {
			return false
		}
	}
	return true
}

// Hash covers parameters and return type only.
func (md MethodDescriptor) Hash() uint64 {
	return newHasher(ConstantMethodType).str(md.Descriptor()).sum()
}

// String renders the diagnostic form "<return> <width>(<params>)", e.g.
// "int 3(long, int)".
func (md MethodDescriptor) String() string {
	var sb strings.Builder
	if md.returnType != nil {
		sb.WriteString(md.returnType.String())
	} else {
		sb.WriteString("void")
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(md.parameterSize))
	sb.WriteByte('(')
	for i, p := range md.parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Descriptor returns the JVM descriptor text, e.g. "(JI)I".
func (md MethodDescriptor) Descriptor() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range md.parameters {
		sb.WriteString(p.Descriptor())
	}
	sb.WriteByte(')')
	if md.returnType != nil {
		sb.WriteString(md.returnType.Descriptor())
	} else {
		sb.WriteByte('V')
	}
	return sb.String()
}

// ParseMethodDescriptor parses JVM descriptor text such as
// "(ILjava/lang/String;)V".
func ParseMethodDescriptor(desc string) (MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return MethodDescriptor{}, malformed("method descriptor", "missing '(' in %q", desc)
	}

	var params []FieldType
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, n, err := parseFieldType(desc, i)
		if err != nil {
			return MethodDescriptor{}, err
		}
		params = append(params, ft)
		i += n
	}
	if i >= len(desc) {
		return MethodDescriptor{}, malformed("method descriptor", "missing ')' in %q", desc)
	}
	i++

	if i >= len(desc) {
		return MethodDescriptor{}, malformed("method descriptor", "missing return type in %q", desc)
	}
	if desc[i:] == "V" {
		return newMethodDescriptor(nil, params), nil
	}
	ret, n, err := parseFieldType(desc, i)
	if err != nil {
		return MethodDescriptor{}, err
	}
	if i+n != len(desc) {
		return MethodDescriptor{}, malformed("method descriptor", "trailing characters in %q", desc)
	}
	return newMethodDescriptor(ret, params), nil
}

// DescriptorBuilder accumulates parameters for a MethodDescriptor.
type DescriptorBuilder struct {
	params []FieldType
	ret    FieldType
}

func NewDescriptorBuilder() *DescriptorBuilder {
	return &DescriptorBuilder{}
}

func (b *DescriptorBuilder) Param(t FieldType) *DescriptorBuilder {
	b.params = append(b.params, t)
	return b
}

func (b *DescriptorBuilder) Returns(t FieldType) *DescriptorBuilder {
	b.ret = t
	return b
}

// Build returns the descriptor; the builder can be reused afterwards.
func (b *DescriptorBuilder) Build() MethodDescriptor {
	return NewMethodDescriptor(b.ret, b.params...)
}
