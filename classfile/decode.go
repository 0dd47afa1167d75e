package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tliron/commonlog"
)

const Magic = 0xCAFEBABE

var log = commonlog.GetLogger("jclass.classfile")

// Class is the declaration level content of a class file: everything but
// attribute bodies and bytecode.
type Class struct {
	Version    ClassVersion
	Pool       *Pool
	Access     AccessFlags
	Name       string
	SuperClass string
	Interfaces []string
	Fields     []Field
	Methods    []Method
}

func (c *Class) IsInterface() bool { return c.Access.IsInterface() && !c.Access.IsAnnotation() }

func (c *Class) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Method finds a method by name and, unless descriptor is empty, by its JVM
// descriptor text.
func (c *Class) Method(name, descriptor string) (Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name && (descriptor == "" || m.Type.Descriptor() == descriptor) {
			return m, true
		}
	}
	return Method{}, false
}

type reader struct {
	r      io.Reader
	offset int64
	err    error
}

func (r *reader) read(buf []byte) {
	if r.err != nil {
		return
	}
	var n int
	n, r.err = io.ReadFull(r.r, buf)
	r.offset += int64(n)
}

func (r *reader) readU1() uint8 {
	var buf [1]byte
	r.read(buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	var buf [2]byte
	r.read(buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	var buf [4]byte
	r.read(buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	buf := make([]byte, n)
	r.read(buf)
	return buf
}

func (r *reader) skip(n int64) {
	if r.err != nil {
		return
	}
	var copied int64
	copied, r.err = io.CopyN(io.Discard, r.r, n)
	r.offset += copied
}

// check converts a read failure into a MalformedError naming what was being
// read.
func (r *reader) check(what string) error {
	if r.err == nil {
		return nil
	}
	if errors.Is(r.err, io.EOF) || errors.Is(r.err, io.ErrUnexpectedEOF) {
		return &MalformedError{What: what, Err: fmt.Errorf("truncated at offset %d: %w", r.offset, io.ErrUnexpectedEOF)}
	}
	return fmt.Errorf("failed to read %s: %w", what, r.err)
}

func DecodeFile(path string) (*Class, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a class file up to and including its method table. Attribute
// bodies are skipped.
func Decode(rd io.Reader) (*Class, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if err := r.check("magic"); err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, malformed("magic", "0x%X (expected 0xCAFEBABE)", magic)
	}

	c := &Class{}
	c.Version.Minor = r.readU2()
	c.Version.Major = r.readU2()
	if err := r.check("version"); err != nil {
		return nil, err
	}

	raw, err := readRawPool(r)
	if err != nil {
		return nil, err
	}
	c.Pool, err = raw.resolve()
	if err != nil {
		return nil, err
	}
	log.Debugf("class file %s: %d constant pool slots", c.Version, c.Pool.Len())

	c.Access = AccessFlags(r.readU2())
	thisClass := r.readU2()
	superClass := r.readU2()
	interfacesCount := r.readU2()
	if err := r.check("class info"); err != nil {
		return nil, err
	}

	if c.Name, err = c.Pool.ClassName(thisClass); err != nil {
		return nil, fmt.Errorf("this_class: %w", err)
	}
	if superClass != 0 {
		if c.SuperClass, err = c.Pool.ClassName(superClass); err != nil {
			return nil, fmt.Errorf("super_class: %w", err)
		}
	}

	c.Interfaces = make([]string, interfacesCount)
	for i := range c.Interfaces {
		idx := r.readU2()
		if err := r.check("interfaces"); err != nil {
			return nil, err
		}
		if c.Interfaces[i], err = c.Pool.ClassName(idx); err != nil {
			return nil, fmt.Errorf("interface %d: %w", i, err)
		}
	}

	fieldsCount := r.readU2()
	if err := r.check("fields count"); err != nil {
		return nil, err
	}
	c.Fields = make([]Field, fieldsCount)
	for i := range c.Fields {
		access, name, desc, err := readMember(r, c.Pool)
		if err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
		t, err := ParseFieldDescriptor(desc)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		c.Fields[i] = Field{Access: access, Class: c.Name, Name: name, Type: t}
	}

	methodsCount := r.readU2()
	if err := r.check("methods count"); err != nil {
		return nil, err
	}
	c.Methods = make([]Method, methodsCount)
	for i := range c.Methods {
		access, name, desc, err := readMember(r, c.Pool)
		if err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
		md, err := ParseMethodDescriptor(desc)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		c.Methods[i] = Method{Access: access, Class: c.Name, Name: name, Type: md}
	}

	if err := skipAttributes(r); err != nil {
		return nil, fmt.Errorf("class attributes: %w", err)
	}

	log.Debugf("decoded %s: %d fields, %d methods", c.Name, len(c.Fields), len(c.Methods))
	return c, nil
}

func readMember(r *reader, pool *Pool) (AccessFlags, string, string, error) {
	access := AccessFlags(r.readU2())
	nameIndex := r.readU2()
	descIndex := r.readU2()
	if err := r.check("member"); err != nil {
		return 0, "", "", err
	}
	name, err := pool.Utf8(nameIndex)
	if err != nil {
		return 0, "", "", fmt.Errorf("name: %w", err)
	}
	desc, err := pool.Utf8(descIndex)
	if err != nil {
		return 0, "", "", fmt.Errorf("descriptor: %w", err)
	}
	if err := skipAttributes(r); err != nil {
		return 0, "", "", err
	}
	return access, Intern(name), desc, nil
}

func skipAttributes(r *reader) error {
	count := r.readU2()
	for i := uint16(0); i < count; i++ {
		r.readU2()
		length := r.readU4()
		r.skip(int64(length))
	}
	return r.check("attributes")
}

// rawEntry is a constant pool entry before index resolution. a and b hold
// the u2 operands in class file order; hi and lo the u4 operands.
type rawEntry struct {
	tag    ConstantTag
	kind   ReferenceKind
	a, b   uint16
	hi, lo uint32
	text   string
}

type rawPool []rawEntry

func readRawPool(r *reader) (rawPool, error) {
	count := r.readU2()
	if err := r.check("constant pool count"); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, malformed("constant pool", "count must be at least 1")
	}

	pool := make(rawPool, count-1)
	for i := 0; i < len(pool); i++ {
		e, err := readRawEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i+1, err)
		}
		pool[i] = e
		if e.tag == ConstantLong || e.tag == ConstantDouble {
			if i+1 >= len(pool) {
				return nil, malformed("constant pool", "entry %d: wide constant in last slot", i+1)
			}
			i++
			pool[i] = rawEntry{tag: ConstantPlaceholder}
		}
	}
	return pool, nil
}

func readRawEntry(r *reader) (rawEntry, error) {
	e := rawEntry{tag: ConstantTag(r.readU1())}
	if err := r.check("constant tag"); err != nil {
		return e, err
	}

	switch e.tag {
	case ConstantUtf8:
		length := r.readU2()
		data := r.readBytes(int(length))
		if err := r.check("utf8 constant"); err != nil {
			return e, err
		}
		text, err := decodeModifiedUtf8(data)
		if err != nil {
			return e, err
		}
		e.text = text
	case ConstantInteger, ConstantFloat:
		e.lo = r.readU4()
	case ConstantLong, ConstantDouble:
		e.hi = r.readU4()
		e.lo = r.readU4()
	case ConstantClass, ConstantString, ConstantMethodType, ConstantModule, ConstantPackage:
		e.a = r.readU2()
	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref,
		ConstantNameAndType, ConstantDynamic, ConstantInvokeDynamic:
		e.a = r.readU2()
		e.b = r.readU2()
	case ConstantMethodHandle:
		e.kind = ReferenceKind(r.readU1())
		e.a = r.readU2()
	default:
		return e, malformed("constant pool", "unknown tag %d", e.tag)
	}
	return e, r.check("constant")
}

func (p rawPool) entry(i uint16, tags ...ConstantTag) (rawEntry, error) {
	if i == 0 || int(i) > len(p) {
		return rawEntry{}, malformed("constant pool", "index %d out of range 1..%d", i, len(p))
	}
	e := p[i-1]
	for _, t := range tags {
		if e.tag == t {
			return e, nil
		}
	}
	return rawEntry{}, malformed("constant pool", "index %d: unexpected tag %d", i, e.tag)
}

func (p rawPool) utf8(i uint16) (string, error) {
	e, err := p.entry(i, ConstantUtf8)
	return e.text, err
}

func (p rawPool) className(i uint16) (string, error) {
	e, err := p.entry(i, ConstantClass)
	if err != nil {
		return "", err
	}
	name, err := p.utf8(e.a)
	return Intern(name), err
}

func (p rawPool) nameAndType(i uint16) (string, string, error) {
	e, err := p.entry(i, ConstantNameAndType)
	if err != nil {
		return "", "", err
	}
	name, err := p.utf8(e.a)
	if err != nil {
		return "", "", err
	}
	desc, err := p.utf8(e.b)
	return Intern(name), desc, err
}

// member resolves the class and name-and-type operands shared by
// Fieldref, Methodref and InterfaceMethodref.
func (p rawPool) member(e rawEntry) (class, name, desc string, err error) {
	if class, err = p.className(e.a); err != nil {
		return
	}
	name, desc, err = p.nameAndType(e.b)
	return
}

func (p rawPool) resolve() (*Pool, error) {
	pool := NewPool()
	for i := 0; i < len(p); i++ {
		c, err := p.resolveEntry(p[i])
		if err != nil {
			return nil, fmt.Errorf("constant pool entry %d: %w", i+1, err)
		}
		if _, err := pool.push(c); err != nil {
			return nil, err
		}
		if IsWide(c) {
			i++
		}
	}
	return pool, nil
}

func (p rawPool) resolveEntry(e rawEntry) (Constant, error) {
	switch e.tag {
	case ConstantPlaceholder:
		return nil, malformed("constant pool", "unusable slot outside a wide constant")
	case ConstantUtf8:
		return StringConstant(e.text), nil
	case ConstantInteger:
		return IntConstant(int32(e.lo)), nil
	case ConstantFloat:
		return FloatConstant(math.Float32frombits(e.lo)), nil
	case ConstantLong:
		return LongConstant(int64(uint64(e.hi)<<32 | uint64(e.lo))), nil
	case ConstantDouble:
		return DoubleConstant(math.Float64frombits(uint64(e.hi)<<32 | uint64(e.lo))), nil
	case ConstantClass:
		name, err := p.utf8(e.a)
		return ClassRef(Intern(name)), err
	case ConstantString:
		text, err := p.utf8(e.a)
		return StringRef(text), err
	case ConstantModule:
		name, err := p.utf8(e.a)
		return ModuleRef(name), err
	case ConstantPackage:
		name, err := p.utf8(e.a)
		return PackageRef(name), err
	case ConstantNameAndType:
		name, err := p.utf8(e.a)
		if err != nil {
			return nil, err
		}
		desc, err := p.utf8(e.b)
		return NameTypeDescriptor{Name: Intern(name), Descriptor: desc}, err
	case ConstantMethodType:
		desc, err := p.utf8(e.a)
		if err != nil {
			return nil, err
		}
		md, err := ParseMethodDescriptor(desc)
		return MethodTypeConstant{Type: md}, err
	case ConstantFieldref:
		class, name, desc, err := p.member(e)
		if err != nil {
			return nil, err
		}
		t, err := ParseFieldDescriptor(desc)
		return FieldRef{Class: class, Name: name, Type: t}, err
	case ConstantMethodref, ConstantInterfaceMethodref:
		class, name, desc, err := p.member(e)
		if err != nil {
			return nil, err
		}
		md, err := ParseMethodDescriptor(desc)
		if err != nil {
			return nil, err
		}
		if e.tag == ConstantInterfaceMethodref {
			return InterfaceRef{Class: class, Name: name, Type: md}, nil
		}
		return MethodRef{Class: class, Name: name, Type: md}, nil
	case ConstantInvokeDynamic:
		name, desc, err := p.nameAndType(e.b)
		if err != nil {
			return nil, err
		}
		md, err := ParseMethodDescriptor(desc)
		return InvokeDynamic{BootstrapIndex: e.a, Name: name, Type: md}, err
	case ConstantDynamic:
		name, desc, err := p.nameAndType(e.b)
		if err != nil {
			return nil, err
		}
		t, err := ParseFieldDescriptor(desc)
		return DynamicConstant{BootstrapIndex: e.a, Name: name, Type: t}, err
	case ConstantMethodHandle:
		h, err := p.methodHandle(e)
		return MethodHandleConstant{Handle: h}, err
	}
	return nil, malformed("constant pool", "unknown tag %d", e.tag)
}

func (p rawPool) methodHandle(e rawEntry) (MethodHandle, error) {
	var tags []ConstantTag
	switch e.kind {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		tags = []ConstantTag{ConstantFieldref}
	case RefInvokeVirtual, RefNewInvokeSpecial:
		tags = []ConstantTag{ConstantMethodref}
	case RefInvokeStatic, RefInvokeSpecial:
		tags = []ConstantTag{ConstantMethodref, ConstantInterfaceMethodref}
	case RefInvokeInterface:
		tags = []ConstantTag{ConstantInterfaceMethodref}
	default:
		return nil, malformed("method handle", "invalid reference kind %d", uint8(e.kind))
	}

	ref, err := p.entry(e.a, tags...)
	if err != nil {
		return nil, fmt.Errorf("%s reference: %w", e.kind, err)
	}
	class, name, desc, err := p.member(ref)
	if err != nil {
		return nil, err
	}

	if e.kind.IsFieldAccess() {
		t, err := ParseFieldDescriptor(desc)
		if err != nil {
			return nil, err
		}
		return newFieldHandle(e.kind, class, name, t), nil
	}
	md, err := ParseMethodDescriptor(desc)
	if err != nil {
		return nil, err
	}
	return newInvokeHandle(e.kind, class, name, md), nil
}
