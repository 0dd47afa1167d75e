package classfile

import (
	"fmt"
	"strings"
)

// AccessFlags is the u2 access_flags item of a class, field or method.
// Bits without a name are kept as-is and never rendered.
type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSynchronized AccessFlags = 0x0020
	AccVolatile     AccessFlags = 0x0040
	AccTransient    AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccEnum         AccessFlags = 0x4000
)

// Class and method level meanings sharing bits with the member flags above.
const (
	AccSuper      AccessFlags = 0x0020
	AccBridge     AccessFlags = 0x0040
	AccVarargs    AccessFlags = 0x0080
	AccInterface  AccessFlags = 0x0200
	AccAnnotation AccessFlags = 0x2000
	AccModule     AccessFlags = 0x8000
)

type accessKeyword struct {
	flag AccessFlags
	word string
}

var accessKeywords = []accessKeyword{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccSynchronized, "synchronized"},
	{AccVolatile, "volatile"},
	{AccTransient, "transient"},
	{AccNative, "native"},
	{AccAbstract, "abstract"},
	{AccStrict, "fp-strict"},
	{AccSynthetic, "synthetic"},
	{AccEnum, "enum"},
}

// classKeywords is the table for ClassFile.access_flags. ACC_SUPER is not
// rendered.
var classKeywords = []accessKeyword{
	{AccPublic, "public"},
	{AccFinal, "final"},
	{AccInterface, "interface"},
	{AccAbstract, "abstract"},
	{AccSynthetic, "synthetic"},
	{AccAnnotation, "annotation"},
	{AccEnum, "enum"},
	{AccModule, "module"},
}

var methodKeywords = []accessKeyword{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccSynchronized, "synchronized"},
	{AccBridge, "bridge"},
	{AccVarargs, "varargs"},
	{AccNative, "native"},
	{AccAbstract, "abstract"},
	{AccStrict, "fp-strict"},
	{AccSynthetic, "synthetic"},
}

func (f AccessFlags) IsPublic() bool       { return f&AccPublic != 0 }
func (f AccessFlags) IsPrivate() bool      { return f&AccPrivate != 0 }
func (f AccessFlags) IsProtected() bool    { return f&AccProtected != 0 }
func (f AccessFlags) IsStatic() bool       { return f&AccStatic != 0 }
func (f AccessFlags) IsFinal() bool        { return f&AccFinal != 0 }
func (f AccessFlags) IsSuper() bool        { return f&AccSuper != 0 }
func (f AccessFlags) IsSynchronized() bool { return f&AccSynchronized != 0 }
func (f AccessFlags) IsVolatile() bool     { return f&AccVolatile != 0 }
func (f AccessFlags) IsBridge() bool       { return f&AccBridge != 0 }
func (f AccessFlags) IsTransient() bool    { return f&AccTransient != 0 }
func (f AccessFlags) IsVarargs() bool      { return f&AccVarargs != 0 }
func (f AccessFlags) IsNative() bool       { return f&AccNative != 0 }
func (f AccessFlags) IsInterface() bool    { return f&AccInterface != 0 }
func (f AccessFlags) IsAbstract() bool     { return f&AccAbstract != 0 }
func (f AccessFlags) IsStrict() bool       { return f&AccStrict != 0 }
func (f AccessFlags) IsSynthetic() bool    { return f&AccSynthetic != 0 }
func (f AccessFlags) IsAnnotation() bool   { return f&AccAnnotation != 0 }
func (f AccessFlags) IsEnum() bool         { return f&AccEnum != 0 }
func (f AccessFlags) IsModule() bool       { return f&AccModule != 0 }

// Or returns the union of both flag sets.
func (f AccessFlags) Or(other AccessFlags) AccessFlags { return f | other }

// And returns the intersection of both flag sets.
func (f AccessFlags) And(other AccessFlags) AccessFlags { return f & other }

// Has reports whether every bit of mask is set.
func (f AccessFlags) Has(mask AccessFlags) bool { return f&mask == mask }

// Any reports whether at least one bit of mask is set.
func (f AccessFlags) Any(mask AccessFlags) bool { return f&mask != 0 }

// String renders the modifier keywords in bit order, each followed by a
// space, e.g. "public static final ".
func (f AccessFlags) String() string { return f.render(accessKeywords) }

// ClassString renders f as the access flags of a class, where 0x0020 is
// ACC_SUPER and 0x0200 ACC_INTERFACE.
func (f AccessFlags) ClassString() string { return f.render(classKeywords) }

// MethodString renders f as the access flags of a method, where 0x0040 is
// ACC_BRIDGE and 0x0080 ACC_VARARGS.
func (f AccessFlags) MethodString() string { return f.render(methodKeywords) }

func (f AccessFlags) render(table []accessKeyword) string {
	var sb strings.Builder
	for _, kw := range table {
		if f&kw.flag != 0 {
			sb.WriteString(kw.word)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func (f AccessFlags) GoString() string {
	return "AccessFlags(" + f.String() + ")"
}

// ParseAccessFlags is the inverse of String: it accepts the rendered
// keywords in any order.
func ParseAccessFlags(words ...string) (AccessFlags, error) {
	var flags AccessFlags
next:
	for _, w := range words {
		if w == "" {
			continue
		}
		for _, kw := range accessKeywords {
			if kw.word == w {
				flags |= kw.flag
				continue next
			}
		}
		if w == "strictfp" {
			flags |= AccStrict
			continue
		}
		return 0, fmt.Errorf("unknown access modifier %q", w)
	}
	return flags, nil
}
