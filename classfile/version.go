package classfile

import "fmt"

// ClassVersion is the minor_version and major_version pair of a class file.
type ClassVersion struct {
	Minor uint16
	Major uint16
}

func (v ClassVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is major.minor or newer.
func (v ClassVersion) AtLeast(major, minor uint16) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// JavaRelease names the Java SE release that introduced v.Major, e.g. "1.4"
// for 48 and "17" for 61. Unknown majors yield "".
func (v ClassVersion) JavaRelease() string {
	switch {
	case v.Major < 45:
		return ""
	case v.Major == 45:
		if v.Minor < 3 {
			return "1.0"
		}
		return "1.1"
	case v.Major < 49:
		return fmt.Sprintf("1.%d", v.Major-44)
	default:
		return fmt.Sprintf("%d", v.Major-44)
	}
}

// HasPreviewFeatures reports the minor_version 0xFFFF marker used by class
// files compiled with --enable-preview (major 56 and later).
func (v ClassVersion) HasPreviewFeatures() bool {
	return v.Major >= 56 && v.Minor == 0xFFFF
}
