package classfile

import "unique"

// Intern returns a canonical copy of s. Class and member names repeat across
// many constants; interning makes them share one allocation for the lifetime
// of the program. Safe for concurrent use.
func Intern(s string) string {
	if s == "" {
		return ""
	}
	return unique.Make(s).Value()
}
