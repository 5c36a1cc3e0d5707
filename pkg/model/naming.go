package model

import (
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// AccessorName is the getter name of property name: AccessorName("get", "age") is "getAge".
func AccessorName(prefix, name string) string {
	return prefix + Capitalize(name)
}
