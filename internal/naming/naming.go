// Package naming holds the string transforms every emitter derives its symbol
// and file names from. All functions are pure and deterministic.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CapitalizeFirst uppercases the first character and leaves the rest unchanged.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ToCamelCase lowercases the first character and leaves the rest unchanged.
func ToCamelCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Pluralize applies the three naive rules: y -> ies, s -> ses, else +s.
// Irregular plurals are not handled.
func Pluralize(s string) string {
	switch {
	case strings.HasSuffix(s, "y"):
		return strings.TrimSuffix(s, "y") + "ies"
	case strings.HasSuffix(s, "s"):
		return s + "es"
	default:
		return s + "s"
	}
}

// Singularize undoes Pluralize. Words ending in "ss" are left alone.
func Singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies") && len(s) > 3:
		return strings.TrimSuffix(s, "ies") + "y"
	case strings.HasSuffix(s, "ses") && len(s) > 3:
		return strings.TrimSuffix(s, "es")
	case strings.HasSuffix(s, "ss"):
		return s
	case strings.HasSuffix(s, "s") && len(s) > 1:
		return strings.TrimSuffix(s, "s")
	default:
		return s
	}
}

// ToKebabCase inserts a dash at every lower-to-upper boundary, then lowercases.
func ToKebabCase(s string) string {
	return splitBoundaries(s, '-')
}

// ToSnakeCase inserts an underscore at every lower-to-upper boundary, then lowercases.
func ToSnakeCase(s string) string {
	return splitBoundaries(s, '_')
}

func splitBoundaries(s string, sep rune) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsLower(prev) && unicode.IsUpper(r) {
			b.WriteRune(sep)
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return b.String()
}

// RelationIDsField is the DTO property carrying identifiers for a relation,
// e.g. "tags" -> "tagIds", "author" -> "authorIds".
func RelationIDsField(relationName string) string {
	return Singularize(relationName) + "Ids"
}
