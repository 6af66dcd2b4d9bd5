package idms

import (
	"regexp"
	"strings"
)

var camelSplitRe = regexp.MustCompile(`[-:]+`)

// ToSnake converts an IDMS identifier (upper-case, hyphen-separated, e.g.
// CUSTOMER-RECORD) to snake_case. It trims surrounding whitespace, lowercases
// the result, and replaces every '-' with '_'; no other character is
// altered, so a name already containing '_' or digits passes through as-is.
func ToSnake(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, "-", "_")
}

// ToCamel converts an IDMS identifier to camelCase, splitting on runs of '-'
// or ':'. With two or more segments, the first is lowercased and the rest
// title-cased and concatenated; with a single segment, separators are
// stripped and the result lowercased. Not exercised by the migration
// pipeline itself; kept as a general-purpose utility alongside ToSnake.
func ToCamel(name string) string {
	name = strings.TrimSpace(name)
	segments := camelSplitRe.Split(name, -1)
	if len(segments) < 2 {
		return strings.ToLower(camelSplitRe.ReplaceAllString(name, ""))
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(segments[0]))
	for _, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		b.WriteString(titleCase(seg))
	}
	return b.String()
}

func titleCase(s string) string {
	s = strings.ToLower(s)
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
