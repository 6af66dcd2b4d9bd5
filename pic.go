package idms

import (
	"regexp"
	"strconv"
	"strings"
)

// These cover the IDMS PIC grammar: standard X/A/9 with a parenthesized
// length, signed-integer PIC, and the two DECIMAL spellings (explicit
// V9(n) and a literal run of 9s after V).
var (
	picStdRegex     = regexp.MustCompile(`^[AX9]\((\d+)\)$`)
	picSignedRegex  = regexp.MustCompile(`^S9\((\d+)\)$`)
	picDecimalRegex = regexp.MustCompile(`^S?9\((\d+)\)V9\((\d+)\)$`)
	picDecimalTrail = regexp.MustCompile(`^S?9\((\d+)\)V(9+)$`)
)

var idmsToSQLKind = map[byte]ColumnKind{
	'A': Char,
	'X': Char,
	'9': Numeric,
}

// ParsePIC decodes an IDMS PIC literal into a ColumnType. The forms below
// are tried in order and the first match wins; anything else falls back to
// mapping the literal's first character through idmsToSQLKind with the
// literal's own length as the byte width.
func ParsePIC(pic string) ColumnType {
	pic = strings.TrimSpace(pic)

	if m := picStdRegex.FindStringSubmatch(pic); m != nil {
		n, _ := strconv.Atoi(m[1])
		kind := Char
		if pic[0] == '9' {
			kind = Numeric
		}
		return ColumnType{Kind: kind, ByteLength: n}
	}

	if m := picSignedRegex.FindStringSubmatch(pic); m != nil {
		n, _ := strconv.Atoi(m[1])
		return ColumnType{Kind: BigInt, ByteLength: n}
	}

	if m := picDecimalRegex.FindStringSubmatch(pic); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		return ColumnType{Kind: Decimal, ByteLength: a + b, Length1: a, Length2: b}
	}

	if m := picDecimalTrail.FindStringSubmatch(pic); m != nil {
		a, _ := strconv.Atoi(m[1])
		k := len(m[2])
		return ColumnType{Kind: Decimal, ByteLength: a + k, Length1: a, Length2: k}
	}

	kind, ok := idmsToSQLKind[upperFirst(pic)]
	if !ok {
		kind = Char
	}
	return ColumnType{Kind: kind, ByteLength: len(pic)}
}

func upperFirst(s string) byte {
	if s == "" {
		return 0
	}
	return strings.ToUpper(s)[0]
}

// RenderDefault translates an IDMS default-value literal into the trailing
// " DEFAULT ..." SQL fragment, or "" when there is no default. SPACE/SPACES
// becomes an empty-string default, ZERO/ZEROS/ZEROES becomes a numeric zero
// default, and any other literal is carried through verbatim.
func RenderDefault(literal string) string {
	literal = strings.TrimSpace(literal)
	if literal == "" {
		return ""
	}
	switch strings.ToUpper(literal) {
	case "SPACE", "SPACES":
		return " DEFAULT ''"
	case "ZERO", "ZEROS", "ZEROES":
		return " DEFAULT 0"
	default:
		return " DEFAULT " + literal
	}
}
