package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// buildCopybook re-walks lines with the looser generic-item shape and
// formats one COBOL PIC line per match, preserving the record's original
// IDMS casing and PIC text exactly: no snake-casing, no PIC normalization.
// Unlike buildTable, this pass does not skip FILLER or level-88 items,
// since the copybook must describe the record verbatim (scenario S6).
func buildCopybook(recordName string, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "       01 %s.\n", recordName)

	for _, line := range lines {
		m := genericItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lvl, _ := strconv.Atoi(m[genericItemRe.SubexpIndex("lvl")])
		name := m[genericItemRe.SubexpIndex("name")]
		pic := m[genericItemRe.SubexpIndex("pic")]
		def := m[genericItemRe.SubexpIndex("def")]

		b.WriteString("       ")
		b.WriteString(strings.Repeat("\t", lvl))
		fmt.Fprintf(&b, "%02d %s", lvl, name)
		if pic != "" {
			fmt.Fprintf(&b, " PIC %s", pic)
		}
		if def != "" {
			fmt.Fprintf(&b, " VALUE %s", def)
		}
		b.WriteString(".\n")
	}

	return b.String()
}
