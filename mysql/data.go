// Package mysql implements the Data Parser (fixed-width IDMS row -> INSERT
// tuple) and the fragment of the SQL Emitter concerned with stitching
// generated statements into the output script.
package mysql

import (
	"fmt"
	"strings"

	"github.com/joshnies/turring-eve"
	"github.com/joshnies/turring-eve/workerpool"
)

const primaryKeyWidth = 9
const unloadPrefix = "UNLOAD "

// decodeBytes turns raw field bytes into text per encoding. UTF-8 (the
// default) and any unrecognized name pass through unchanged, since Go
// strings are already byte slices and most unload files are already UTF-8
// clean. "latin1"/"iso-8859-1" is decoded by widening each byte to the
// identically-numbered Unicode code point, the one single-byte mainframe
// encoding IDMS shops reach for when a field holds extended characters
// outside ASCII.
func decodeBytes(raw []byte, encoding string) string {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "latin1", "iso-8859-1", "l1":
		runes := make([]rune, len(raw))
		for i, b := range raw {
			runes[i] = rune(b)
		}
		return string(runes)
	default:
		return string(raw)
	}
}

// ParseDataFile reads a fixed-width IDMS data file against table's byte
// layout and returns the INSERT statement covering every surviving row, or
// "" if no rows survive. Rows are sliced on the raw bytes; encoding selects
// how each sliced field is then decoded to text (see decodeBytes); workers
// controls the row-transform fan-out. The duplicate-adjacent-primary-key
// scan that precedes it is always sequential, since it depends on line
// order, and skips duplicates without logging them.
func ParseDataFile(table *idms.Table, raw []byte, encoding string, workers int) (string, error) {
	content := string(raw)
	kept := filterRows(content)
	if len(kept) == 0 {
		return "", nil
	}

	rows, err := workerpool.Run(kept, workers, func(line string, _ int) (string, error) {
		return formatRow(table, line, encoding), nil
	})
	if err != nil {
		return "", fmt.Errorf("mysql: parsing data file: %w", err)
	}

	return renderInsert(table, rows), nil
}

// filterRows drops UNLOAD marker lines and adjacent duplicate primary keys,
// returning the surviving lines in their original order. This pass must
// stay sequential: duplicate detection only ever compares a line to the
// immediately preceding surviving line.
func filterRows(content string) []string {
	var kept []string
	var lastPK string
	first := true

	for _, line := range strings.Split(content, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, unloadPrefix) {
			continue
		}

		pk := takePrefix(line, primaryKeyWidth)
		if !first && pk == lastPK {
			// Duplicate adjacent primary key: skipped; no warning is logged.
			continue
		}
		first = false
		lastPK = pk
		kept = append(kept, line)
	}

	return kept
}

// takePrefix returns the first n bytes of s, or the whole string if it is
// shorter than n. All slicing here is byte-based, never rune-based, per this
// repository's byte-vs-character design note.
func takePrefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// formatRow slices line into table's columns in order and renders each
// field per its type's value-transform rule, returning "(<v1>, <v2>, ...)".
// Each field is cut from the undecoded line and only then decoded per
// encoding, so column positions stay byte positions.
func formatRow(table *idms.Table, line, encoding string) string {
	vals := make([]string, 0, len(table.Columns))
	remaining := line

	for _, col := range table.Columns {
		field := takePrefix(remaining, col.Type.ByteLength)
		if len(remaining) > len(field) {
			remaining = remaining[len(field):]
		} else {
			remaining = ""
		}
		vals = append(vals, transformValue(col.Type, decodeBytes([]byte(field), encoding)))
	}

	return "(" + strings.Join(vals, ", ") + ")"
}

func transformValue(t idms.ColumnType, raw string) string {
	switch t.Kind {
	case idms.Numeric, idms.BigInt:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return "NULL"
		}
		stripped := strings.TrimLeft(trimmed, "0")
		if stripped == "" {
			return "0"
		}
		return stripped

	case idms.Decimal:
		n := t.Length1
		if n > len(raw) {
			n = len(raw)
		}
		left := raw[:n]
		right := raw[n:]
		left = strings.TrimLeft(left, "0")
		if left == "" {
			left = "0"
		}
		right = strings.TrimRight(right, "0")
		if right == "" {
			right = "0"
		}
		return left + "." + right

	case idms.Char:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return "''"
		}
		escaped := strings.ReplaceAll(trimmed, "'", "\\'")
		return "'" + escaped + "'"

	default:
		return "'" + raw + "'"
	}
}

// renderInsert builds the multi-row INSERT statement for table given its
// already-transformed rows.
func renderInsert(table *idms.Table, rows []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s(\n", table.Name)
	for i, col := range table.Columns {
		b.WriteString("\t" + col.Name)
		if i < len(table.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(") VALUES\n")
	for i, row := range rows {
		b.WriteString(row)
		if i < len(rows)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString(";\n")
		}
	}
	return b.String()
}
