// Package schema implements the Schema Parser: it walks an IDMS record
// schema file, builds the Table it describes, renders the matching
// CREATE TABLE statement, and concurrently emits a COBOL copybook
// describing the same record.
package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/joshnies/turring-eve"
	"github.com/joshnies/turring-eve/migerr"
)

var recordNameRe = regexp.MustCompile(`(?i)RECORD\s+NAME\.*\s+(?P<name>[A-Za-z0-9-]+)`)

// elemItemRe matches the elementary-item line shape: a 2-digit level, a
// name, an optional data-type keyword token, an optional quoted default,
// the PIC literal, and two trailing integers (byte offsets in the source
// copybook, unused by this parser beyond anchoring the match).
var elemItemRe = regexp.MustCompile(
	`^(?P<lvl>\d{2})\s+(?P<name>[A-Za-z0-9-]+)\s+` +
		`(?:(?P<token>[A-Za-z0-9-]+)\s+)?` +
		`(?:'(?P<def>[^']*)'\s+)?` +
		`(?P<pic>[A-Za-z0-9()]+)\s+\d+\s+\d+\s*$`,
)

// genericItemRe is the looser shape the copybook pass uses: level and name
// are required, everything else (token, default, PIC) is optional, so level
// 88 condition items without a PIC still emit a copybook line.
var genericItemRe = regexp.MustCompile(
	`^(?P<lvl>\d{2})\s+(?P<name>[A-Za-z0-9-]+)` +
		`(?:\s+(?P<token>[A-Za-z0-9-]+))?` +
		`(?:\s+(?P<def>'[^']*'))?` +
		`(?:\s+(?P<pic>[A-Za-z0-9()]+))?` +
		`\s+\d+\s+\d+\s*$`,
)

// ConditionLevel is the IDMS level number reserved for condition items
// (level 88), which the elementary-item pass always skips.
const ConditionLevel = 88

// Result is everything the Schema Parser produces from one schema file.
type Result struct {
	Table          *idms.Table
	CreateTableSQL string
	Copybook       string
}

// Parse walks text (the contents of one IDMS schema file) and returns the
// Table it describes, the CREATE TABLE statement, and the COBOL copybook
// body. The table-building pass and the copybook-emission pass run
// concurrently on separate goroutines and are joined before Parse returns,
// per this repository's concurrency model for schema processing.
func Parse(text string) (*Result, error) {
	recordName, err := findRecordName(text)
	if err != nil {
		return nil, err
	}
	tableName := idms.ToSnake(recordName)

	lines := strings.Split(text, "\n")

	var (
		wg         sync.WaitGroup
		table      *idms.Table
		createStmt string
		copybook   string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		table, createStmt = buildTable(tableName, lines)
	}()
	go func() {
		defer wg.Done()
		copybook = buildCopybook(recordName, lines)
	}()
	wg.Wait()

	return &Result{Table: table, CreateTableSQL: createStmt, Copybook: copybook}, nil
}

func findRecordName(text string) (string, error) {
	m := recordNameRe.FindStringSubmatch(text)
	if m == nil {
		return "", migerr.New(migerr.KindNoRecordName, "no RECORD NAME line found in schema", nil)
	}
	return m[recordNameRe.SubexpIndex("name")], nil
}

func buildTable(tableName string, lines []string) (*idms.Table, string) {
	table := &idms.Table{Name: tableName, Columns: []idms.Column{idms.IDColumn()}}

	var sql strings.Builder
	fmt.Fprintf(&sql, "CREATE TABLE %s(\n\tid CHAR(9) NOT NULL DEFAULT '',\n", tableName)

	for _, line := range lines {
		m := elemItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lvl, _ := strconv.Atoi(m[elemItemRe.SubexpIndex("lvl")])
		name := m[elemItemRe.SubexpIndex("name")]
		if lvl == ConditionLevel || strings.EqualFold(name, "FILLER") {
			continue
		}

		colName := idms.ToSnake(name)
		colType := idms.ParsePIC(m[elemItemRe.SubexpIndex("pic")])
		def := idms.RenderDefault(m[elemItemRe.SubexpIndex("def")])

		table.Columns = append(table.Columns, idms.Column{Name: colName, Type: colType, DefaultLiteral: def})
		fmt.Fprintf(&sql, "\t%s %s%s,\n", colName, colType.SQLDef(), def)
	}

	sql.WriteString("\tPRIMARY KEY (id)\n);\n")
	return table, sql.String()
}
