package idms

import "fmt"

// ColumnKind is the tag of the ColumnType sum: every IDMS PIC literal
// resolves to exactly one of these.
type ColumnKind int

const (
	Char ColumnKind = iota
	Numeric
	BigInt
	Decimal
)

func (k ColumnKind) String() string {
	switch k {
	case Char:
		return "CHAR"
	case Numeric:
		return "NUMERIC"
	case BigInt:
		return "BIGINT"
	case Decimal:
		return "DECIMAL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(k))
	}
}

// ColumnType is the decoded form of a PIC literal. Length1/Length2 are only
// meaningful when Kind is Decimal, where they hold the integer and fraction
// widths respectively; ByteLength is always the total on-disk width.
type ColumnType struct {
	Kind       ColumnKind
	ByteLength int
	Length1    int
	Length2    int
}

// SQLDef renders the type portion of a column definition per the rendering
// rules in the PIC Parser: CHAR and BIGINT carry a length, NUMERIC never
// does, and DECIMAL renders both halves.
func (t ColumnType) SQLDef() string {
	switch t.Kind {
	case Char:
		return fmt.Sprintf("CHAR(%d)", t.ByteLength)
	case Numeric:
		return "NUMERIC"
	case BigInt:
		return fmt.Sprintf("BIGINT(%d)", t.ByteLength)
	case Decimal:
		return fmt.Sprintf("DECIMAL(%d, %d)", t.Length1, t.Length2)
	default:
		return "UNKNOWN"
	}
}

// Column is a single ordered attribute of a Table.
type Column struct {
	Name           string
	Type           ColumnType
	DefaultLiteral string // rendered SQL default fragment, e.g. " DEFAULT ''"; empty if none
}

// IDColumn is the synthetic primary-key column every Table begins with.
func IDColumn() Column {
	return Column{
		Name:           "id",
		Type:           ColumnType{Kind: Char, ByteLength: 9},
		DefaultLiteral: " DEFAULT ''",
	}
}

// Table is a named, ordered sequence of Columns, built once by the Schema
// Parser and immutable thereafter. Column order is the byte order of the
// on-disk row; RowWidth is the sum of every column's ByteLength.
type Table struct {
	Name    string
	Columns []Column
}

// RowWidth returns the physical row width: the sum of every column's
// ByteLength, including the synthetic id column.
func (t *Table) RowWidth() int {
	w := 0
	for _, c := range t.Columns {
		w += c.Type.ByteLength
	}
	return w
}

// HasColumn reports whether a column of the given (already snake_case) name
// exists on the table.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Catalog is the process-local, job-scoped mapping of table name to Table,
// populated in schema-processing order and read-only during set processing.
// It must never be shared across jobs.
type Catalog struct {
	tables map[string]*Table
	order  []string
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]*Table)}
}

// Register adds a Table to the catalog under its own name.
func (c *Catalog) Register(t *Table) {
	if _, exists := c.tables[t.Name]; !exists {
		c.order = append(c.order, t.Name)
	}
	c.tables[t.Name] = t
}

// Lookup returns the Table registered under name, if any.
func (c *Catalog) Lookup(name string) (*Table, bool) {
	t, ok := c.tables[name]
	return t, ok
}

// Tables returns every registered Table in registration order.
func (c *Catalog) Tables() []*Table {
	out := make([]*Table, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.tables[name])
	}
	return out
}
