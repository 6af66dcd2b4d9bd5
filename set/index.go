package set

import (
	"fmt"
	"strings"

	"github.com/joshnies/turring-eve"
	"github.com/joshnies/turring-eve/logger"
)

type sortKey struct {
	qualified string
	order     string
}

// parseIndexSet translates an INDEX set into a single CREATE VIEW statement:
// a Cartesian-product FROM list over every member table, ordered by each
// member's SORT KEY columns. No JOIN/WHERE clause is generated.
func parseIndexSet(setName, text string, catalog *idms.Catalog, log *logger.Logger) (string, error) {
	viewName := idms.ToSnake(strings.TrimPrefix(setName, "IX-")) + "_view"

	matches := memberRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return "", nil
	}

	var fromTables []string
	seenTables := map[string]bool{}
	var keys []sortKey
	seenKeys := map[string]bool{}

	for i, idx := range matches {
		tableRaw := text[idx[memberRe.SubexpIndex("table")*2]:idx[memberRe.SubexpIndex("table")*2+1]]
		keyRaw := text[idx[memberRe.SubexpIndex("key")*2]:idx[memberRe.SubexpIndex("key")*2+1]]
		orderRaw := text[idx[memberRe.SubexpIndex("order")*2]:idx[memberRe.SubexpIndex("order")*2+1]]

		table := idms.ToSnake(tableRaw)
		if !seenTables[table] {
			seenTables[table] = true
			fromTables = append(fromTables, table)
		}

		t, ok := catalog.Lookup(table)
		if !ok {
			log.Error("INDEX set member table not found in catalog", map[string]interface{}{
				"set": setName, "member": table,
			})
			continue
		}

		addSortKey(&keys, seenKeys, log, setName, t, table, keyRaw, orderRaw)

		// Scan the gap between this member's match and the next for
		// additional "<key> ASC|DESC" pairs belonging to the same member.
		end := idx[1]
		start := len(text)
		if i+1 < len(matches) {
			start = matches[i+1][0]
		}
		gap := text[end:start]
		for _, extra := range extraKeyRe.FindAllStringSubmatch(gap, -1) {
			addSortKey(&keys, seenKeys, log, setName, t, table,
				extra[extraKeyRe.SubexpIndex("key")], extra[extraKeyRe.SubexpIndex("order")])
		}
	}

	if len(fromTables) == 0 {
		return "", nil
	}

	return renderView(viewName, keys, fromTables), nil
}

func addSortKey(keys *[]sortKey, seen map[string]bool, log *logger.Logger, setName string, t *idms.Table, table, keyRaw, order string) {
	key := idms.ToSnake(keyRaw)
	if !t.HasColumn(key) {
		log.Warn("INDEX set sort key column not found, skipping", map[string]interface{}{
			"set": setName, "table": table, "key": key,
		})
		return
	}
	qualified := table + "." + key
	if seen[qualified] {
		return
	}
	seen[qualified] = true
	*keys = append(*keys, sortKey{qualified: qualified, order: order})
}

func renderView(viewName string, keys []sortKey, fromTables []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE VIEW %s AS\nSELECT\n", viewName)
	for i, k := range keys {
		b.WriteString("\t" + k.qualified)
		if i < len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("FROM\n")
	for i, t := range fromTables {
		b.WriteString("\t" + t)
		if i < len(fromTables)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("ORDER BY\n")
	for i, k := range keys {
		fmt.Fprintf(&b, "\t%s %s", k.qualified, k.order)
		if i < len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(";\n")
	return b.String()
}
