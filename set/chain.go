package set

import (
	"fmt"
	"strings"

	"github.com/joshnies/turring-eve"
	"github.com/joshnies/turring-eve/logger"
)

const prefixWidth = 4

// parseChainSet translates a CHAIN set into one ALTER TABLE ... ADD FOREIGN
// KEY statement per member, gated on opts.MigrateFKs.
func parseChainSet(setName, text string, catalog *idms.Catalog, opts Options, log *logger.Logger) (string, error) {
	if !opts.MigrateFKs {
		log.Debug("skipping CHAIN set, migrate_fks is disabled", map[string]interface{}{"set": setName})
		return "", nil
	}

	ownerMatch := ownerRe.FindStringSubmatch(text)
	if ownerMatch == nil {
		log.Warn("CHAIN set has no OWNER, skipping", map[string]interface{}{"set": setName})
		return "", nil
	}
	ownerName := idms.ToSnake(ownerMatch[ownerRe.SubexpIndex("name")])

	if _, ok := catalog.Lookup(ownerName); !ok {
		log.Warn("CHAIN set owner table not found in catalog, skipping set", map[string]interface{}{
			"set": setName, "owner": ownerName,
		})
		return "", nil
	}

	var b strings.Builder
	for _, m := range memberRe.FindAllStringSubmatch(text, -1) {
		memberTable := idms.ToSnake(m[memberRe.SubexpIndex("table")])
		key := idms.ToSnake(m[memberRe.SubexpIndex("key")])

		if _, ok := catalog.Lookup(memberTable); !ok {
			log.Warn("CHAIN set member table not found, skipping member", map[string]interface{}{
				"set": setName, "member": memberTable,
			})
			continue
		}

		refKey := rewriteKeyPrefix(key, ownerName)
		if refKey != key && !strings.HasPrefix(key, ownerName[:min(prefixWidth, len(ownerName))]) {
			log.Debug("CHAIN FK key prefix rewritten", map[string]interface{}{
				"set": setName, "original_key": key, "referenced_key": refKey,
			})
		}

		fmt.Fprintf(&b, "ALTER TABLE %s ADD FOREIGN KEY (%s) REFERENCES %s(%s);\n",
			memberTable, key, ownerName, refKey)
	}

	return b.String(), nil
}

// rewriteKeyPrefix replaces the first 4 characters of key with the first 4
// characters of ownerName, reflecting the IDMS convention that related
// tables share a 4-character name prefix in their key columns. This is a
// heuristic carried over unchanged from the source semantics: when the
// owner's name doesn't actually share a prefix with the key, the emitted
// REFERENCES clause can name a nonexistent column.
func rewriteKeyPrefix(key, ownerName string) string {
	kw := min(prefixWidth, len(key))
	ow := min(prefixWidth, len(ownerName))
	if kw == 0 || ow == 0 {
		return key
	}
	return ownerName[:ow] + key[kw:]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
