// Package set implements the Set Parser: it parses an IDMS SET definition
// and dispatches on its mode, translating a CHAIN set into foreign-key
// ALTER TABLE statements and an INDEX set into a CREATE VIEW statement.
package set

import (
	"regexp"
	"strings"

	"github.com/joshnies/turring-eve"
	"github.com/joshnies/turring-eve/logger"
	"github.com/joshnies/turring-eve/migerr"
)

var (
	headerRe = regexp.MustCompile(`SET\.+\s+(?P<name>[A-Za-z0-9-]+)\s+MODE\s+(?:IS\s+)?(?P<mode>[A-Za-z]+)`)
	ownerRe  = regexp.MustCompile(`OWNER\.+\s+(?P<name>[A-Za-z0-9-]+)`)
	memberRe = regexp.MustCompile(`MEMBER\.+\s+(?P<table>[A-Za-z0-9-]+)\s+.+\n.+SORT\s+KEY\s+(?P<key>[A-Za-z0-9-]+)\s+(?P<order>ASC|DESC)`)
	extraKeyRe = regexp.MustCompile(`(?P<key>[A-Za-z0-9-]+)\s+(?P<order>ASC|DESC)`)
)

// Options carries the flags the Set Parser needs from the job.
type Options struct {
	MigrateFKs bool
}

// Parse locates the SET header in text and dispatches on its mode, emitting
// either ALTER TABLE ... ADD FOREIGN KEY statements (CHAIN) or a single
// CREATE VIEW statement (INDEX). It returns "" with no error when the set
// is legitimately empty of output (e.g. migrate_fks disabled).
func Parse(text string, catalog *idms.Catalog, opts Options, log *logger.Logger) (string, error) {
	h := headerRe.FindStringSubmatch(text)
	if h == nil {
		return "", migerr.New(migerr.KindMissingSetHeader, "no SET ... MODE header found", nil)
	}
	name := h[headerRe.SubexpIndex("name")]
	mode := h[headerRe.SubexpIndex("mode")]

	switch strings.ToLower(mode) {
	case "chain":
		return parseChainSet(name, text, catalog, opts, log)
	case "index":
		return parseIndexSet(name, text, catalog, log)
	default:
		return "", migerr.New(migerr.KindUnknownSetMode, "unrecognized SET mode: "+mode, nil)
	}
}
