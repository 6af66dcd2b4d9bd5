// Package textprep reads and normalizes raw IDMS artifact text (schemas and
// set definitions) for line-by-line scanning. The job orchestrator does not
// call it: it reads each downloaded artifact with os.ReadFile and passes the
// text to the parsers unchanged.
package textprep

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// ReadFile loads fileName into a string, normalizing line endings via
// bufio.Scanner.
func ReadFile(fileName string) (string, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	var content strings.Builder

	for scanner.Scan() {
		content.WriteString(scanner.Text() + "\n")
	}

	return content.String(), scanner.Err()
}

var cobolCommentRe = regexp.MustCompile(`(?m)^.{6}\*.*\n`)
var blankLineRe = regexp.MustCompile(`(?m)^\s*\n`)
var excessGapRe = regexp.MustCompile(`[ \t]{2,}`)

// Clean strips COBOL-convention comment lines (an asterisk in column 7),
// drops blank lines, and collapses runs of spaces/tabs to one. It never
// touches newlines beyond dropping blank ones, since the schema/set parsers
// are line-oriented.
func Clean(content string) string {
	content = cobolCommentRe.ReplaceAllString(content, "")
	content = blankLineRe.ReplaceAllString(content, "")
	content = excessGapRe.ReplaceAllString(content, " ")
	return content
}
