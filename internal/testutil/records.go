// Package testutil holds fixtures shared by tests across packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/wdlabelbuilder/internal/orderedlist"
)

// ElectionRecords returns the Finnish parliamentary elections 1907-1911 in a
// deliberately unsorted order, with English labels as exported from the
// Wikidata query service.
func ElectionRecords() []orderedlist.Record {
	return []orderedlist.Record{
		{ID: "Q1571365", Label: "Finnish parliamentary election, 1909"},
		{ID: "Q1852888", Label: "Finnish parliamentary election, 1910"},
		{ID: "Q2052948", Label: "Finnish parliamentary election, 1907"},
		{ID: "Q1571375", Label: "Finnish parliamentary election, 1911"},
		{ID: "Q1853901", Label: "Finnish parliamentary election, 1908"},
	}
}

// ElectionIDsSorted is the identifier order of ElectionRecords by year.
var ElectionIDsSorted = []string{"Q2052948", "Q1853901", "Q1571365", "Q1852888", "Q1571375"}

// ElectionList builds an ordered list from ElectionRecords.
func ElectionList() *orderedlist.List {
	return orderedlist.Build(ElectionRecords())
}

// ElectionQueryJSON is ElectionRecords as a query service JSON export, with
// entity URLs as identifiers.
const ElectionQueryJSON = `[
  {"item": "http://www.wikidata.org/entity/Q1571365", "itemLabel": "Finnish parliamentary election, 1909"},
  {"item": "http://www.wikidata.org/entity/Q1852888", "itemLabel": "Finnish parliamentary election, 1910"},
  {"item": "http://www.wikidata.org/entity/Q2052948", "itemLabel": "Finnish parliamentary election, 1907"},
  {"item": "http://www.wikidata.org/entity/Q1571375", "itemLabel": "Finnish parliamentary election, 1911"},
  {"item": "http://www.wikidata.org/entity/Q1853901", "itemLabel": "Finnish parliamentary election, 1908"}
]
`

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
