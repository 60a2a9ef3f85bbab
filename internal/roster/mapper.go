// Package roster turns spreadsheet files into guest records and back.
// Hosts export their guest lists from all kinds of tools, so the
// importer must cope with arbitrary column names; the mapper resolves
// them against small alias sets instead of demanding an exact header.
package roster

import "strings"

// Cell is one header/value pair from a parsed spreadsheet row. Rows
// are kept as ordered slices rather than maps so that lookups are
// deterministic when a file carries two columns that both match a
// field's aliases: the leftmost one wins.
type Cell struct {
	Header string
	Value  string
}

// Row is one spreadsheet row in its original column order.
type Row []Cell

// Lookup finds the value for a logical field by testing each cell's
// header against the accepted aliases, trimmed and lowercased. The
// first cell in row order whose header is in the alias set wins. The
// second return reports whether any cell matched.
func Lookup(row Row, aliases map[string]bool) (string, bool) {
	for _, c := range row {
		if aliases[normalizeHeader(c.Header)] {
			return c.Value, true
		}
	}
	return "", false
}

// AliasSet builds the lookup set for a field from its accepted header
// spellings.
func AliasSet(aliases ...string) map[string]bool {
	m := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		m[normalizeHeader(a)] = true
	}
	return m
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
