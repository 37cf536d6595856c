package metocean

import _ "embed"

// conakryTideTable is the most recently captured tide-forecast text block
// for Conakry. It is refreshed by hand when a new table is published; the
// parser tolerates the trailing days going stale.
//
//go:embed tides_conakry.txt
var conakryTideTable string

// ConakryTides parses the embedded Conakry schedule.
func ConakryTides() []Tide {
	return ParseTideTable(conakryTideTable)
}
