package fmp

// Table is one table definition recovered from a file. Index is the
// 1-based table id used internally to scope ListColumns/ReadValues to this
// table; on legacy (v3-v6) files there is always exactly one table, named
// after the file itself.
type Table struct {
	Index int
	Name  string
}
