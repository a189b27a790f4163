package fmp

import "github.com/bgrewell/fmpkit/pkg/consts"

// Column is one field definition of a table.
type Column struct {
	Index     int
	Type      consts.ColumnType
	Collation byte
	Name      string
}
