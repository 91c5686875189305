// src/models/errors.go
package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrZeroEquity rejects a run whose equity base sums to exactly zero: EVE
// impact cannot be expressed as a percentage of equity.
var ErrZeroEquity = errors.New("equity base is zero")

// SchemaError reports required columns missing from the input dataset.
// Structural problems are fatal, unlike cell-level coercion which is lenient.
type SchemaError struct {
	MissingColumns []string
}

// NewSchemaError builds a SchemaError with the column list sorted, so the
// message is deterministic regardless of input column order.
func NewSchemaError(missing []string) *SchemaError {
	cols := make([]string, len(missing))
	copy(cols, missing)
	sort.Strings(cols)
	return &SchemaError{MissingColumns: cols}
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns: [%s]", strings.Join(e.MissingColumns, " "))
}
