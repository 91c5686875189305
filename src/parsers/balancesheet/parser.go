// src/parsers/balancesheet/parser.go
package balancesheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/username/bankstress/src/models"
)

// Parser reads a delimited-text balance sheet into a raw tabular dataset.
// It performs no typing or validation beyond CSV structure; column checks and
// numeric coercion are owned by the normalizer.
type Parser struct{}

// NewParser creates a new instance of the balance-sheet Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a CSV payload and converts it into a models.RawTable. Header
// names are trimmed and lowercased; a UTF-8 BOM on the first header cell is
// stripped. An empty payload yields an empty table (no columns), so the
// normalizer reports the full missing-column set instead of a parse failure.
func (p *Parser) Parse(r io.Reader) (*models.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows; short rows get empty cells
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &models.RawTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("balance sheet parser: failed to read CSV header: %w", err)
	}

	columns := make([]string, 0, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		columns = append(columns, strings.ToLower(strings.TrimSpace(h)))
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("balance sheet parser: failed to read CSV records: %w", err)
	}

	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &models.RawTable{Columns: columns, Rows: rows}, nil
}
