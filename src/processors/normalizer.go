// src/processors/normalizer.go
package processors

import (
	"strconv"
	"strings"

	"github.com/username/bankstress/src/logger"
	"github.com/username/bankstress/src/models"
)

// requiredColumns must all be present in the input dataset. Optional columns
// (deposit_beta, stability, convexity) are defaulted when absent.
var requiredColumns = []string{
	"amount", "category", "duration", "fixed_float", "float_share",
	"name", "rate", "repricing_bucket", "type",
}

// Normalizer turns a raw tabular dataset into canonical balance-sheet rows.
// Structural problems (missing columns) are fatal; cell-level problems are
// not: a numeric cell that fails to parse becomes 0.0, so partially dirty
// spreadsheets still produce a best-effort result.
type Normalizer struct{}

func NewNormalizer() *Normalizer { return &Normalizer{} }

// Normalize validates the column set, coerces types, and computes the derived
// classification (side, is_cash, is_afs, is_deposit) exactly once. Rows are
// read-only for every calculator afterwards.
func (n *Normalizer) Normalize(table *models.RawTable) ([]models.BalanceSheetRow, error) {
	var missing []string
	for _, col := range requiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, models.NewSchemaError(missing)
	}

	rows := make([]models.BalanceSheetRow, 0, len(table.Rows))
	for _, raw := range table.Rows {
		name := strings.TrimSpace(raw["name"])
		rawType := strings.ToLower(strings.TrimSpace(raw["type"]))
		category := strings.ToUpper(strings.TrimSpace(raw["category"]))
		amount := coerceFloat(raw["amount"])

		row := models.BalanceSheetRow{
			Name:            name,
			Type:            rawType,
			Category:        category,
			Amount:          amount,
			Rate:            coerceFloat(raw["rate"]),
			Duration:        coerceFloat(raw["duration"]),
			Convexity:       coerceFloat(raw["convexity"]),
			FixedFloat:      strings.ToLower(strings.TrimSpace(raw["fixed_float"])),
			FloatShare:      coerceFloat(raw["float_share"]),
			DepositBeta:     coerceFloat(raw["deposit_beta"]),
			Stability:       strings.ToLower(strings.TrimSpace(raw["stability"])),
			RepricingBucket: strings.TrimSpace(raw["repricing_bucket"]),
		}

		row.Side = models.ResolveSide(name, rawType, raw["category"], amount)
		row.IsCash = strings.EqualFold(name, "cash")
		row.IsAFS = category == "AFS"
		row.IsDeposit = row.Side == models.SideLiability &&
			(strings.Contains(strings.ToLower(name), "deposit") || category == "DEPOSITS")

		rows = append(rows, row)
	}
	return rows, nil
}

// coerceFloat parses a numeric cell leniently: blanks and malformed values
// become 0.0, never an error.
func coerceFloat(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		logger.L.Debug("Unparseable numeric cell coerced to 0.0", "cell", trimmed)
		return 0.0
	}
	return v
}
