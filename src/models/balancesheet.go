// src/models/balancesheet.go
package models

import "strings"

// Side classifies a balance-sheet line item.
type Side string

const (
	SideAsset     Side = "asset"
	SideLiability Side = "liability"
	SideEquity    Side = "equity"
)

// RawTable is the tabular dataset handed over by an input adapter (CSV parser,
// test fixture, ...). Header names are lowercased; cells are kept as the raw
// strings found in the source so that the normalizer owns all type coercion.
type RawTable struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the table carries the given (lowercased) column.
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// BalanceSheetRow is the unified, typed representation of one input record.
// The parser/normalizer pipeline is responsible for populating every field,
// including the derived classification block at the bottom; after
// normalization the row is treated as read-only by all calculators.
type BalanceSheetRow struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`     // raw side hint, lowercased
	Category        string  `json:"category"` // uppercased, e.g. "AFS", "DEPOSITS"
	Amount          float64 `json:"amount"`
	Rate            float64 `json:"rate"`     // decimal, e.g. 0.03
	Duration        float64 `json:"duration"` // modified duration in years
	Convexity       float64 `json:"convexity"`
	FixedFloat      string  `json:"fixed_float"` // "fixed" or "float", informational
	FloatShare      float64 `json:"float_share"`
	DepositBeta     float64 `json:"deposit_beta"`
	Stability       string  `json:"stability"` // "core" / "noncore" tag for deposits
	RepricingBucket string  `json:"repricing_bucket"`

	// --- Derived classification, computed once by the normalizer ---
	Side      Side `json:"side"`
	IsCash    bool `json:"is_cash"`
	IsAFS     bool `json:"is_afs"`
	IsDeposit bool `json:"is_deposit"`
}

// ResolveSide applies the classification priority chain: explicit category,
// then explicit type, then an equity hint in the name, then the amount sign.
// The first matching rule wins; the order is load-bearing because it decides
// which aggregate (asset vs liability) an ambiguous row lands in.
func ResolveSide(name, rawType, category string, amount float64) Side {
	if s, ok := sideFromHint(strings.ToLower(strings.TrimSpace(category))); ok {
		return s
	}
	if s, ok := sideFromHint(rawType); ok {
		return s
	}
	if strings.Contains(strings.ToLower(name), "equity") {
		return SideEquity
	}
	if amount >= 0 {
		return SideAsset
	}
	return SideLiability
}

func sideFromHint(hint string) (Side, bool) {
	switch Side(hint) {
	case SideAsset, SideLiability, SideEquity:
		return Side(hint), true
	}
	return "", false
}
