// src/models/results.go
package models

import (
	"bytes"
	"math"
	"strconv"
)

// JSONFloat is a float64 whose JSON encoding maps non-finite values to null.
// The liquidity coverage ratio is +Inf by definition when stressed outflows
// are zero, and encoding/json refuses to emit Inf/NaN.
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func (f *JSONFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = JSONFloat(math.Inf(1))
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = JSONFloat(v)
	return nil
}

// ItemDeltaPV is one line of the itemized EVE breakdown.
type ItemDeltaPV struct {
	Name    string  `json:"name"`
	DeltaPV float64 `json:"delta_pv"`
}

// EVEResult is the output of the duration+convexity shock calculator.
type EVEResult struct {
	ShockBPS          int           `json:"shock_bps"`
	AssetsDeltaPV     float64       `json:"assets_delta_pv"`
	LiabsDeltaPV      float64       `json:"liabs_delta_pv"`
	DeltaEVE          float64       `json:"delta_eve"`
	EquityBase        float64       `json:"equity"`
	DeltaEVEPctEquity float64       `json:"delta_eve_pct_equity"` // NaN when EquityBase is zero
	ByAsset           []ItemDeltaPV `json:"by_asset"`
	ByLiability       []ItemDeltaPV `json:"by_liab"`
}

// NIIResult is the output of the 12-month net-interest-income projection.
type NIIResult struct {
	ShockBPS    int     `json:"shock_bps"`
	BaselineNII float64 `json:"baseline_nii"`
	PostNII     float64 `json:"post_nii"`
	DeltaNII    float64 `json:"delta_nii"`
}

// LiquidityResult is the output of the simplified liquidity stress.
type LiquidityResult struct {
	HQLA             float64 `json:"hqla"`
	StressedOutflows float64 `json:"stressed_outflows"`
	CoverageRatio    float64 `json:"coverage_ratio"` // +Inf when outflows are zero
}

// ScenarioResult is one row of the stress response, one per configured shock.
type ScenarioResult struct {
	ShockBPS     int       `json:"shock_bps"`
	EVEChange    float64   `json:"eve_change"`
	EVEPctEquity float64   `json:"eve_pct_equity"`
	NIIDelta     float64   `json:"nii_delta"`
	LCRHQLA      float64   `json:"lcr_hqla"`
	LCROutflows  float64   `json:"lcr_outflows"`
	LCRCoverage  JSONFloat `json:"lcr_coverage"`
}

// StressResult is the full, ordered response for one stress request.
type StressResult struct {
	Equity  float64          `json:"equity"`
	Results []ScenarioResult `json:"results"`
}
