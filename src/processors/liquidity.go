// src/processors/liquidity.go
package processors

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/username/bankstress/src/models"
)

// LiquidityStress computes the simplified liquidity coverage picture: HQLA as
// cash plus haircut-adjusted AFS securities, stressed outflows as the deposit
// base times the runoff rate. Coverage is +Inf when outflows are zero (no
// deposits, or a zero runoff rate).
//
// The result does not depend on the shock magnitude, so the orchestrator
// computes it once per request and reuses it across scenarios.
func LiquidityStress(rows []models.BalanceSheetRow, afsHaircut, depositRunoff float64) models.LiquidityResult {
	var hqlaParts, depositAmounts []float64
	for _, row := range rows {
		if row.IsCash {
			hqlaParts = append(hqlaParts, row.Amount)
		} else if row.IsAFS {
			hqlaParts = append(hqlaParts, row.Amount*(1.0-afsHaircut))
		}
		if row.IsDeposit {
			depositAmounts = append(depositAmounts, row.Amount)
		}
	}

	hqla := floats.Sum(hqlaParts)
	outflows := math.Abs(floats.Sum(depositAmounts)) * depositRunoff

	coverage := math.Inf(1)
	if outflows != 0 {
		coverage = hqla / outflows
	}

	return models.LiquidityResult{
		HQLA:             hqla,
		StressedOutflows: outflows,
		CoverageRatio:    coverage,
	}
}
