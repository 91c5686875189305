// src/processors/eve.go
package processors

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/username/bankstress/src/models"
)

// deltaPV is the second-order Taylor approximation of price sensitivity to a
// parallel yield shift: amount * (-D*dy + 0.5*C*dy^2).
func deltaPV(amount, duration, convexity, dy float64) float64 {
	return amount * (-duration*dy + 0.5*convexity*dy*dy)
}

// EVEChange computes the change in economic value of equity under a parallel
// shock of shockBPS basis points. Liability PV is modeled the same way as
// asset PV, with no sign flip between sides: rates up means PV down for every
// positive-duration row, and the aggregate is simply the sum over all
// non-equity rows.
//
// equityBase is the caller-supplied absolute equity sum; a zero base yields a
// NaN percentage, which the orchestrator is expected to have rejected upstream.
func EVEChange(rows []models.BalanceSheetRow, equityBase float64, shockBPS int) models.EVEResult {
	dy := float64(shockBPS) / 10000.0

	var assetDeltas, liabDeltas []float64
	var byAsset, byLiab []models.ItemDeltaPV

	for _, row := range rows {
		switch row.Side {
		case models.SideAsset:
			d := deltaPV(row.Amount, row.Duration, row.Convexity, dy)
			assetDeltas = append(assetDeltas, d)
			byAsset = append(byAsset, models.ItemDeltaPV{Name: row.Name, DeltaPV: d})
		case models.SideLiability:
			d := deltaPV(row.Amount, row.Duration, row.Convexity, dy)
			liabDeltas = append(liabDeltas, d)
			byLiab = append(byLiab, models.ItemDeltaPV{Name: row.Name, DeltaPV: d})
		}
	}

	assetsSum := floats.Sum(assetDeltas)
	liabsSum := floats.Sum(liabDeltas)
	deltaEVE := assetsSum + liabsSum

	pctEquity := math.NaN()
	if equityBase != 0 {
		pctEquity = deltaEVE / equityBase
	}

	return models.EVEResult{
		ShockBPS:          shockBPS,
		AssetsDeltaPV:     assetsSum,
		LiabsDeltaPV:      liabsSum,
		DeltaEVE:          deltaEVE,
		EquityBase:        equityBase,
		DeltaEVEPctEquity: pctEquity,
		ByAsset:           byAsset,
		ByLiability:       byLiab,
	}
}
