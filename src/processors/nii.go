// src/processors/nii.go
package processors

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/username/bankstress/src/models"
)

// ProjectNII12M computes baseline vs post-shock 12-month net interest income.
// Assets reprice through their float share, liabilities through their
// effective deposit beta (effBetas is the slice produced by
// ResolveEffectiveBetas, parallel to rows). Both sides are summed with the
// same sign convention, so the result is a net interest figure directly.
//
// Non-finite aggregates from degenerate input are coerced to 0.0 rather than
// propagated; NII fails soft where the normalizer fails hard.
func ProjectNII12M(rows []models.BalanceSheetRow, effBetas []float64, shockBPS int) models.NIIResult {
	dy := float64(shockBPS) / 10000.0

	var baseline, post []float64
	for i, row := range rows {
		if row.Side != models.SideAsset && row.Side != models.SideLiability {
			continue
		}
		baseline = append(baseline, row.Rate*row.Amount)

		postRate := row.Rate
		switch row.Side {
		case models.SideAsset:
			postRate += row.FloatShare * dy
		case models.SideLiability:
			var beta float64
			if i < len(effBetas) {
				beta = effBetas[i]
			}
			postRate += beta * dy
		}
		post = append(post, postRate*row.Amount)
	}

	baselineNII := finiteOrZero(floats.Sum(baseline))
	postNII := finiteOrZero(floats.Sum(post))

	return models.NIIResult{
		ShockBPS:    shockBPS,
		BaselineNII: baselineNII,
		PostNII:     postNII,
		DeltaNII:    postNII - baselineNII,
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.0
	}
	return v
}
