// src/processors/beta.go
package processors

import "github.com/username/bankstress/src/models"

// ResolveEffectiveBetas computes the effective rate-pass-through coefficient
// per row, as a slice parallel to rows. Deposit rows take the scenario-level
// override: coreBeta when tagged exactly "core", noncoreBeta for any other
// stability value including the empty string (the conservative default).
// Every other row keeps its own deposit_beta column. Rows are not mutated;
// the override is recomputed per request, never persisted.
func ResolveEffectiveBetas(rows []models.BalanceSheetRow, coreBeta, noncoreBeta float64) []float64 {
	betas := make([]float64, len(rows))
	for i, row := range rows {
		if row.IsDeposit {
			if row.Stability == "core" {
				betas[i] = coreBeta
			} else {
				betas[i] = noncoreBeta
			}
			continue
		}
		betas[i] = row.DepositBeta
	}
	return betas
}
