// src/services/reporting.go
package services

import (
	"fmt"
	"io"
	"math"

	"github.com/username/bankstress/src/models"
)

// WriteConsoleReport renders a human-readable summary of a stress run, one
// block per scenario. Used by the one-shot file mode.
func WriteConsoleReport(w io.Writer, result *models.StressResult) {
	for _, sc := range result.Results {
		fmt.Fprintf(w, "\n=== Interest Rate Shock: %d bps ===\n", sc.ShockBPS)
		fmt.Fprintf(w, "EVE change: %.2f  (%.1f%% of equity)\n", sc.EVEChange, sc.EVEPctEquity*100)
		fmt.Fprintf(w, "NII 12m change: %.2f\n", sc.NIIDelta)
		fmt.Fprintf(w, "HQLA: %.2f  | Stressed outflows: %.2f  | Coverage: %sx\n",
			sc.LCRHQLA, sc.LCROutflows, formatCoverage(float64(sc.LCRCoverage)))
	}
}

func formatCoverage(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", v)
}
