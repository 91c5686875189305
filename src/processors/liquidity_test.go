package processors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/username/bankstress/src/models"
)

func liquiditySheet() []models.BalanceSheetRow {
	return []models.BalanceSheetRow{
		{Name: "Cash", Side: models.SideAsset, Amount: 100, IsCash: true},
		{Name: "AFS Bonds", Side: models.SideAsset, Amount: 200, IsAFS: true},
		{Name: "Loans", Side: models.SideAsset, Amount: 700},
		{Name: "Customer Deposits", Side: models.SideLiability, Amount: 800, IsDeposit: true},
		{Name: "Equity", Side: models.SideEquity, Amount: 200},
	}
}

func TestLiquidityStress(t *testing.T) {
	res := LiquidityStress(liquiditySheet(), 0.10, 0.15)

	// hqla = 100 + 200*(1-0.10) = 280; outflows = 800*0.15 = 120
	assert.InDelta(t, 280.0, res.HQLA, 1e-9)
	assert.InDelta(t, 120.0, res.StressedOutflows, 1e-9)
	assert.InDelta(t, 280.0/120.0, res.CoverageRatio, 1e-9)
}

func TestLiquidityStress_ZeroOutflowsMeansInfiniteCoverage(t *testing.T) {
	tests := []struct {
		name   string
		rows   []models.BalanceSheetRow
		runoff float64
	}{
		{
			name: "no deposit rows",
			rows: []models.BalanceSheetRow{
				{Name: "Cash", Amount: 50, IsCash: true},
			},
			runoff: 0.15,
		},
		{
			name:   "zero runoff rate",
			rows:   liquiditySheet(),
			runoff: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := LiquidityStress(tt.rows, 0.10, tt.runoff)
			assert.True(t, math.IsInf(res.CoverageRatio, 1))
		})
	}
}

func TestLiquidityStress_NoHQLARows(t *testing.T) {
	rows := []models.BalanceSheetRow{
		{Name: "Loans", Side: models.SideAsset, Amount: 1000},
		{Name: "Customer Deposits", Side: models.SideLiability, Amount: 800, IsDeposit: true},
	}

	res := LiquidityStress(rows, 0.10, 0.15)

	assert.Equal(t, 0.0, res.HQLA)
	assert.Equal(t, 0.0, res.CoverageRatio)
}

func TestLiquidityStress_CoverageMonotonicInRunoff(t *testing.T) {
	rows := liquiditySheet()

	prev := math.Inf(1)
	for _, runoff := range []float64{0.0, 0.05, 0.15, 0.5, 1.0} {
		res := LiquidityStress(rows, 0.10, runoff)
		assert.LessOrEqual(t, res.CoverageRatio, prev, "coverage must not increase with runoff")
		prev = res.CoverageRatio
	}
}

func TestLiquidityStress_HaircutReducesHQLA(t *testing.T) {
	rows := liquiditySheet()

	light := LiquidityStress(rows, 0.0, 0.15)
	heavy := LiquidityStress(rows, 0.5, 0.15)

	assert.Greater(t, light.HQLA, heavy.HQLA)
	assert.Greater(t, light.CoverageRatio, heavy.CoverageRatio)
}
