// src/services/stress_service.go
package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/patrickmn/go-cache"
	"gonum.org/v1/gonum/floats"

	"github.com/username/bankstress/src/logger"
	"github.com/username/bankstress/src/models"
	"github.com/username/bankstress/src/parsers/balancesheet"
	"github.com/username/bankstress/src/processors"
)

const ckStressReport = "res_stress_report_%s"

type stressServiceImpl struct {
	parser      *balancesheet.Parser
	normalizer  *processors.Normalizer
	reportCache *cache.Cache
}

// NewStressService wires the parser, normalizer, and report cache into the
// scenario orchestrator. reportCache may be nil to disable caching (one-shot
// file mode, tests).
func NewStressService(
	parser *balancesheet.Parser,
	normalizer *processors.Normalizer,
	reportCache *cache.Cache,
) StressService {
	return &stressServiceImpl{
		parser:      parser,
		normalizer:  normalizer,
		reportCache: reportCache,
	}
}

func (s *stressServiceImpl) RunStress(payload io.Reader, params models.StressParams) (*models.StressResult, error) {
	raw, err := io.ReadAll(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	cacheKey := fmt.Sprintf(ckStressReport, reportCacheKey(raw, params))
	if s.reportCache != nil {
		if cached, found := s.reportCache.Get(cacheKey); found {
			logger.L.Debug("Stress report served from cache", "key", cacheKey)
			return cached.(*models.StressResult), nil
		}
	}

	table, err := s.parser.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	rows, err := s.normalizer.Normalize(table)
	if err != nil {
		return nil, err
	}

	result, err := s.RunScenarios(rows, params)
	if err != nil {
		return nil, err
	}

	if s.reportCache != nil {
		s.reportCache.Set(cacheKey, result, cache.DefaultExpiration)
	}
	return result, nil
}

// RunScenarios resolves the effective deposit betas once, computes the equity
// base, and runs EVE and NII per shock in the configured order (duplicates
// preserved). Liquidity is shock-independent, so it is computed once and
// repeated on every scenario row. Each shock is computed independently from
// the same normalized, beta-resolved table; there is no cross-scenario state.
func (s *stressServiceImpl) RunScenarios(rows []models.BalanceSheetRow, params models.StressParams) (*models.StressResult, error) {
	betas := processors.ResolveEffectiveBetas(rows, params.DepositBetaCore, params.DepositBetaNoncore)

	equityBase := equityBaseOf(rows)
	if equityBase == 0 {
		return nil, models.ErrZeroEquity
	}

	liq := processors.LiquidityStress(rows, params.AFSHaircut, params.DepositRunoff)

	results := make([]models.ScenarioResult, 0, len(params.ShocksBPS))
	for _, shockBPS := range params.ShocksBPS {
		eve := processors.EVEChange(rows, equityBase, shockBPS)
		nii := processors.ProjectNII12M(rows, betas, shockBPS)

		results = append(results, models.ScenarioResult{
			ShockBPS:     shockBPS,
			EVEChange:    eve.DeltaEVE,
			EVEPctEquity: eve.DeltaEVEPctEquity,
			NIIDelta:     nii.DeltaNII,
			LCRHQLA:      liq.HQLA,
			LCROutflows:  liq.StressedOutflows,
			LCRCoverage:  models.JSONFloat(liq.CoverageRatio),
		})
	}

	return &models.StressResult{Equity: equityBase, Results: results}, nil
}

// equityBaseOf sums the absolute amounts of equity-side rows.
func equityBaseOf(rows []models.BalanceSheetRow) float64 {
	var amounts []float64
	for _, row := range rows {
		if row.Side == models.SideEquity {
			amounts = append(amounts, math.Abs(row.Amount))
		}
	}
	return floats.Sum(amounts)
}

// reportCacheKey hashes the raw payload together with the parameter set, so
// the same sheet under different knobs never collides.
func reportCacheKey(payload []byte, params models.StressParams) string {
	h := sha256.New()
	h.Write(payload)
	if encoded, err := json.Marshal(params); err == nil {
		h.Write(encoded)
	}
	return hex.EncodeToString(h.Sum(nil))
}
