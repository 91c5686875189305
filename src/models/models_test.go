package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFloat_NonFiniteEncodesAsNull(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"positive infinity", math.Inf(1), "null"},
		{"nan", math.NaN(), "null"},
		{"finite", 2.5, "2.5"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(JSONFloat(tt.v))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestJSONFloat_UnmarshalNullIsInfinite(t *testing.T) {
	var f JSONFloat
	require.NoError(t, json.Unmarshal([]byte("null"), &f))
	assert.True(t, math.IsInf(float64(f), 1))

	require.NoError(t, json.Unmarshal([]byte("1.25"), &f))
	assert.Equal(t, JSONFloat(1.25), f)
}

func TestNewSchemaError_SortsColumns(t *testing.T) {
	err := NewSchemaError([]string{"type", "amount", "rate"})

	assert.Equal(t, []string{"amount", "rate", "type"}, err.MissingColumns)
	assert.Equal(t, "missing columns: [amount rate type]", err.Error())
}

func TestStressParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StressParams)
		wantErr bool
	}{
		{"defaults are valid", func(p *StressParams) {}, false},
		{"empty shocks", func(p *StressParams) { p.ShocksBPS = nil }, true},
		{"haircut above cap", func(p *StressParams) { p.AFSHaircut = 0.6 }, true},
		{"negative runoff", func(p *StressParams) { p.DepositRunoff = -0.1 }, true},
		{"core beta above one", func(p *StressParams) { p.DepositBetaCore = 1.1 }, true},
		{"lag out of range", func(p *StressParams) { p.LagMonths = 13 }, true},
		{"boundary values pass", func(p *StressParams) {
			p.AFSHaircut = 0.5
			p.DepositRunoff = 1
			p.DepositBetaNoncore = 1
			p.LagMonths = 12
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultStressParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveSide_PriorityChain(t *testing.T) {
	assert.Equal(t, SideEquity, ResolveSide("Common Stock", "asset", "EQUITY", 100),
		"category beats type")
	assert.Equal(t, SideLiability, ResolveSide("Bonds Issued", "liability", "DEBT", 100))
	assert.Equal(t, SideEquity, ResolveSide("Tier 1 Equity Capital", "", "CAPITAL", 100))
	assert.Equal(t, SideAsset, ResolveSide("Mystery", "", "", 0))
	assert.Equal(t, SideLiability, ResolveSide("Mystery", "", "", -1))
}
