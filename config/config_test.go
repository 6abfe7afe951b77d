package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
initial-cash: "500000"
fee-per-trade: "1.00"
strategy: rsi
data:
  source: sqlite
  path: prices.db
  instruments:
    - ticker: AAA
      type: STK
    - ticker: ES
      name: E-mini S&P 500
      type: FUT
      big-point-value: 50
      margin: "5000"
      tick-size: "0.25"
sizer:
  name: fractional
  fraction: "0.5"
  units: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.InitialCash.Equal(decimal.NewFromInt(500000)))
	assert.True(t, cfg.FeePerTrade.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "rsi", cfg.Strategy)
	assert.Equal(t, "sqlite", cfg.Data.Source)
	assert.Equal(t, "prices.db", cfg.Data.Path)
	require.Len(t, cfg.Data.Instruments, 2)

	assert.Equal(t, "fractional", cfg.Sizer.Name)
	assert.True(t, cfg.Sizer.Fraction.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, int64(2), cfg.Sizer.Units)
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
data:
  path: prices
  instruments:
    - ticker: AAA
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.InitialCash.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "csv", cfg.Data.Source)
	assert.Equal(t, "CSI", cfg.Data.Vendor)
	assert.Equal(t, "D", cfg.Data.BarSize)
	assert.Equal(t, "buyandhold", cfg.Strategy)
	assert.Equal(t, "fixed", cfg.Sizer.Name)
	assert.Equal(t, int64(100), cfg.Sizer.Quantity)
}

func TestInstrumentDetails(t *testing.T) {
	t.Parallel()
	ic := InstrumentConfig{
		Ticker:        "ES",
		Name:          "E-mini S&P 500",
		Type:          "fut",
		BigPointValue: 50,
		Margin:        decimal.NewFromInt(5000),
		TickSize:      decimal.RequireFromString("0.25"),
	}
	d := ic.Details()
	assert.Equal(t, instrument.Future, d.Type)
	assert.Equal(t, int64(50), d.Multiplier())
	assert.Equal(t, money.FromInt64(5000), d.Margin)

	stk := InstrumentConfig{Ticker: "AAA"}
	d = stk.Details()
	assert.Equal(t, instrument.Stock, d.Type)
	assert.Equal(t, int64(1), d.Multiplier())
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "unknown source",
			content: `
data:
  source: kafka
  path: x
  instruments: [{ticker: AAA}]
`,
			wantErr: errUnknownSource,
		},
		{
			name: "missing path",
			content: `
data:
  source: csv
  instruments: [{ticker: AAA}]
`,
			wantErr: errMissingDataPath,
		},
		{
			name: "no instruments",
			content: `
data:
  source: csv
  path: x
`,
			wantErr: errNoInstruments,
		},
		{
			name: "unknown sizer",
			content: `
data:
  source: csv
  path: x
  instruments: [{ticker: AAA}]
sizer:
  name: martingale
`,
			wantErr: errUnknownSizer,
		},
		{
			name: "non-positive cash",
			content: `
initial-cash: "0"
data:
  source: csv
  path: x
  instruments: [{ticker: AAA}]
`,
			wantErr: errBadInitialCash,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
