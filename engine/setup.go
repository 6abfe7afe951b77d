package engine

import (
	"fmt"

	"github.com/quantetra/backtester/config"
	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/data/csvbar"
	"github.com/quantetra/backtester/data/sqlitebar"
	"github.com/quantetra/backtester/eventhandlers/exchange"
	"github.com/quantetra/backtester/eventhandlers/portfolio"
	"github.com/quantetra/backtester/eventhandlers/portfolio/compliance"
	"github.com/quantetra/backtester/eventhandlers/portfolio/risk"
	"github.com/quantetra/backtester/eventhandlers/portfolio/sizing"
	"github.com/quantetra/backtester/eventhandlers/statistics"
	"github.com/quantetra/backtester/eventhandlers/strategies"
	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
)

// NewFromConfig assembles a ready-to-run backtest from validated settings
func NewFromConfig(cfg *config.Config) (*BackTest, error) {
	details := make(map[string]instrument.Details, len(cfg.Data.Instruments))
	for i := range cfg.Data.Instruments {
		d := cfg.Data.Instruments[i].Details()
		details[d.Ticker] = d
	}

	var (
		feed data.Handler
		err  error
	)
	switch cfg.Data.Source {
	case "csv":
		feed, err = csvbar.Load(cfg.Data.Path, details)
	case "sqlite":
		feed, err = sqlitebar.Load(cfg.Data.Path, cfg.Data.Vendor, cfg.Data.BarSize, details)
	default:
		err = fmt.Errorf("no feed for data source %q", cfg.Data.Source)
	}
	if err != nil {
		return nil, err
	}

	pf, err := portfolio.New(feed, money.FromDecimal(cfg.InitialCash))
	if err != nil {
		return nil, err
	}
	sizer, err := buildSizer(cfg.Sizer)
	if err != nil {
		return nil, err
	}
	mgr, err := portfolio.NewManager(pf, sizer, &risk.Passthrough{})
	if err != nil {
		return nil, err
	}
	strat, err := strategies.LoadStrategyByName(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	bt := &BackTest{
		Data:     feed,
		Strategy: strat,
		Manager:  mgr,
		Exchange: &exchange.Simulated{
			Venue: "simulated",
			Fee:   exchange.FixedFee(money.FromDecimal(cfg.FeePerTrade)),
		},
		Statistics: &statistics.Tracker{},
		Compliance: &compliance.Manager{},
		Verbose:    cfg.Verbose,
	}
	return New(bt)
}

func buildSizer(c config.SizerConfig) (sizing.Handler, error) {
	switch c.Name {
	case "fixed":
		return &sizing.Fixed{Quantity: c.Quantity}, nil
	case "fixed-dollar":
		return &sizing.FixedDollar{Amount: money.FromDecimal(c.Amount)}, nil
	case "fractional":
		return &sizing.Fractional{
			Fraction:          c.Fraction,
			UseOrderFraction:  c.UseOrderFraction,
			DollarPerContract: money.FromDecimal(c.DollarPerContract),
			Units:             c.Units,
		}, nil
	case "rotational":
		return &sizing.Rotational{Fraction: c.Fraction}, nil
	}
	return nil, fmt.Errorf("no sizer named %q", c.Name)
}
