// Package config loads and validates run settings from a configuration file
package config

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	errNoInstruments   = errors.New("no instruments configured")
	errUnknownSource   = errors.New("unknown data source")
	errUnknownSizer    = errors.New("unknown sizer")
	errBadInitialCash  = errors.New("initial cash must be positive")
	errMissingDataPath = errors.New("data source requires a path")
)

// Config is the full settings tree for one run
type Config struct {
	// InitialCash is the starting account balance
	InitialCash decimal.Decimal `mapstructure:"initial-cash"`
	// FeePerTrade is the flat commission charged on every fill
	FeePerTrade decimal.Decimal `mapstructure:"fee-per-trade"`
	// Verbose switches per-event debug logging on
	Verbose bool `mapstructure:"verbose"`

	Data     DataConfig   `mapstructure:"data"`
	Strategy string       `mapstructure:"strategy"`
	Sizer    SizerConfig  `mapstructure:"sizer"`
	Export   ExportConfig `mapstructure:"export"`
}

// DataConfig selects and parameterises the price feed
type DataConfig struct {
	// Source is one of csv or sqlite
	Source string `mapstructure:"source"`
	// Path is the CSV directory or sqlite database file
	Path string `mapstructure:"path"`
	// Vendor filters the sqlite feed to one data vendor's rows
	Vendor string `mapstructure:"vendor"`
	// BarSize filters the sqlite feed to one bar granularity
	BarSize string `mapstructure:"bar-size"`

	Instruments []InstrumentConfig `mapstructure:"instruments"`
}

// InstrumentConfig describes one tradeable instrument
type InstrumentConfig struct {
	Ticker string `mapstructure:"ticker"`
	Name   string `mapstructure:"name"`
	// Type is STK or FUT
	Type string `mapstructure:"type"`
	// BigPointValue is the currency value of a one point move, futures only
	BigPointValue int64 `mapstructure:"big-point-value"`
	// Margin is the per-contract margin requirement, futures only
	Margin decimal.Decimal `mapstructure:"margin"`
	// TickSize is the minimum price increment
	TickSize decimal.Decimal `mapstructure:"tick-size"`
}

// SizerConfig selects and parameterises the position sizer
type SizerConfig struct {
	// Name is one of fixed, fixed-dollar, fractional or rotational
	Name string `mapstructure:"name"`

	// Quantity applies to the fixed sizer
	Quantity int64 `mapstructure:"quantity"`
	// Amount applies to the fixed-dollar sizer
	Amount decimal.Decimal `mapstructure:"amount"`
	// Fraction is the equity fraction for the fractional sizer, and the
	// scale applied to each order's target fraction for the rotational sizer
	Fraction decimal.Decimal `mapstructure:"fraction"`
	// UseOrderFraction lets signals override the configured fraction
	UseOrderFraction bool `mapstructure:"use-order-fraction"`
	// DollarPerContract sizes futures by margin instead of price
	DollarPerContract decimal.Decimal `mapstructure:"dollar-per-contract"`
	// Units is the number of scale-in tranches for the fractional sizer
	Units int64 `mapstructure:"units"`
}

// ExportConfig controls post-run artefacts
type ExportConfig struct {
	// FillsCSV, when set, is the path the fill audit trail is written to
	FillsCSV string `mapstructure:"fills-csv"`
}
