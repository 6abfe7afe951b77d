package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
)

// Load reads, decodes and validates the configuration file at path
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("initial-cash", "100000")
	v.SetDefault("fee-per-trade", "0")
	v.SetDefault("data.source", "csv")
	v.SetDefault("data.vendor", "CSI")
	v.SetDefault("data.bar-size", "D")
	v.SetDefault("strategy", "buyandhold")
	v.SetDefault("sizer.name", "fixed")
	v.SetDefault("sizer.quantity", 100)
	v.SetDefault("sizer.units", 1)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		decimalHook,
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("cannot decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings tree for values no run could proceed with
func (c *Config) Validate() error {
	if !c.InitialCash.IsPositive() {
		return errBadInitialCash
	}

	c.Data.Source = strings.ToLower(c.Data.Source)
	switch c.Data.Source {
	case "csv", "sqlite":
		if c.Data.Path == "" {
			return fmt.Errorf("%w: %s", errMissingDataPath, c.Data.Source)
		}
	default:
		return fmt.Errorf("%w: %s", errUnknownSource, c.Data.Source)
	}

	if len(c.Data.Instruments) == 0 {
		return errNoInstruments
	}

	c.Sizer.Name = strings.ToLower(c.Sizer.Name)
	switch c.Sizer.Name {
	case "fixed", "fixed-dollar", "fractional", "rotational":
	default:
		return fmt.Errorf("%w: %s", errUnknownSizer, c.Sizer.Name)
	}
	if c.Sizer.Units < 1 {
		c.Sizer.Units = 1
	}
	return nil
}

// Details converts the instrument settings into trading metadata
func (i *InstrumentConfig) Details() instrument.Details {
	details := instrument.Equity(i.Ticker)
	details.Name = i.Name
	if strings.EqualFold(i.Type, string(instrument.Future)) {
		details.Type = instrument.Future
	}
	if i.BigPointValue > 0 {
		details.BigPointValue = i.BigPointValue
	}
	if i.Margin.IsPositive() {
		details.Margin = money.FromDecimal(i.Margin)
	}
	if i.TickSize.IsPositive() {
		details.TickSize = money.FromDecimal(i.TickSize)
	}
	return details
}

// decimalHook lets mapstructure decode strings and numbers into
// decimal.Decimal fields
func decimalHook(_, t reflect.Type, data interface{}) (interface{}, error) {
	if t != reflect.TypeOf(decimal.Decimal{}) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	}
	return data, nil
}
