// Package sqlitebar loads daily OHLCV bars and instrument metadata from a
// SQLite price database with the asset / bar_data / data_vendor schema
package sqlitebar

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	// sqlite driver registration
	_ "github.com/mattn/go-sqlite3"

	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
)

const (
	// DefaultVendor is the data vendor rows are filtered to when the
	// configuration names none
	DefaultVendor = "CSI"
	// DefaultBarSize is the bar granularity loaded when the configuration
	// names none
	DefaultBarSize = "D"
)

const barPeriod = 24 * time.Hour

// dateLayouts covers the timestamp renderings sqlite produces for DATE and
// DATETIME columns
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02",
}

// Load reads instrument metadata and bars for the configured instruments
// from the database at path and returns a merged chronological bar stream.
// Metadata found in the asset table replaces the configured details for that
// ticker; tickers without an asset row keep their configured details.
func Load(path, vendor, barSize string, details map[string]instrument.Details) (*data.BarStream, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open price database %s: %w", path, err)
	}
	defer db.Close()

	if vendor == "" {
		vendor = DefaultVendor
	}
	if barSize == "" {
		barSize = DefaultBarSize
	}

	merged, err := loadInstruments(db, vendor, details)
	if err != nil {
		return nil, err
	}
	bars, err := loadBars(db, vendor, barSize, details)
	if err != nil {
		return nil, err
	}
	return data.NewBarStream(bars, merged), nil
}

// tickerArgs builds the IN-clause placeholders for the requested tickers,
// appending them to the leading query arguments
func tickerArgs(details map[string]instrument.Details, leading ...interface{}) (string, []interface{}) {
	placeholders := make([]string, 0, len(details))
	args := append([]interface{}{}, leading...)
	for ticker := range details {
		placeholders = append(placeholders, "?")
		args = append(args, ticker)
	}
	return strings.Join(placeholders, ","), args
}

func loadInstruments(db *sql.DB, vendor string, details map[string]instrument.Details) (map[string]instrument.Details, error) {
	in, args := tickerArgs(details, vendor)
	query := fmt.Sprintf(`
		SELECT a.ticker, a.name, a.type,
		       a.big_point_value, a.margin, a.minimum_tick_size
		FROM asset a
		JOIN data_vendor dv ON dv.id = a.data_vendor_id
		WHERE dv.name = ? AND a.ticker IN (%s)`, in)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("cannot query instrument metadata: %w", err)
	}
	defer rows.Close()

	merged := make(map[string]instrument.Details, len(details))
	for ticker, d := range details {
		merged[ticker] = d
	}
	for rows.Next() {
		var (
			ticker           string
			name, typ        sql.NullString
			bpv              sql.NullInt64
			margin, tickSize sql.NullFloat64
		)
		if err := rows.Scan(&ticker, &name, &typ, &bpv, &margin, &tickSize); err != nil {
			return nil, err
		}
		d := instrument.Equity(ticker)
		d.Name = name.String
		if strings.EqualFold(typ.String, string(instrument.Future)) {
			d.Type = instrument.Future
		}
		if bpv.Int64 > 0 {
			d.BigPointValue = bpv.Int64
		}
		if margin.Float64 > 0 {
			d.Margin = money.FromFloat64(margin.Float64)
		}
		if tickSize.Float64 > 0 {
			d.TickSize = money.FromFloat64(tickSize.Float64)
		}
		merged[ticker] = d
	}
	return merged, rows.Err()
}

func loadBars(db *sql.DB, vendor, barSize string, details map[string]instrument.Details) ([]*bar.Bar, error) {
	in, args := tickerArgs(details, vendor, barSize)
	query := fmt.Sprintf(`
		SELECT a.ticker, b.timestamp,
		       b.open_price, b.high_price, b.low_price, b.close_price, b.volume
		FROM bar_data b
		JOIN asset a ON a.id = b.asset_id
		JOIN data_vendor dv ON dv.id = a.data_vendor_id
		WHERE dv.name = ? AND b.bar_size = ? AND a.ticker IN (%s)
		ORDER BY b.timestamp`, in)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("cannot query bars: %w", err)
	}
	defer rows.Close()

	var bars []*bar.Bar
	for rows.Next() {
		b, err := scanBar(rows)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func scanBar(rows *sql.Rows) (*bar.Bar, error) {
	var (
		ticker, date             string
		open, high, low, closePx float64
		volume                   sql.NullInt64
	)
	if err := rows.Scan(&ticker, &date, &open, &high, &low, &closePx, &volume); err != nil {
		return nil, err
	}

	ts, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	b := bar.New(ticker, ts, barPeriod,
		money.FromFloat64(open), money.FromFloat64(high),
		money.FromFloat64(low), money.FromFloat64(closePx), volume.Int64)
	b.AdjClose = b.Close
	return b, nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("cannot parse price date %q: %w", s, lastErr)
}
