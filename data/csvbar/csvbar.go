// Package csvbar loads daily OHLCV bars from one CSV file per ticker, in the
// Date,Open,High,Low,Close,Adj Close,Volume layout of Yahoo Finance exports
package csvbar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
)

const (
	dateLayout = "2006-01-02"
	barPeriod  = 24 * time.Hour
)

var errEmptyFile = errors.New("csv file holds no bars")

// Load reads <dir>/<ticker>.csv for every configured instrument and returns
// a merged chronological bar stream
func Load(dir string, details map[string]instrument.Details) (*data.BarStream, error) {
	var bars []*bar.Bar
	for ticker := range details {
		path := filepath.Join(dir, ticker+".csv")
		loaded, err := loadFile(path, ticker)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		bars = append(bars, loaded...)
	}
	return data.NewBarStream(bars, details), nil
}

func loadFile(path, ticker string) ([]*bar.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errEmptyFile
	}

	// first row is the header
	bars := make([]*bar.Bar, 0, len(rows)-1)
	for _, row := range rows[1:] {
		b, err := parseRow(row, ticker)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func parseRow(row []string, ticker string) (*bar.Bar, error) {
	if len(row) < 7 {
		return nil, fmt.Errorf("expected 7 columns, got %d", len(row))
	}
	ts, err := time.Parse(dateLayout, row[0])
	if err != nil {
		return nil, err
	}
	prices := make([]money.Price, 4)
	for i, col := range []int{1, 2, 3, 4} {
		prices[i], err = money.FromString(row[col])
		if err != nil {
			return nil, err
		}
	}
	adjClose, err := money.FromString(row[5])
	if err != nil {
		return nil, err
	}
	volume, err := strconv.ParseInt(row[6], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse volume %q: %w", row[6], err)
	}

	b := bar.New(ticker, ts, barPeriod, prices[0], prices[1], prices[2], prices[3], volume)
	b.AdjClose = adjClose
	return b, nil
}
