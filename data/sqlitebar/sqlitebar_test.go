package sqlitebar

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
)

func seedDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE data_vendor (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE asset (
			id INTEGER PRIMARY KEY,
			data_vendor_id INTEGER NOT NULL,
			ticker TEXT NOT NULL,
			name TEXT, type TEXT,
			big_point_value INTEGER,
			minimum_tick_size REAL,
			margin REAL)`,
		`CREATE TABLE bar_data (
			asset_id INTEGER NOT NULL,
			bar_size TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			open_price REAL, high_price REAL, low_price REAL, close_price REAL,
			volume INTEGER)`,
		`INSERT INTO data_vendor (id, name) VALUES (1, 'CSI'), (2, 'OTHER')`,
		`INSERT INTO asset
			(id, data_vendor_id, ticker, name, type, big_point_value, minimum_tick_size, margin)
		 VALUES
			(1, 1, 'AAA', 'Alpha Corp', 'STK', NULL, 0.01, NULL),
			(2, 1, 'ES', 'E-mini S&P', 'FUT', 50, 0.25, 5000),
			(3, 1, 'ZZZ', 'Unrequested', 'STK', NULL, NULL, NULL)`,
		`INSERT INTO bar_data
			(asset_id, bar_size, timestamp, open_price, high_price, low_price, close_price, volume)
		 VALUES
			(1, 'D', '2016-01-05', 239.10, 240.20, 239.00, 239.95, 1200000),
			(1, 'D', '2016-01-04', 239.50, 240.00, 238.90, 239.08, 1500000),
			(1, 'W', '2016-01-04', 1.00, 1.00, 1.00, 1.00, 1),
			(3, 'D', '2016-01-04', 1.00, 1.00, 1.00, 1.00, 1)`,
	}
	for _, stmt := range stmts {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := seedDatabase(t)

	details := map[string]instrument.Details{"AAA": instrument.Equity("AAA")}
	stream, err := Load(path, "CSI", "D", details)
	require.NoError(t, err)

	// rows come back date ordered, daily bars only, requested tickers only
	ev, ok := stream.StreamNext()
	require.True(t, ok)
	b := ev.(*bar.Bar)
	assert.Equal(t, "AAA", b.Ticker())
	assert.Equal(t, time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC), b.GetTime())

	want, err := money.FromString("239.08")
	require.NoError(t, err)
	assert.Equal(t, want, b.Close)

	ev, ok = stream.StreamNext()
	require.True(t, ok)
	assert.Equal(t, time.Date(2016, 1, 5, 0, 0, 0, 0, time.UTC), ev.GetTime())

	_, ok = stream.StreamNext()
	assert.False(t, ok)
}

func TestLoadInstrumentMetadata(t *testing.T) {
	t.Parallel()
	path := seedDatabase(t)

	// configured details are placeholders; the asset table has the truth
	details := map[string]instrument.Details{
		"AAA": instrument.Equity("AAA"),
		"ES":  instrument.Equity("ES"),
	}
	stream, err := Load(path, "CSI", "D", details)
	require.NoError(t, err)

	es, err := stream.Instrument("ES")
	require.NoError(t, err)
	assert.Equal(t, instrument.Future, es.Type)
	assert.Equal(t, "E-mini S&P", es.Name)
	assert.Equal(t, int64(50), es.BigPointValue)
	assert.Equal(t, money.FromFloat64(5000), es.Margin)
	assert.Equal(t, money.FromFloat64(0.25), es.TickSize)

	aaa, err := stream.Instrument("AAA")
	require.NoError(t, err)
	assert.Equal(t, instrument.Stock, aaa.Type)
	assert.Equal(t, "Alpha Corp", aaa.Name)
	assert.Equal(t, int64(1), aaa.Multiplier())
}

func TestLoadKeepsConfiguredDetailsWithoutAssetRow(t *testing.T) {
	t.Parallel()
	path := seedDatabase(t)

	configured := instrument.Equity("BBB")
	configured.Name = "Configured Corp"
	details := map[string]instrument.Details{"BBB": configured}
	stream, err := Load(path, "CSI", "D", details)
	require.NoError(t, err)

	got, err := stream.Instrument("BBB")
	require.NoError(t, err)
	assert.Equal(t, configured, got)
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"2016-01-04", "2016-01-04 00:00:00", "2016-01-04T00:00:00Z"} {
		ts, err := parseDate(s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC), ts)
	}

	_, err := parseDate("04/01/2016")
	assert.Error(t, err)
}
