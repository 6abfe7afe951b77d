package compliance

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/quantetra/backtester/eventtypes/fill"
)

// AddRecord appends an executed fill to the audit trail
func (m *Manager) AddRecord(ev *fill.Fill) {
	if ev == nil {
		return
	}
	m.records = append(m.records, Record{
		FillID:     ev.ID,
		Timestamp:  ev.GetTime(),
		Ticker:     ev.Ticker(),
		Action:     ev.Action,
		Quantity:   ev.Quantity,
		Price:      ev.Price,
		Commission: ev.Commission,
		Venue:      ev.Venue,
		Name:       ev.Name,
	})
}

// Records returns a copy of the trail in execution order
func (m *Manager) Records() []Record {
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Count returns the number of recorded fills
func (m *Manager) Count() int {
	return len(m.records)
}

// Reset discards the trail
func (m *Manager) Reset() {
	m.records = nil
}

// ExportCSV writes the trail as CSV with a header row
func (m *Manager) ExportCSV(w io.Writer) error {
	if w == nil {
		return errNilWriter
	}
	cw := csv.NewWriter(w)
	header := []string{"fill_id", "timestamp", "ticker", "action", "quantity", "price", "commission", "venue", "name"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range m.records {
		r := &m.records[i]
		row := []string{
			r.FillID,
			r.Timestamp.UTC().Format(time.RFC3339),
			r.Ticker,
			string(r.Action),
			strconv.FormatInt(r.Quantity, 10),
			r.Price.Display(2),
			r.Commission.Display(2),
			r.Venue,
			r.Name,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
