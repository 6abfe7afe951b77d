package portfolio

import (
	"time"

	"github.com/yanun0323/logs"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
	"github.com/quantetra/backtester/positions"
)

// New returns a portfolio holding cash only, valued against the given
// price source
func New(quotes data.Quoter, cash money.Price) (*Portfolio, error) {
	if quotes == nil {
		return nil, errQuotesUnset
	}
	return &Portfolio{
		quotes:      quotes,
		InitialCash: cash,
		Cash:        cash,
		Equity:      cash,
		Positions:   make(map[string]*positions.Position),
	}, nil
}

// TransactPosition applies an executed trade: cash moves by notional for
// cash instruments or by margin for derivatives, then the trade either opens
// a new position or modifies the existing one, and the whole portfolio is
// revalued.
func (p *Portfolio) TransactPosition(side common.Side, ticker string, quantity int64, price, commission money.Price, timestamp time.Time, name string) {
	info := p.instrumentInfo(ticker)

	factor := price
	if info.Type == instrument.Future {
		factor = info.Margin
	}
	switch side {
	case common.Bought:
		p.Cash -= factor.MulQty(quantity)
	case common.Sold:
		p.Cash += factor.MulQty(quantity)
	}

	if _, ok := p.Positions[ticker]; !ok {
		p.addPosition(side, ticker, quantity, price, commission, timestamp, name, info)
		return
	}
	p.modifyPosition(side, ticker, quantity, price, commission, name)
}

// Revalue refreshes every open position against the latest quotes and
// rebuilds unrealized P&L and equity
func (p *Portfolio) Revalue() {
	p.UnrealizedPNL = 0
	p.Equity = p.InitialCash + p.RealizedPNL
	for ticker, pos := range p.Positions {
		bid, ask, err := p.marketQuote(ticker)
		if err != nil {
			logs.Errorf("cannot revalue %s: %v", ticker, err)
			continue
		}
		ts, err := p.quotes.LastTimestamp(ticker)
		if err != nil {
			logs.Errorf("cannot revalue %s: %v", ticker, err)
			continue
		}
		pos.UpdateMarketValue(bid, ask, ts)
		p.UnrealizedPNL += pos.UnrealizedPNL
		p.Equity += pos.MarketValue - pos.CostBasis
	}
}

// OpenPosition returns the open position for a ticker, if any
func (p *Portfolio) OpenPosition(ticker string) (*positions.Position, bool) {
	pos, ok := p.Positions[ticker]
	return pos, ok
}

// EquityValue returns current equity
func (p *Portfolio) EquityValue() money.Price {
	return p.Equity
}

// CashValue returns current cash
func (p *Portfolio) CashValue() money.Price {
	return p.Cash
}

// RealizedTotal returns the realized P&L folded in from closed positions
func (p *Portfolio) RealizedTotal() money.Price {
	return p.RealizedPNL
}

// Quotes exposes the price source for sizing decisions
func (p *Portfolio) Quotes() data.Quoter {
	return p.quotes
}

// Reset returns the portfolio to initial cash with no positions
func (p *Portfolio) Reset() {
	p.Cash = p.InitialCash
	p.Equity = p.InitialCash
	p.RealizedPNL = 0
	p.UnrealizedPNL = 0
	p.Positions = make(map[string]*positions.Position)
	p.ClosedPositions = nil
	p.nextID = 0
}

func (p *Portfolio) addPosition(side common.Side, ticker string, quantity int64, price, commission money.Price, timestamp time.Time, name string, info instrument.Details) {
	bid, ask, err := p.marketQuote(ticker)
	if err != nil {
		// trade arrived before any market data for the instrument
		bid, ask = price, price
	}
	p.nextID++
	pos := positions.New(p.nextID, side, ticker, quantity, price, commission, bid, ask, info.Multiplier(), timestamp, name)
	p.Positions[ticker] = pos
	p.Revalue()
}

func (p *Portfolio) modifyPosition(side common.Side, ticker string, quantity int64, price, commission money.Price, name string) {
	pos, ok := p.Positions[ticker]
	if !ok {
		logs.Warnf("ticker %s not in the current position list, cannot modify", ticker)
		return
	}
	pos.TransactShares(side, quantity, price, commission)
	if bid, ask, err := p.marketQuote(ticker); err == nil {
		if ts, tsErr := p.quotes.LastTimestamp(ticker); tsErr == nil {
			pos.UpdateMarketValue(bid, ask, ts)
		}
	}

	if pos.Closed() {
		pos.ExitName = name
		delete(p.Positions, ticker)
		p.RealizedPNL += pos.RealizedPNL
		p.Cash += pos.RealizedPNL
		p.ClosedPositions = append(p.ClosedPositions, pos)
	}
	p.Revalue()
}

// marketQuote returns bid/ask for quote feeds and close/close for bar feeds
func (p *Portfolio) marketQuote(ticker string) (money.Price, money.Price, error) {
	if p.quotes.IsTick() {
		return p.quotes.BestBidAsk(ticker)
	}
	last, err := p.quotes.LastClose(ticker)
	if err != nil {
		return 0, 0, err
	}
	return last, last, nil
}

func (p *Portfolio) instrumentInfo(ticker string) instrument.Details {
	info, err := p.quotes.Instrument(ticker)
	if err != nil {
		logs.Warnf("no instrument metadata for %s, assuming cash instrument: %v", ticker, err)
		return instrument.Equity(ticker)
	}
	return info
}
