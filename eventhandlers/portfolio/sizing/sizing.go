package sizing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/order"
	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
)

// SizeOrder applies the fixed quantity to entries. Suggestions that already
// carry a quantity, such as exits, pass through untouched.
func (s *Fixed) SizeOrder(_ PortfolioInfo, o *order.Suggested) (*order.Suggested, error) {
	if o == nil {
		return nil, common.ErrNilEvent
	}
	if o.Quantity != 0 {
		return o, nil
	}
	o.Quantity = s.Quantity
	return o, nil
}

// SizeOrder buys or sells as many whole shares as the fixed notional covers
// at the last close, or as many contracts as it covers in per-contract margin
// for derivative instruments. Pre-sized suggestions pass through untouched.
func (s *FixedDollar) SizeOrder(p PortfolioInfo, o *order.Suggested) (*order.Suggested, error) {
	if o == nil {
		return nil, common.ErrNilEvent
	}
	if o.Quantity != 0 {
		return o, nil
	}

	q := p.Quotes()
	det, err := q.Instrument(o.Ticker)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errNoQuote, o.Ticker, err)
	}

	denom := det.Margin
	if det.Type != instrument.Future {
		denom, err = q.LastClose(o.Ticker)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errNoQuote, o.Ticker, err)
		}
	}
	if denom <= 0 {
		if det.Type == instrument.Future {
			return nil, fmt.Errorf("%w: %s", errNoMargin, o.Ticker)
		}
		return nil, fmt.Errorf("%w: %s", errNoQuote, o.Ticker)
	}
	o.Quantity = int64(s.Amount) / int64(denom)
	return o, nil
}

// SizeOrder exposes a fraction of current equity, split evenly across the
// sizer's scale-in tranches. The order's Unit selects which tranche this
// entry fills; earlier tranches receive the rounding surplus so the tranche
// quantities never grow as the position scales in.
func (s *Fractional) SizeOrder(p PortfolioInfo, o *order.Suggested) (*order.Suggested, error) {
	if o == nil {
		return nil, common.ErrNilEvent
	}
	if o.Quantity != 0 {
		return o, nil
	}

	fraction := s.Fraction
	if s.UseOrderFraction && !o.Fraction.IsZero() {
		fraction = o.Fraction
	}
	if fraction.IsZero() {
		return nil, fmt.Errorf("%w: %s", errBadFraction, o.Ticker)
	}

	denom := s.DollarPerContract
	if denom == 0 {
		px, err := sidePrice(p, o)
		if err != nil {
			return nil, err
		}
		denom = px
	}
	if denom <= 0 {
		return nil, fmt.Errorf("%w: %s", errNoQuote, o.Ticker)
	}

	units := s.Units
	if units < 1 {
		units = 1
	}
	unit := o.Unit
	if unit < 1 {
		unit = 1
	}
	if unit > units {
		unit = units
	}

	dollars := p.EquityValue().Decimal().Mul(fraction.Abs())
	total := dollars.Div(denom.Decimal()).IntPart()
	o.Quantity = unitShare(total, units, unit)
	return o, nil
}

// SizeOrder computes the signed target quantity from the order's exposure
// fraction, the sizer's scale and current equity, then emits whatever buy or
// sell closes the gap to the current position. An order fraction of zero
// liquidates whatever is open. A zero gap is a no-op and returns nil.
// Rotational strategies must not pre-size their suggestions; a non-zero
// quantity is a protocol violation and reported as an error.
func (s *Rotational) SizeOrder(p PortfolioInfo, o *order.Suggested) (*order.Suggested, error) {
	if o == nil {
		return nil, common.ErrNilEvent
	}
	if o.Quantity != 0 {
		return nil, fmt.Errorf("%w: %s quantity %d", errNonZeroQuantity, o.Ticker, o.Quantity)
	}

	var current int64
	if pos, ok := p.OpenPosition(o.Ticker); ok {
		current = pos.NetQuantity()
	}

	if o.Fraction.IsZero() {
		if current == 0 {
			return nil, nil
		}
		if current > 0 {
			o.Action = common.Sold
			o.Quantity = current
		} else {
			o.Action = common.Bought
			o.Quantity = -current
		}
		return o, nil
	}

	scale := s.Fraction
	if scale.IsZero() {
		scale = decimal.NewFromInt(1)
	}

	px, err := p.Quotes().LastClose(o.Ticker)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errNoQuote, o.Ticker, err)
	}
	if px <= 0 {
		return nil, fmt.Errorf("%w: %s", errNoQuote, o.Ticker)
	}

	target := p.EquityValue().Decimal().Mul(scale).Mul(o.Fraction).Div(px.Decimal()).IntPart()

	delta := target - current
	if delta == 0 {
		return nil, nil
	}
	if delta > 0 {
		o.Action = common.Bought
		o.Quantity = delta
	} else {
		o.Action = common.Sold
		o.Quantity = -delta
	}
	return o, nil
}

// sidePrice returns the price a new entry would transact at: the order's
// pre-agreed price when set, the touch on the relevant side for tick feeds,
// or the last close for bar feeds
func sidePrice(p PortfolioInfo, o *order.Suggested) (money.Price, error) {
	if o.Price > 0 {
		return o.Price, nil
	}
	q := p.Quotes()
	if q.IsTick() {
		bid, ask, err := q.BestBidAsk(o.Ticker)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", errNoQuote, o.Ticker, err)
		}
		if o.Action == common.Sold {
			return bid, nil
		}
		return ask, nil
	}
	px, err := q.LastClose(o.Ticker)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", errNoQuote, o.Ticker, err)
	}
	return px, nil
}

// unitShare splits total across units tranches, each tranche taking the
// ceiling of an even share of what the earlier tranches left behind
func unitShare(total, units, unit int64) int64 {
	if total <= 0 {
		return 0
	}
	remaining := total
	var share int64
	for i := int64(1); i <= unit; i++ {
		left := units - i + 1
		share = (remaining + left - 1) / left
		remaining -= share
	}
	return share
}

// interface assertions
var (
	_ Handler = (*Fixed)(nil)
	_ Handler = (*FixedDollar)(nil)
	_ Handler = (*Fractional)(nil)
	_ Handler = (*Rotational)(nil)
)
