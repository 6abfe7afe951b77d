package positions

import (
	"time"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/money"
)

// New opens a position with its initial lot and marks it against the given
// bid/ask. Multiplier is the instrument's big point value; 1 for cash
// instruments.
func New(id int64, side common.Side, ticker string, quantity int64, price, commission, bid, ask money.Price, multiplier int64, entryTime time.Time, entryName string) *Position {
	if multiplier <= 0 {
		multiplier = 1
	}
	p := &Position{
		ID:         id,
		Side:       side,
		Ticker:     ticker,
		Multiplier: multiplier,
		EntryName:  entryName,
		EntryTime:  entryTime,
		current:    entryTime,
	}
	p.appendLot(side, quantity, price, commission)
	p.TotalCommission = commission
	p.recompute()
	p.UpdateMarketValue(bid, ask, entryTime)
	return p
}

// TransactShares applies a new trade to the position. A same-side trade adds
// a lot; an opposite-side trade consumes open lots oldest-first, accruing
// realized P&L per matched lot. A closing trade larger than the open
// quantity flips the position: the leftover quantity stays open as a lot on
// the new side and the position's side changes with it.
func (p *Position) TransactShares(side common.Side, quantity int64, price, commission money.Price) {
	lot := p.appendLot(side, quantity, price, commission)

	if side != p.Side {
		remaining := p.consume(side, quantity, price, commission)
		lot.Remaining = remaining
		if remaining > 0 {
			// all entry-side lots drained with trade quantity left over
			p.Side = side
		}
	}

	p.TotalCommission += commission
	p.recompute()
}

// consume matches the closing trade against the entry side's lots in strict
// FIFO order and accumulates realized P&L, returning the unmatched quantity.
// Each step truncates toward zero: the consumed lot's commission is
// apportioned by matched/original quantity, and the closing trade's own
// commission is charged once, at the step where it is fully consumed.
func (p *Position) consume(side common.Side, quantity int64, price, commission money.Price) int64 {
	entries := p.Bought
	if p.Side == common.Sold {
		entries = p.Sold
	}

	remaining := quantity
	var realized money.Price
	for i := range entries {
		l := &entries[i]
		if l.Remaining == 0 {
			continue
		}
		matched := l.Remaining
		if remaining < matched {
			matched = remaining
		}

		diff := price - l.Price
		if side == common.Bought { // buying back a short
			diff = l.Price - price
		}
		step := diff.MulQty(matched * p.Multiplier)
		step -= money.Price(int64(l.Commission) * matched / l.Quantity)

		l.Remaining -= matched
		remaining -= matched
		if remaining == 0 {
			step -= commission
			realized += step
			break
		}
		realized += step
	}
	p.RealizedPNL += realized
	return remaining
}

// UpdateMarketValue recomputes market value and unrealized P&L from the
// remaining open lots. Long positions are marked at the best bid, shorts at
// the best ask; bar-based feeds supply the last close for both sides.
func (p *Position) UpdateMarketValue(bid, ask money.Price, timestamp time.Time) {
	var mv money.Price
	if p.Side == common.Bought {
		for i := range p.Bought {
			mv += bid.MulQty(p.Bought[i].Remaining)
		}
	} else {
		for i := range p.Sold {
			mv -= ask.MulQty(p.Sold[i].Remaining)
		}
	}
	p.MarketValue = mv.MulQty(p.Multiplier)
	p.UnrealizedPNL = p.MarketValue - p.CostBasis
	p.ExitTime = timestamp
	if !p.current.Equal(timestamp) {
		p.TimeInPosition++
		p.current = timestamp
	}
}

// NetQuantity returns the signed open quantity: positive long, negative
// short.
func (p *Position) NetQuantity() int64 {
	if p.Side == common.Sold {
		return -p.OpenQuantity
	}
	return p.OpenQuantity
}

// Closed reports whether every open lot has been consumed
func (p *Position) Closed() bool {
	return p.OpenQuantity == 0
}

func (p *Position) appendLot(side common.Side, quantity int64, price, commission money.Price) *Lot {
	notional := price.MulQty(quantity * p.Multiplier)
	lot := Lot{
		Quantity:   quantity,
		Remaining:  quantity,
		Price:      price,
		Commission: commission,
	}
	if side == common.Bought {
		lot.InitialCost = absPrice(notional + commission)
		p.Bought = append(p.Bought, lot)
		return &p.Bought[len(p.Bought)-1]
	}
	lot.InitialCost = absPrice(-notional + commission)
	p.Sold = append(p.Sold, lot)
	return &p.Sold[len(p.Sold)-1]
}

// recompute rebuilds the derived fields from the lot history. Cost basis
// only ever reflects remaining open quantity, with each lot's commission
// apportioned by its remaining share.
func (p *Position) recompute() {
	var boughtCost, soldCost money.Price
	var boughtCB, soldCB money.Price
	var boughtQty, soldQty, boughtOpen, soldOpen int64

	for i := range p.Bought {
		l := &p.Bought[i]
		boughtCB += l.Price.MulQty(l.Remaining*p.Multiplier) + apportion(l, l.Remaining)
		boughtCost += l.InitialCost
		boughtQty += l.Quantity
		boughtOpen += l.Remaining
	}
	for i := range p.Sold {
		l := &p.Sold[i]
		soldCB -= l.Price.MulQty(l.Remaining*p.Multiplier) - apportion(l, l.Remaining)
		soldCost += l.InitialCost
		soldQty += l.Quantity
		soldOpen += l.Remaining
	}

	if p.Side == common.Bought {
		p.Quantity = boughtQty
		p.OpenQuantity = boughtOpen
		p.CostBasis = boughtCB
		p.EntryPrice = avgPrice(boughtCost, boughtQty, p.Multiplier)
		p.ExitPrice = avgPrice(soldCost, soldQty, p.Multiplier)
	} else {
		p.Quantity = soldQty
		p.OpenQuantity = soldOpen
		p.CostBasis = soldCB
		p.EntryPrice = avgPrice(soldCost, soldQty, p.Multiplier)
		p.ExitPrice = avgPrice(boughtCost, boughtQty, p.Multiplier)
	}

	if p.ExitPrice == 0 || p.EntryPrice == 0 {
		p.TradeReturn = 0
	} else {
		p.TradeReturn = float64(p.ExitPrice)/float64(p.EntryPrice) - 1
	}
}

// apportion is the lot commission share attributable to qty units
func apportion(l *Lot, qty int64) money.Price {
	if l.Quantity == 0 {
		return 0
	}
	return money.Price(int64(l.Commission) * qty / l.Quantity)
}

func avgPrice(cost money.Price, qty, multiplier int64) money.Price {
	if qty == 0 {
		return 0
	}
	return cost / money.Price(qty) / money.Price(multiplier)
}

func absPrice(p money.Price) money.Price {
	if p < 0 {
		return -p
	}
	return p
}
