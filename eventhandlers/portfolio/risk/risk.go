package risk

import (
	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/order"
)

// RefineOrders approves the suggestion unchanged, dropping zero quantities
func (r *Passthrough) RefineOrders(_ PortfolioInfo, o *order.Suggested) ([]*order.Order, error) {
	if o == nil {
		return nil, common.ErrNilEvent
	}
	if o.Quantity == 0 {
		return nil, nil
	}
	return []*order.Order{order.New(o)}, nil
}

var _ Handler = (*Passthrough)(nil)
