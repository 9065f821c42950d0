package orderbookv1

import "strings"

// Side represents which half of the book an order belongs to.
type Side string

const (
	// SideBuy represents a bid order.
	SideBuy Side = "BUY"
	// SideSell represents an ask order.
	SideSell Side = "SELL"
)

// ParseSide parses a side token case-insensitively.
func ParseSide(token string) (Side, bool) {
	switch Side(strings.ToUpper(token)) {
	case SideBuy:
		return SideBuy, true
	case SideSell:
		return SideSell, true
	default:
		return "", false
	}
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// TimeInForce represents how long an order may remain active.
type TimeInForce string

const (
	// TimeInForceIOC trades what it can on arrival; any residue is discarded.
	TimeInForceIOC TimeInForce = "IOC"
	// TimeInForceGFD rests in the book until cancelled or the stream ends.
	TimeInForceGFD TimeInForce = "GFD"
)

// ParseTimeInForce parses a time-in-force token case-insensitively.
func ParseTimeInForce(token string) (TimeInForce, bool) {
	switch TimeInForce(strings.ToUpper(token)) {
	case TimeInForceIOC:
		return TimeInForceIOC, true
	case TimeInForceGFD:
		return TimeInForceGFD, true
	default:
		return "", false
	}
}

// Order represents a single order in the order book. Price and Quantity are
// positive integers; Sequence is assigned by the book on insertion and
// determines arrival priority within a price level.
type Order struct {
	ID       string      `json:"id"`
	Side     Side        `json:"side"`
	Price    int64       `json:"price"`
	Quantity int64       `json:"quantity"`
	TIF      TimeInForce `json:"tif"`
	Level    *Level      `json:"-"`
	Sequence int64       `json:"sequence"`
}

// NewOrder creates a new order with the given parameters.
func NewOrder(id string, side Side, price, quantity int64, tif TimeInForce) *Order {
	return &Order{
		ID:       id,
		Side:     side,
		Price:    price,
		Quantity: quantity,
		TIF:      tif,
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return o.Side == SideSell
}

// IsFilled checks if the order is filled (quantity is zero).
func (o *Order) IsFilled() bool {
	return o.Quantity == 0
}

// Crosses reports whether the order's limit permits a trade at the given
// resting price: a buy crosses at or below its limit, a sell at or above.
func (o *Order) Crosses(restingPrice int64) bool {
	if o.IsBid() {
		return o.Price >= restingPrice
	}
	return o.Price <= restingPrice
}
