package orderbookv1

import (
	"errors"
	"fmt"
)

var (
	ErrNilOrder      = errors.New("order cannot be nil")
	ErrInvalidPrice  = errors.New("price must be positive")
	ErrInvalidSize   = errors.New("quantity must be positive")
	ErrOrderNotFound = errors.New("order not found in level")
)

// Level represents a price level in the order book with its resting orders.
// Orders are kept in arrival order, so the slice order is the FIFO order.
type Level struct {
	Price       int64    `json:"price"`
	Orders      []*Order `json:"orders"`
	TotalVolume int64    `json:"totalVolume"`
}

// NewLevel creates a new Level with the specified price.
func NewLevel(price int64) *Level {
	return &Level{
		Price:  price,
		Orders: make([]*Order, 0),
	}
}

// AddOrder appends an order to the level and updates the total volume.
func (l *Level) AddOrder(order *Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if order.Quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, order.Quantity)
	}

	order.Level = l
	l.Orders = append(l.Orders, order)
	l.TotalVolume += order.Quantity

	return nil
}

// RemoveOrder removes an order from the level and updates the total volume.
func (l *Level) RemoveOrder(order *Order) error {
	if order == nil {
		return ErrNilOrder
	}

	for i, o := range l.Orders {
		if o == order {
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			l.TotalVolume -= order.Quantity
			order.Level = nil
			return nil
		}
	}

	return ErrOrderNotFound
}

// Fill matches the level against an incoming aggressor and returns the
// trades in consumption order. Resting orders are consumed head first; the
// trade price is always the level price (the resting order's price). Fully
// consumed resting orders are removed from the level.
func (l *Level) Fill(aggressor *Order) []*Trade {
	if aggressor == nil {
		return nil
	}

	var trades []*Trade
	var ordersToRemove []*Order

	for _, resting := range l.Orders {
		if aggressor.Quantity <= 0 {
			break
		}

		trade := l.createTrade(aggressor, resting)
		trades = append(trades, trade)

		l.TotalVolume -= trade.Quantity

		if resting.Quantity <= 0 {
			ordersToRemove = append(ordersToRemove, resting)
		}
	}

	for _, order := range ordersToRemove {
		l.removeOrderUnsafe(order)
	}

	return trades
}

// createTrade fills the smaller of the two quantities at the level price.
func (l *Level) createTrade(aggressor, resting *Order) *Trade {
	var quantity int64

	if aggressor.Quantity >= resting.Quantity {
		quantity = resting.Quantity
		aggressor.Quantity -= resting.Quantity
		resting.Quantity = 0
	} else {
		quantity = aggressor.Quantity
		resting.Quantity -= aggressor.Quantity
		aggressor.Quantity = 0
	}

	return &Trade{
		Resting:   resting,
		Aggressor: aggressor,
		Quantity:  quantity,
		Price:     l.Price,
	}
}

// removeOrderUnsafe removes order without bookkeeping on TotalVolume, which
// Fill has already adjusted.
func (l *Level) removeOrderUnsafe(order *Order) {
	for i, o := range l.Orders {
		if o == order {
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			order.Level = nil
			break
		}
	}
}

// IsEmpty checks if the level has no orders
func (l *Level) IsEmpty() bool {
	return len(l.Orders) == 0
}

// OrderCount returns the number of orders at this level
func (l *Level) OrderCount() int {
	return len(l.Orders)
}

// Head returns the first resting order in FIFO order, or nil when empty.
func (l *Level) Head() *Order {
	if len(l.Orders) == 0 {
		return nil
	}
	return l.Orders[0]
}

// GetOrders returns a copy of the orders slice in FIFO order.
func (l *Level) GetOrders() []*Order {
	orders := make([]*Order, len(l.Orders))
	copy(orders, l.Orders)
	return orders
}

// Validate performs basic validation of the level's state.
func (l *Level) Validate() error {
	if l.Price <= 0 {
		return fmt.Errorf("%w: level price %d", ErrInvalidPrice, l.Price)
	}

	var calculatedVolume int64
	var prevSequence int64
	for _, order := range l.Orders {
		if order == nil {
			return fmt.Errorf("nil order found in level")
		}
		if order.Quantity <= 0 {
			return fmt.Errorf("%w: order %s has quantity %d", ErrInvalidSize, order.ID, order.Quantity)
		}
		if order.Sequence <= prevSequence {
			return fmt.Errorf("orders out of arrival order at price %d", l.Price)
		}
		prevSequence = order.Sequence
		calculatedVolume += order.Quantity
	}

	if calculatedVolume != l.TotalVolume {
		return fmt.Errorf("volume mismatch: calculated %d, stored %d", calculatedVolume, l.TotalVolume)
	}

	return nil
}
