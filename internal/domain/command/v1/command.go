package commandv1

import (
	orderbookv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/orderbook/v1"
)

// Type identifies the verb of a parsed command line.
type Type string

const (
	// TypeBuy places a buy order.
	TypeBuy Type = "BUY"
	// TypeSell places a sell order.
	TypeSell Type = "SELL"
	// TypeModify replaces a resting order's price and quantity, resetting its arrival priority.
	TypeModify Type = "MODIFY"
	// TypeCancel withdraws a resting order.
	TypeCancel Type = "CANCEL"
	// TypePrint requests a book snapshot.
	TypePrint Type = "PRINT"
)

// Command is the tagged-variant record for one parsed command line. Which
// fields are meaningful depends on Type: BUY/SELL carry TIF, Price, Quantity
// and OrderID; MODIFY carries OrderID, Side, Price and Quantity; CANCEL
// carries OrderID; PRINT carries nothing.
type Command struct {
	Type     Type                    `json:"type"`
	OrderID  string                  `json:"orderID,omitempty"`
	Side     orderbookv1.Side        `json:"side,omitempty"`
	TIF      orderbookv1.TimeInForce `json:"tif,omitempty"`
	Price    int64                   `json:"price,omitempty"`
	Quantity int64                   `json:"quantity,omitempty"`
}

// IsOrder reports whether the command places a new order.
func (c *Command) IsOrder() bool {
	return c.Type == TypeBuy || c.Type == TypeSell
}

// ToOrder builds the order a BUY or SELL command places.
func (c *Command) ToOrder() *orderbookv1.Order {
	return orderbookv1.NewOrder(c.OrderID, c.Side, c.Price, c.Quantity, c.TIF)
}
