package sinkv1

import (
	orderbookv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/snapshot/v1"
)

// Sink is the append-only destination for trade and snapshot lines.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=sinkv1_mock
type Sink interface {
	// TradeExecuted appends one TRADE line for a filled leg.
	TradeExecuted(trade *orderbookv1.Trade) error
	// BookSnapshot appends the SELL/BUY block for a PRINT.
	BookSnapshot(snapshot *snapshotv1.Snapshot) error
	// Flush forces buffered output to the underlying writer.
	Flush() error
}
