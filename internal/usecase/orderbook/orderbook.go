package orderbook

import (
	"fmt"
	"sort"
	"sync"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/errors"
)

// Orderbook is the book aggregate: one price-keyed level map per side plus
// the order-id index. The index and the level maps are mutated together
// under one lock, so between operations the index keys are exactly the ids
// resting in the book.
type Orderbook struct {
	mu        sync.RWMutex
	AskLevels map[int64]*orderbookv1.Level  // price -> level
	BidLevels map[int64]*orderbookv1.Level  // price -> level
	Orders    map[string]*orderbookv1.Order // orderID -> order

	sequence int64 // arrival counter, assigned on every insertion
}

// NewOrderbook creates a new orderbook
func NewOrderbook() *Orderbook {
	return &Orderbook{
		AskLevels: make(map[int64]*orderbookv1.Level),
		BidLevels: make(map[int64]*orderbookv1.Level),
		Orders:    make(map[string]*orderbookv1.Order),
	}
}

// PlaceOrder runs the matching protocol for an incoming aggressor and
// returns the trades in consumption order. The aggressor sweeps crossing
// levels best-outward, trading at each resting order's price; any residue
// rests in the book when the order is GFD and is discarded when it is IOC.
func (ob *Orderbook) PlaceOrder(order *orderbookv1.Order) ([]*orderbookv1.Trade, error) {
	if order == nil {
		return nil, fmt.Errorf("order cannot be nil")
	}
	if order.Price <= 0 {
		return nil, errors.NewErrorDetails("price must be positive", string(errors.InvalidPriceError), "price")
	}
	if order.Quantity <= 0 {
		return nil, errors.NewErrorDetails("quantity must be positive", string(errors.InvalidQuantityError), "quantity")
	}
	if order.ID == "" {
		return nil, errors.NewErrorDetails("order id cannot be empty", string(errors.EmptyOrderIDError), "orderID")
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	if _, exists := ob.Orders[order.ID]; exists {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("order with id %s already rests in the book", order.ID),
			string(errors.DuplicateOrderError),
			"orderID",
		)
	}

	return ob.placeLocked(order), nil
}

// placeLocked matches the aggressor and disposes of the residue. Callers
// hold ob.mu and have verified the id is not in the index.
func (ob *Orderbook) placeLocked(order *orderbookv1.Order) []*orderbookv1.Trade {
	var trades []*orderbookv1.Trade

	// Opposite-side levels in price priority order, best first.
	var levels orderbookv1.Levels
	if order.IsBid() {
		for price := range ob.AskLevels {
			levels = append(levels, ob.AskLevels[price])
		}
		sort.Sort(orderbookv1.ByBestAsk{Levels: levels})
	} else {
		for price := range ob.BidLevels {
			levels = append(levels, ob.BidLevels[price])
		}
		sort.Sort(orderbookv1.ByBestBid{Levels: levels})
	}

	for _, level := range levels {
		if order.Quantity <= 0 {
			break
		}
		if !order.Crosses(level.Price) {
			break
		}

		levelTrades := level.Fill(order)
		trades = append(trades, levelTrades...)

		// Fully consumed resting orders leave the id index with the level.
		for _, trade := range levelTrades {
			if trade.RestingIsFilled() {
				delete(ob.Orders, trade.Resting.ID)
			}
		}

		if level.IsEmpty() {
			if order.IsBid() {
				delete(ob.AskLevels, level.Price)
			} else {
				delete(ob.BidLevels, level.Price)
			}
		}
	}

	// Residue disposition: GFD rests, IOC never reaches the book.
	if order.Quantity > 0 && order.TIF == orderbookv1.TimeInForceGFD {
		ob.insertLocked(order)
	}

	return trades
}

// insertLocked appends the order to its price level, creating the level if
// absent, stamps the arrival sequence and indexes the id.
func (ob *Orderbook) insertLocked(order *orderbookv1.Order) {
	limits := ob.AskLevels
	if order.IsBid() {
		limits = ob.BidLevels
	}

	level, exists := limits[order.Price]
	if !exists {
		level = orderbookv1.NewLevel(order.Price)
		limits[order.Price] = level
	}

	ob.sequence++
	order.Sequence = ob.sequence

	// AddOrder only rejects nil orders and non-positive quantities, both
	// checked before matching started.
	_ = level.AddOrder(order)

	ob.Orders[order.ID] = order
}

// CancelOrder removes a resting order. An unknown id leaves the book
// untouched and reports UnknownOrderError, which the driver treats as a
// no-op; cancelling twice is therefore the same as cancelling once.
func (ob *Orderbook) CancelOrder(orderID string) error {
	if orderID == "" {
		return errors.NewErrorDetails("order id cannot be empty", string(errors.EmptyOrderIDError), "orderID")
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	return ob.removeLocked(orderID)
}

// removeLocked erases the order from its stored level and the id index,
// dropping the level if it empties.
func (ob *Orderbook) removeLocked(orderID string) error {
	order, exists := ob.Orders[orderID]
	if !exists {
		return errors.NewErrorDetails(
			fmt.Sprintf("order with id %s does not rest in the book", orderID),
			string(errors.UnknownOrderError),
			"orderID",
		)
	}

	// Keep the level reference: RemoveOrder clears order.Level.
	level := order.Level

	if level != nil {
		if err := level.RemoveOrder(order); err != nil {
			return err
		}

		if level.IsEmpty() {
			if order.IsBid() {
				delete(ob.BidLevels, level.Price)
			} else {
				delete(ob.AskLevels, level.Price)
			}
		}
	}

	delete(ob.Orders, orderID)

	return nil
}

// ModifyOrder is cancel-then-new-aggressor: the resting order is removed and
// a fresh GFD order with the same id re-enters through the matching
// protocol, so it loses its arrival priority and may trade immediately.
// Side changes are honoured. An unknown id leaves the book untouched.
func (ob *Orderbook) ModifyOrder(orderID string, side orderbookv1.Side, price, quantity int64) ([]*orderbookv1.Trade, error) {
	if price <= 0 {
		return nil, errors.NewErrorDetails("price must be positive", string(errors.InvalidPriceError), "price")
	}
	if quantity <= 0 {
		return nil, errors.NewErrorDetails("quantity must be positive", string(errors.InvalidQuantityError), "quantity")
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	if err := ob.removeLocked(orderID); err != nil {
		return nil, err
	}

	replacement := orderbookv1.NewOrder(orderID, side, price, quantity, orderbookv1.TimeInForceGFD)
	return ob.placeLocked(replacement), nil
}

// Asks returns ask levels sorted by price (ascending)
func (ob *Orderbook) Asks() []*orderbookv1.Level {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	var levels orderbookv1.Levels
	for _, level := range ob.AskLevels {
		levels = append(levels, level)
	}
	sort.Sort(orderbookv1.ByBestAsk{Levels: levels})
	return levels
}

// Bids returns bid levels sorted by price (descending)
func (ob *Orderbook) Bids() []*orderbookv1.Level {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	var levels orderbookv1.Levels
	for _, level := range ob.BidLevels {
		levels = append(levels, level)
	}
	sort.Sort(orderbookv1.ByBestBid{Levels: levels})
	return levels
}

// BestAsk returns the lowest ask price, or false when the side is empty.
func (ob *Orderbook) BestAsk() (int64, bool) {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	var best int64
	found := false
	for price := range ob.AskLevels {
		if !found || price < best {
			best = price
			found = true
		}
	}
	return best, found
}

// BestBid returns the highest bid price, or false when the side is empty.
func (ob *Orderbook) BestBid() (int64, bool) {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	var best int64
	found := false
	for price := range ob.BidLevels {
		if !found || price > best {
			best = price
			found = true
		}
	}
	return best, found
}

// AskTotalVolume returns total resting ask quantity
func (ob *Orderbook) AskTotalVolume() int64 {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	var total int64
	for _, level := range ob.AskLevels {
		total += level.TotalVolume
	}
	return total
}

// BidTotalVolume returns total resting bid quantity
func (ob *Orderbook) BidTotalVolume() int64 {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	var total int64
	for _, level := range ob.BidLevels {
		total += level.TotalVolume
	}
	return total
}

// Snapshot creates a consistent cut of the book in print order: both sides
// descending by price, FIFO within each level, one entry per resting order.
func (ob *Orderbook) Snapshot(pair string) *snapshotv1.Snapshot {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	snapshot := &snapshotv1.Snapshot{Pair: pair}

	var askLevels orderbookv1.Levels
	for _, level := range ob.AskLevels {
		askLevels = append(askLevels, level)
	}
	// Ask side prints highest first so the inside market sits in the middle
	// of the SELL and BUY blocks.
	sort.Sort(orderbookv1.ByBestBid{Levels: askLevels})
	for _, level := range askLevels {
		for _, order := range level.Orders {
			snapshot.Asks = append(snapshot.Asks, snapshotv1.BookOrder{
				OrderID:  order.ID,
				Price:    level.Price,
				Quantity: order.Quantity,
				Sequence: order.Sequence,
			})
		}
	}

	var bidLevels orderbookv1.Levels
	for _, level := range ob.BidLevels {
		bidLevels = append(bidLevels, level)
	}
	sort.Sort(orderbookv1.ByBestBid{Levels: bidLevels})
	for _, level := range bidLevels {
		for _, order := range level.Orders {
			snapshot.Bids = append(snapshot.Bids, snapshotv1.BookOrder{
				OrderID:  order.ID,
				Price:    level.Price,
				Quantity: order.Quantity,
				Sequence: order.Sequence,
			})
		}
	}

	return snapshot
}

// Validate checks the aggregate's invariants: index and book agree, no
// empty levels, every level internally consistent, no resting IOC order,
// and the book is non-crossed at rest.
func (ob *Orderbook) Validate() error {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	resting := 0
	for _, sideLevels := range []map[int64]*orderbookv1.Level{ob.AskLevels, ob.BidLevels} {
		for price, level := range sideLevels {
			if level.IsEmpty() {
				return fmt.Errorf("empty level at price %d", price)
			}
			if level.Price != price {
				return fmt.Errorf("level keyed at %d carries price %d", price, level.Price)
			}
			if err := level.Validate(); err != nil {
				return err
			}
			for _, order := range level.Orders {
				if order.TIF == orderbookv1.TimeInForceIOC {
					return fmt.Errorf("IOC order %s rests in the book", order.ID)
				}
				indexed, ok := ob.Orders[order.ID]
				if !ok {
					return fmt.Errorf("order %s rests in the book but is not indexed", order.ID)
				}
				if indexed != order {
					return fmt.Errorf("index entry for %s points at a different order", order.ID)
				}
				resting++
			}
		}
	}

	if resting != len(ob.Orders) {
		return fmt.Errorf("index holds %d ids, book holds %d orders", len(ob.Orders), resting)
	}

	bestBid, hasBid := int64(0), false
	for price := range ob.BidLevels {
		if !hasBid || price > bestBid {
			bestBid = price
			hasBid = true
		}
	}
	bestAsk, hasAsk := int64(0), false
	for price := range ob.AskLevels {
		if !hasAsk || price < bestAsk {
			bestAsk = price
			hasAsk = true
		}
	}
	if hasBid && hasAsk && bestBid >= bestAsk {
		return fmt.Errorf("book is crossed at rest: best bid %d, best ask %d", bestBid, bestAsk)
	}

	return nil
}
