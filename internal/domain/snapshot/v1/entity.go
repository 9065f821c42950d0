package snapshotv1

// Snapshot represents a consistent cut of the order book at a command
// boundary, in print order: both sides descending by price so the two
// halves meet at the inside market, FIFO within each price level.
type Snapshot struct {
	Pair string      `json:"pair"`
	Asks []BookOrder `json:"asks"`
	Bids []BookOrder `json:"bids"`
}

// BookOrder represents one resting order in the snapshot.
type BookOrder struct {
	OrderID  string `json:"orderID"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Sequence int64  `json:"sequence"`
}
