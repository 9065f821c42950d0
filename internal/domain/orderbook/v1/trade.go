package orderbookv1

// Trade represents one filled leg between a resting order and the aggressor
// whose arrival triggered it. Price is the resting order's price.
type Trade struct {
	Resting   *Order `json:"resting"`
	Aggressor *Order `json:"aggressor"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
}

// RestingIsFilled checks if the resting order is fully consumed.
func (t *Trade) RestingIsFilled() bool {
	return t.Resting.Quantity <= 0
}

// AggressorIsFilled checks if the aggressor is fully consumed.
func (t *Trade) AggressorIsFilled() bool {
	return t.Aggressor.Quantity <= 0
}
