package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a test order
func createTestOrder(id string, side Side, price, quantity int64) *Order {
	order := NewOrder(id, side, price, quantity, TimeInForceGFD)
	order.Sequence = 1
	return order
}

// Helper function to create an order with a specific sequence
func createOrderWithSequence(id string, side Side, price, quantity, sequence int64) *Order {
	order := NewOrder(id, side, price, quantity, TimeInForceGFD)
	order.Sequence = sequence
	return order
}

func TestNewLevel(t *testing.T) {
	level := NewLevel(100)

	assert.NotNil(t, level)
	assert.Equal(t, int64(100), level.Price)
	assert.Equal(t, int64(0), level.TotalVolume)
	assert.Empty(t, level.Orders)
	assert.True(t, level.IsEmpty())
}

func TestLevel_AddOrder(t *testing.T) {
	level := NewLevel(100)

	t.Run("Add valid order", func(t *testing.T) {
		order := createTestOrder("order1", SideBuy, 100, 10)
		err := level.AddOrder(order)

		require.NoError(t, err)
		assert.Equal(t, 1, len(level.Orders))
		assert.Equal(t, int64(10), level.TotalVolume)
		assert.Equal(t, level, order.Level)
		assert.False(t, level.IsEmpty())
	})

	t.Run("Add nil order", func(t *testing.T) {
		err := level.AddOrder(nil)
		assert.ErrorIs(t, err, ErrNilOrder)
	})

	t.Run("Add order with zero quantity", func(t *testing.T) {
		order := createTestOrder("order2", SideBuy, 100, 0)
		err := level.AddOrder(order)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("Add multiple orders", func(t *testing.T) {
		level := NewLevel(100)
		order1 := createTestOrder("order1", SideBuy, 100, 10)
		order2 := createTestOrder("order2", SideBuy, 100, 20)

		err1 := level.AddOrder(order1)
		err2 := level.AddOrder(order2)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, 2, len(level.Orders))
		assert.Equal(t, int64(30), level.TotalVolume)
	})
}

func TestLevel_RemoveOrder(t *testing.T) {
	level := NewLevel(100)
	order := createTestOrder("order1", SideBuy, 100, 10)

	// Add order first
	require.NoError(t, level.AddOrder(order))

	t.Run("Remove existing order", func(t *testing.T) {
		err := level.RemoveOrder(order)

		require.NoError(t, err)
		assert.Equal(t, 0, len(level.Orders))
		assert.Equal(t, int64(0), level.TotalVolume)
		assert.Nil(t, order.Level)
		assert.True(t, level.IsEmpty())
	})

	t.Run("Remove nil order", func(t *testing.T) {
		err := level.RemoveOrder(nil)
		assert.ErrorIs(t, err, ErrNilOrder)
	})

	t.Run("Remove order not in level", func(t *testing.T) {
		stranger := createTestOrder("stranger", SideBuy, 100, 5)
		err := level.RemoveOrder(stranger)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestLevel_Fill_Simple(t *testing.T) {
	t.Run("Simple partial fill", func(t *testing.T) {
		level := NewLevel(100)

		// Add a resting sell order
		sellOrder := createTestOrder("sell1", SideSell, 100, 10)
		err := level.AddOrder(sellOrder)
		require.NoError(t, err)

		// Create incoming buy order (smaller)
		buyOrder := createTestOrder("buy1", SideBuy, 100, 5)

		trades := level.Fill(buyOrder)

		require.Equal(t, 1, len(trades))

		trade := trades[0]
		assert.Equal(t, int64(5), trade.Quantity)
		assert.Equal(t, int64(100), trade.Price)
		assert.Equal(t, sellOrder, trade.Resting)
		assert.Equal(t, buyOrder, trade.Aggressor)

		// Check remaining quantities
		assert.Equal(t, int64(0), buyOrder.Quantity)  // Fully filled
		assert.Equal(t, int64(5), sellOrder.Quantity) // Partially filled

		// Check level state
		assert.Equal(t, 1, len(level.Orders))        // Sell order still there
		assert.Equal(t, int64(5), level.TotalVolume) // Volume updated
		assert.False(t, level.IsEmpty())
	})

	t.Run("Exact match", func(t *testing.T) {
		level := NewLevel(100)

		sellOrder := createTestOrder("sell1", SideSell, 100, 10)
		err := level.AddOrder(sellOrder)
		require.NoError(t, err)

		buyOrder := createTestOrder("buy1", SideBuy, 100, 10)

		trades := level.Fill(buyOrder)

		require.Equal(t, 1, len(trades))
		assert.Equal(t, int64(10), trades[0].Quantity)

		// Both orders should be fully filled
		assert.Equal(t, int64(0), buyOrder.Quantity)
		assert.Equal(t, int64(0), sellOrder.Quantity)

		// Level should be empty
		assert.True(t, level.IsEmpty())
		assert.Equal(t, int64(0), level.TotalVolume)
	})

	t.Run("Trade price is the level price", func(t *testing.T) {
		level := NewLevel(90)

		sellOrder := createTestOrder("sell1", SideSell, 90, 10)
		require.NoError(t, level.AddOrder(sellOrder))

		// Aggressor is willing to pay more; it still trades at 90.
		buyOrder := createTestOrder("buy1", SideBuy, 100, 10)

		trades := level.Fill(buyOrder)

		require.Equal(t, 1, len(trades))
		assert.Equal(t, int64(90), trades[0].Price)
	})
}

func TestLevel_Fill_FIFO(t *testing.T) {
	t.Run("FIFO ordering by arrival", func(t *testing.T) {
		level := NewLevel(100)

		order1 := createOrderWithSequence("ask1", SideSell, 100, 10, 1)
		order2 := createOrderWithSequence("ask2", SideSell, 100, 15, 2)
		order3 := createOrderWithSequence("ask3", SideSell, 100, 8, 3)

		require.NoError(t, level.AddOrder(order1))
		require.NoError(t, level.AddOrder(order2))
		require.NoError(t, level.AddOrder(order3))

		// Incoming bid sweeps the first two and part of the third
		incomingOrder := createTestOrder("buy1", SideBuy, 100, 30)

		trades := level.Fill(incomingOrder)

		// Should match in arrival order: ask1, ask2, ask3
		require.Equal(t, 3, len(trades))

		assert.Equal(t, order1, trades[0].Resting)
		assert.Equal(t, int64(10), trades[0].Quantity)

		assert.Equal(t, order2, trades[1].Resting)
		assert.Equal(t, int64(15), trades[1].Quantity)

		assert.Equal(t, order3, trades[2].Resting)
		assert.Equal(t, int64(5), trades[2].Quantity) // Remaining 5 from 30 - 10 - 15

		// Check final state
		assert.Equal(t, 1, len(level.Orders))        // Only ask3 remains (partially filled)
		assert.Equal(t, int64(3), level.TotalVolume) // 8 - 5 = 3 remaining
		assert.True(t, incomingOrder.IsFilled())
	})

	t.Run("Head stays at the head until consumed", func(t *testing.T) {
		level := NewLevel(100)

		order1 := createOrderWithSequence("ask1", SideSell, 100, 10, 1)
		order2 := createOrderWithSequence("ask2", SideSell, 100, 10, 2)

		require.NoError(t, level.AddOrder(order1))
		require.NoError(t, level.AddOrder(order2))

		// Partial fill leaves the head order in place
		trades := level.Fill(createTestOrder("buy1", SideBuy, 100, 4))

		require.Equal(t, 1, len(trades))
		assert.Equal(t, order1, level.Head())
		assert.Equal(t, int64(6), order1.Quantity)
		assert.Equal(t, int64(16), level.TotalVolume)
	})
}

func TestLevel_Validate(t *testing.T) {
	level := NewLevel(100)

	require.NoError(t, level.AddOrder(createOrderWithSequence("o1", SideSell, 100, 10, 1)))
	require.NoError(t, level.AddOrder(createOrderWithSequence("o2", SideSell, 100, 5, 2)))

	assert.NoError(t, level.Validate())

	t.Run("Volume mismatch is detected", func(t *testing.T) {
		level.TotalVolume = 99
		assert.Error(t, level.Validate())
		level.TotalVolume = 15
	})

	t.Run("Arrival order violation is detected", func(t *testing.T) {
		level.Orders[0], level.Orders[1] = level.Orders[1], level.Orders[0]
		assert.Error(t, level.Validate())
		level.Orders[0], level.Orders[1] = level.Orders[1], level.Orders[0]
	})
}
