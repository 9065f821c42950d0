package engine

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"

	commandreader "github.com/muhammadchandra19/exchange/services/order-book/internal/usecase/command-reader"
	"github.com/muhammadchandra19/exchange/services/order-book/internal/usecase/orderbook"
	"github.com/muhammadchandra19/exchange/services/order-book/internal/usecase/sink"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/config"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/logger"
)

// Benchmark test cases structure
type benchmarkTestCase struct {
	name        string
	setupEngine func(*testing.B) *Engine
	setupData   func(*Engine, *testing.B)
	operation   func(*Engine, int)
	cleanup     func(*Engine)
}

func setupBenchmarkEngine(b *testing.B) *Engine {
	ob := orderbook.NewOrderbook()
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	if err != nil {
		b.Fatal(err)
	}

	cfg := &config.Config{
		Pair: "BTC-USD",
	}

	reader := commandreader.NewLineReader(strings.NewReader(""), log)
	writer := sink.NewWriter(io.Discard, log)

	// Batched flushing keeps the benchmark on the book, not the writer.
	return NewEngineWithOptions(ob, reader, writer, log, cfg, &Options{
		FlushPerCommand: false,
	})
}

// benchOrderLine builds a GFD order line with a unique id.
func benchOrderLine(side string, price, quantity int64) string {
	return fmt.Sprintf("%s GFD %d %d %s", side, price, quantity, ulid.Make().String())
}

func BenchmarkEngine_ProcessOrderLine(b *testing.B) {
	testCases := []benchmarkTestCase{
		{
			name:        "resting_limit_orders",
			setupEngine: setupBenchmarkEngine,
			setupData:   func(e *Engine, b *testing.B) {},
			operation: func(e *Engine, i int) {
				// Bids below asks so nothing crosses
				if i%2 == 0 {
					e.processLine(benchOrderLine("BUY", 49000-int64(i%100), 10))
				} else {
					e.processLine(benchOrderLine("SELL", 50000+int64(i%100), 10))
				}
			},
			cleanup: func(e *Engine) {},
		},
		{
			name:        "crossing_orders",
			setupEngine: setupBenchmarkEngine,
			setupData: func(e *Engine, b *testing.B) {
				// Seed liquidity for the aggressors to consume
				for i := 0; i < 1000; i++ {
					e.processLine(benchOrderLine("SELL", 50000+int64(i), 1000))
				}
			},
			operation: func(e *Engine, i int) {
				e.processLine(benchOrderLine("BUY", 50000+int64(i%100), 5))
			},
			cleanup: func(e *Engine) {},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := tc.setupEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.operation(engine, i)
			}
			b.StopTimer()

			tc.cleanup(engine)
		})
	}
}

func BenchmarkEngine_CancelReplace(b *testing.B) {
	testCases := []benchmarkTestCase{
		{
			name:        "modify_resting_order",
			setupEngine: setupBenchmarkEngine,
			setupData: func(e *Engine, b *testing.B) {
				e.processLine("BUY GFD 49000 10 pinned")
			},
			operation: func(e *Engine, i int) {
				e.processLine(fmt.Sprintf("MODIFY pinned BUY %d 10", 48000+int64(i%1000)))
			},
			cleanup: func(e *Engine) {},
		},
		{
			name:        "cancel_insert_cycle",
			setupEngine: setupBenchmarkEngine,
			setupData:   func(e *Engine, b *testing.B) {},
			operation: func(e *Engine, i int) {
				id := ulid.Make().String()
				e.processLine(fmt.Sprintf("BUY GFD %d 10 %s", 49000-int64(i%100), id))
				e.processLine("CANCEL " + id)
			},
			cleanup: func(e *Engine) {},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := tc.setupEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.operation(engine, i)
			}
			b.StopTimer()

			tc.cleanup(engine)
		})
	}
}

func BenchmarkEngine_Print(b *testing.B) {
	testCases := []benchmarkTestCase{
		{
			name:        "print_small_book",
			setupEngine: setupBenchmarkEngine,
			setupData: func(e *Engine, b *testing.B) {
				// Small book - 100 resting orders
				for i := 0; i < 50; i++ {
					e.processLine(benchOrderLine("BUY", 49000-int64(i), 10))
					e.processLine(benchOrderLine("SELL", 50000+int64(i), 10))
				}
			},
			operation: func(e *Engine, i int) {
				e.processLine("PRINT")
			},
			cleanup: func(e *Engine) {},
		},
		{
			name:        "print_large_book",
			setupEngine: setupBenchmarkEngine,
			setupData: func(e *Engine, b *testing.B) {
				// Large book - 2,000 resting orders across 2,000 levels
				for i := 0; i < 1000; i++ {
					e.processLine(benchOrderLine("BUY", 49000-int64(i), 10))
					e.processLine(benchOrderLine("SELL", 50000+int64(i), 10))
				}
			},
			operation: func(e *Engine, i int) {
				e.processLine("PRINT")
			},
			cleanup: func(e *Engine) {},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := tc.setupEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.operation(engine, i)
			}
			b.StopTimer()

			tc.cleanup(engine)
		})
	}
}

func BenchmarkEngine_MixedWorkload(b *testing.B) {
	testCases := []benchmarkTestCase{
		{
			name:        "realistic_command_mix",
			setupEngine: setupBenchmarkEngine,
			setupData: func(e *Engine, b *testing.B) {
				// Seed both sides with initial liquidity
				for i := 0; i < 50; i++ {
					e.processLine(benchOrderLine("SELL", 50000+int64(i*50), 10))
					e.processLine(benchOrderLine("BUY", 49000-int64(i*50), 10))
				}
			},
			operation: func(e *Engine, i int) {
				switch i % 10 {
				case 0: // 10% aggressive IOC
					e.processLine(fmt.Sprintf("BUY IOC %d 5 %s", 50000+int64(i%100), ulid.Make().String()))
				case 1: // 10% cancels, some of unknown ids
					e.processLine("CANCEL " + ulid.Make().String())
				default: // 80% passive limit orders
					if i%2 == 0 {
						e.processLine(benchOrderLine("BUY", 49000-int64(i%500), 10))
					} else {
						e.processLine(benchOrderLine("SELL", 50000+int64(i%500), 10))
					}
				}
			},
			cleanup: func(e *Engine) {},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := tc.setupEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.operation(engine, i)
			}
			b.StopTimer()

			tc.cleanup(engine)
		})
	}
}

// Memory allocation benchmarks
func BenchmarkEngine_MemoryAllocation(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			engine.processLine(benchOrderLine("BUY", 49000-int64(i%100), 10))
		} else {
			engine.processLine(benchOrderLine("SELL", 50000+int64(i%100), 10))
		}
	}
}
