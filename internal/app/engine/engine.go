package engine

import (
	"context"
	"io"
	"strings"
	"sync"

	commandreaderv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/command-reader/v1"
	commandv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/command/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/orderbook/v1"
	sinkv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/sink/v1"
	"github.com/muhammadchandra19/exchange/services/order-book/internal/usecase/orderbook"
	"github.com/muhammadchandra19/exchange/services/order-book/internal/usecase/parser"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/config"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/errors"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/logger"
)

// Engine drives the book: it reads command lines from the source, routes
// them through the parser into the orderbook, and emits trades and
// snapshots to the sink. Commands run to completion one at a time in
// arrival order; there is no suspension point inside a command.
type Engine struct {
	orderbook *orderbook.Orderbook
	reader    commandreaderv1.CommandReader
	sink      sinkv1.Sink
	logger    *logger.Logger
	config    *config.Config

	flushPerCommand bool

	// Command statistics
	statsMutex        sync.RWMutex
	commandsProcessed int64
	commandsRejected  int64
	totalTrades       int64
}

// NewEngine creates a new instance of Engine with the provided dependencies.
func NewEngine(
	orderbook *orderbook.Orderbook,
	reader commandreaderv1.CommandReader,
	sink sinkv1.Sink,
	logger *logger.Logger,
	config *config.Config,
) *Engine {
	return NewEngineWithOptions(orderbook, reader, sink, logger, config, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options
func NewEngineWithOptions(
	orderbook *orderbook.Orderbook,
	reader commandreaderv1.CommandReader,
	sink sinkv1.Sink,
	logger *logger.Logger,
	config *config.Config,
	options *Options,
) *Engine {
	return &Engine{
		orderbook: orderbook,
		reader:    reader,
		sink:      sink,
		logger:    logger,
		config:    config,

		flushPerCommand: options.FlushPerCommand,
	}
}

// Run processes command lines until the source is exhausted or the context
// is cancelled. Rejected lines are dropped and logged; the loop itself
// never fails on bad input. On EOF the sink is flushed and Run returns nil.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("Engine started", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine shutting down")
			e.reader.Close()
			return e.finish()
		default:
		}

		line, err := e.reader.ReadLine(ctx)
		if err == io.EOF {
			return e.finish()
		}
		if err != nil {
			e.logger.Error(errors.TracerFromError(err), logger.Field{
				Key:   "action",
				Value: "read_command_line",
			})
			return e.finish()
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		e.processLine(line)
	}
}

// processLine parses and dispatches one non-blank line. Lex and semantic
// rejections drop the line; the book is untouched and processing continues.
func (e *Engine) processLine(line string) {
	command, err := parser.Parse(line)
	if err != nil {
		e.reject(line, err)
		return
	}

	if err := e.processCommand(command); err != nil {
		e.reject(line, err)
		return
	}

	e.statsMutex.Lock()
	e.commandsProcessed++
	e.statsMutex.Unlock()

	if e.flushPerCommand {
		if err := e.sink.Flush(); err != nil {
			e.logger.Error(err, logger.Field{
				Key:   "action",
				Value: "flush_sink",
			})
		}
	}
}

// processCommand routes a parsed command into the book and the sink.
func (e *Engine) processCommand(command *commandv1.Command) error {
	switch command.Type {
	case commandv1.TypeBuy, commandv1.TypeSell:
		trades, err := e.orderbook.PlaceOrder(command.ToOrder())
		if err != nil {
			return err
		}
		return e.emitTrades(trades)

	case commandv1.TypeModify:
		trades, err := e.orderbook.ModifyOrder(command.OrderID, command.Side, command.Price, command.Quantity)
		if err != nil {
			return err
		}
		return e.emitTrades(trades)

	case commandv1.TypeCancel:
		return e.orderbook.CancelOrder(command.OrderID)

	case commandv1.TypePrint:
		return e.sink.BookSnapshot(e.orderbook.Snapshot(e.config.Pair))
	}

	return nil
}

// emitTrades writes trade lines in consumption order.
func (e *Engine) emitTrades(trades []*orderbookv1.Trade) error {
	for _, trade := range trades {
		if err := e.sink.TradeExecuted(trade); err != nil {
			return err
		}
	}

	if len(trades) > 0 {
		e.statsMutex.Lock()
		e.totalTrades += int64(len(trades))
		e.statsMutex.Unlock()
	}

	return nil
}

// reject drops a line, counting it and logging the reason to stderr only.
func (e *Engine) reject(line string, err error) {
	e.statsMutex.Lock()
	e.commandsRejected++
	e.statsMutex.Unlock()

	e.logger.Warn("Dropped command line",
		logger.Field{Key: "line", Value: line},
		logger.Field{Key: "reason", Value: err.Error()},
	)
}

// finish flushes the sink and logs the run statistics.
func (e *Engine) finish() error {
	if err := e.sink.Flush(); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "flush_sink",
		})
		return err
	}

	processed, rejected, trades := e.Stats()
	e.logger.Info("Engine finished",
		logger.Field{Key: "pair", Value: e.config.Pair},
		logger.Field{Key: "commandsProcessed", Value: processed},
		logger.Field{Key: "commandsRejected", Value: rejected},
		logger.Field{Key: "totalTrades", Value: trades},
	)

	return nil
}

// Stats returns the processed, rejected and trade counters.
func (e *Engine) Stats() (processed, rejected, trades int64) {
	e.statsMutex.RLock()
	defer e.statsMutex.RUnlock()
	return e.commandsProcessed, e.commandsRejected, e.totalTrades
}
