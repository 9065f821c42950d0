package sink

import (
	"bufio"
	"fmt"
	"io"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/exchange/services/order-book/internal/usecase/snapshot"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/errors"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/logger"
)

// Writer is the append-only text sink for trade and snapshot lines. It
// buffers output and flushes on demand, so one command's emissions appear as
// a single step to the consumer.
type Writer struct {
	w      *bufio.Writer
	logger *logger.Logger
}

// NewWriter creates a sink writer over the given destination, stdout in the
// normal wiring.
func NewWriter(dst io.Writer, log *logger.Logger) *Writer {
	return &Writer{
		w:      bufio.NewWriter(dst),
		logger: log,
	}
}

// TradeExecuted appends one TRADE line for a filled leg. The resting side is
// listed first; the quantity appears with each side's id and price.
func (s *Writer) TradeExecuted(trade *orderbookv1.Trade) error {
	_, err := fmt.Fprintf(s.w, "TRADE %s %d %d %s %d %d\n",
		trade.Resting.ID, trade.Price, trade.Quantity,
		trade.Aggressor.ID, trade.Aggressor.Price, trade.Quantity,
	)
	if err != nil {
		s.logger.Error(err, logger.Field{Key: "action", Value: "write_trade"})
		return errors.NewTracer(string(errors.SinkWriteError)).Wrap(err)
	}
	return nil
}

// BookSnapshot appends the SELL/BUY block for a PRINT.
func (s *Writer) BookSnapshot(snap *snapshotv1.Snapshot) error {
	if err := snapshot.Render(s.w, snap); err != nil {
		s.logger.Error(err, logger.Field{Key: "action", Value: "write_snapshot"})
		return errors.NewTracer(string(errors.SinkWriteError)).Wrap(err)
	}
	return nil
}

// Flush forces buffered output to the underlying writer.
func (s *Writer) Flush() error {
	if err := s.w.Flush(); err != nil {
		return errors.NewTracer(string(errors.SinkWriteError)).Wrap(err)
	}
	return nil
}
