package commandreader

import (
	"bufio"
	"context"
	"io"

	"github.com/muhammadchandra19/exchange/services/order-book/pkg/logger"
)

// LineReader reads command lines from an io.Reader, stdin in the normal
// wiring. It is the default command source.
type LineReader struct {
	scanner *bufio.Scanner
	logger  logger.Interface
}

// NewLineReader creates a command reader over the given stream.
func NewLineReader(r io.Reader, log logger.Interface) *LineReader {
	return &LineReader{
		scanner: bufio.NewScanner(r),
		logger:  log,
	}
}

// ReadLine returns the next line without its trailing newline. It returns
// io.EOF once the stream is exhausted or the context is cancelled.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", io.EOF
	}

	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}

	if err := r.scanner.Err(); err != nil {
		r.logger.Error(err, logger.Field{Key: "operation", Value: "ReadLine"})
		return "", err
	}

	return "", io.EOF
}

// Close is a no-op; the caller owns the underlying stream.
func (r *LineReader) Close() error {
	return nil
}
