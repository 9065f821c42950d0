package commandreaderv1

import "context"

// CommandReader defines the interface for reading command lines from a source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=commandreaderv1_mock
type CommandReader interface {
	// ReadLine returns the next raw command line, without its trailing
	// newline. It returns io.EOF when the stream is exhausted.
	ReadLine(ctx context.Context) (string, error)
	// Close closes the reader
	Close() error
}
