package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	app "github.com/muhammadchandra19/exchange/services/order-book/internal/app/engine"
	commandreaderv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/command-reader/v1"
	commandreader "github.com/muhammadchandra19/exchange/services/order-book/internal/usecase/command-reader"
	"github.com/muhammadchandra19/exchange/services/order-book/internal/usecase/orderbook"
	"github.com/muhammadchandra19/exchange/services/order-book/internal/usecase/sink"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/config"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg = &config.Config{}
	err = config.Load(cfg)
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.LogLevel)))
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	defer log.Sync()

	// Cancel the run on SIGINT/SIGTERM; EOF on the source ends it normally.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var reader commandreaderv1.CommandReader
	switch cfg.Source {
	case config.SourceKafka:
		reader = commandreader.NewKafkaReader(cfg.KafkaConfig, log)
	default:
		reader = commandreader.NewLineReader(os.Stdin, log)
	}

	// Trades and snapshots go to stdout; diagnostics stay on stderr.
	out := sink.NewWriter(os.Stdout, log)
	ob := orderbook.NewOrderbook()

	engine := app.NewEngine(ob, reader, out, log, cfg)

	if err := engine.Run(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "run_engine",
		})
		os.Exit(1)
	}
}
