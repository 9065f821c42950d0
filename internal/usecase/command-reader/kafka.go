package commandreader

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/muhammadchandra19/exchange/services/order-book/pkg/config"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/logger"
)

// KafkaReader replays command lines from a Kafka topic, one line per message
// value. It exists for feeding a recorded command stream back into the book;
// the stdin reader is the default source.
type KafkaReader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

// NewKafkaReader creates a Kafka command reader starting from the first
// offset, so a replay always sees the full stream in arrival order.
func NewKafkaReader(cfg config.KafkaConfig, log logger.Interface) *KafkaReader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Partition:   cfg.Partition,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	return &KafkaReader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// ReadLine reads the next message and returns its value as a command line.
func (r *KafkaReader) ReadLine(ctx context.Context) (string, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logger.Error(err, logger.Field{Key: "operation", Value: "ReadLine"})
		return "", err
	}

	return string(msg.Value), nil
}

// Close properly closes the Kafka reader.
func (r *KafkaReader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logger.Error(err, logger.Field{Key: "operation", Value: "Close"})
		return err
	}
	return nil
}
