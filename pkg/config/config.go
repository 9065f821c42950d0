package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
// A missing .env file is not an error; the environment alone is enough.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return nil
}

// CommandSource selects where the engine reads command lines from.
type CommandSource string

const (
	// SourceStdin reads command lines from standard input until EOF.
	SourceStdin CommandSource = "stdin"
	// SourceKafka replays command lines from a Kafka topic.
	SourceKafka CommandSource = "kafka"
)

// Config holds the configuration for the application
type Config struct {
	Pair        string               `env:"PAIR" envDefault:"DEFAULT"` // Instrument label, e.g. BTC/USD
	Source      CommandSource        `env:"SOURCE" envDefault:"stdin"` // Command source: stdin or kafka
	LogLevel    string               `env:"LOG_LEVEL" envDefault:"info"`
	KafkaConfig `envPrefix:"KAFKA_"` // Kafka configuration, used when SOURCE=kafka
}

// KafkaConfig holds the configuration for the Kafka command reader.
type KafkaConfig struct {
	Topic     string   `env:"TOPIC" envDefault:"commands"`
	GroupID   string   `env:"GROUP_ID" envDefault:"default_group"`
	Brokers   []string `env:"BROKER" envDefault:"localhost:9092"`
	Partition int      `env:"PARTITION" envDefault:"0"`
}
