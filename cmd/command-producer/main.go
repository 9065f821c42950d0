package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// generateRandomID creates a random alphanumeric ID
func generateRandomID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	var result strings.Builder
	for i := 0; i < length; i++ {
		result.WriteByte(charset[rand.Intn(len(charset))])
	}
	return result.String()
}

// generateCommands creates a stream of realistic command lines: mostly GFD
// orders around the base price, a few IOC sweeps, the occasional CANCEL or
// MODIFY of an earlier id, and a PRINT every so often.
func generateCommands(count int, basePrice, priceSpread int64) []string {
	commands := make([]string, 0, count)
	var liveIDs []string

	for i := 0; i < count; i++ {
		roll := rand.Float64()

		switch {
		case roll < 0.05 && len(liveIDs) > 0:
			id := liveIDs[rand.Intn(len(liveIDs))]
			commands = append(commands, fmt.Sprintf("CANCEL %s", id))

		case roll < 0.10 && len(liveIDs) > 0:
			id := liveIDs[rand.Intn(len(liveIDs))]
			side := "BUY"
			if rand.Float64() < 0.5 {
				side = "SELL"
			}
			price := basePrice + rand.Int63n(priceSpread) - priceSpread/2
			quantity := rand.Int63n(100) + 1
			commands = append(commands, fmt.Sprintf("MODIFY %s %s %d %d", id, side, price, quantity))

		case roll < 0.13:
			commands = append(commands, "PRINT")

		default:
			verb := "BUY"
			offset := -rand.Int63n(priceSpread)
			if rand.Float64() < 0.5 {
				verb = "SELL"
				offset = rand.Int63n(priceSpread)
			}
			tif := "GFD"
			if rand.Float64() < 0.2 {
				tif = "IOC"
			}
			price := basePrice + offset
			if price <= 0 {
				price = basePrice
			}
			quantity := rand.Int63n(100) + 1
			id := generateRandomID(rand.Intn(4) + 5) // 5-8 characters

			commands = append(commands, fmt.Sprintf("%s %s %d %d %s", verb, tif, price, quantity, id))
			if tif == "GFD" {
				liveIDs = append(liveIDs, id)
			}
		}
	}

	return commands
}

// loadCommands reads command lines from a text file, one command per line.
func loadCommands(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var commands []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		commands = append(commands, line)
	}
	return commands, scanner.Err()
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "commands", "Kafka topic name")
		file        = flag.String("file", "", "Text file with command lines (optional, generates commands if not provided)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending commands")
		count       = flag.Int("count", 1000, "Number of commands to generate")
		basePrice   = flag.Int64("base-price", 1000, "Base price for generated orders")
		priceSpread = flag.Int64("price-spread", 200, "Price spread range")
	)
	flag.Parse()

	rand.Seed(time.Now().UnixNano())

	// Create Kafka writer
	writer := &kafka.Writer{
		Addr:         kafka.TCP(*brokers),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	// Load commands
	var commands []string
	if *file != "" {
		loaded, err := loadCommands(*file)
		if err != nil {
			log.Fatalf("Failed to read file %s: %v", *file, err)
		}
		commands = loaded
		log.Printf("Loaded %d commands from file: %s", len(commands), *file)
	} else {
		log.Printf("Generating %d commands...", *count)
		commands = generateCommands(*count, *basePrice, *priceSpread)
		log.Printf("Generated %d commands", len(commands))
	}

	log.Printf("Sending commands to Kafka broker: %s, topic: %s", *brokers, *topic)
	log.Printf("Delay between commands: %v", *delay)

	// Send commands, one line per message, in arrival order
	for i, command := range commands {
		msg := kafka.Message{
			Value: []byte(command),
			Time:  time.Now(),
		}

		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("Failed to send command %d (%s): %v", i+1, command, err)
			continue
		}

		// Log progress every 100 commands or for the last one
		if (i+1)%100 == 0 || i == len(commands)-1 {
			log.Printf("Sent command %d/%d: %s", i+1, len(commands), command)
		}

		if i < len(commands)-1 {
			time.Sleep(*delay)
		}
	}

	log.Printf("Successfully sent all %d commands!", len(commands))
}
