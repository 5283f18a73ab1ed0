package clients

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

// Kafka topic for classified posts.
const KAFKA_TOPIC_SENTIMENT_RESULTS = "sentiment-results"

var producer *kafka.Producer

// InitKafka initializes the Kafka producer against KAFKA_BROKER. The
// results sink is optional; callers skip it when the broker is unset.
func InitKafka() error {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		broker = "localhost:29092"
	}

	slog.Info("[KafkaClient] Connecting to Kafka", slog.String("broker", broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
	})
	if err != nil {
		return err
	}
	producer = p
	slog.Info("[KafkaClient] Kafka producer initialized")
	return nil
}

func CloseKafka() {
	if producer != nil {
		producer.Flush(5000)
		producer.Close()
		slog.Info("[KafkaClient] Kafka producer shut down")
	}
}

// PublishClassifiedPosts sends a batch of classified posts to the results
// topic, keyed by query so downstream consumers can partition per keyword.
func PublishClassifiedPosts(query string, batch []models.ClassifiedPost) error {
	jsonData, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	topic := KAFKA_TOPIC_SENTIMENT_RESULTS

	err = producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(query),
		Value:          jsonData,
	}, nil)
	if err != nil {
		return err
	}

	slog.Info("[KafkaClient] Published classified posts",
		slog.String("query", query),
		slog.Int("count", len(batch)))
	return nil
}

// PublishWithRetry retries transient publish failures a few times before
// giving up; the caller treats exhaustion as non-fatal.
func PublishWithRetry(query string, batch []models.ClassifiedPost) error {
	var err error
	for i := 0; i < 3; i++ {
		err = PublishClassifiedPosts(query, batch)
		if err == nil {
			return nil
		}
		slog.Warn("[KafkaClient] Batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
	return err
}
