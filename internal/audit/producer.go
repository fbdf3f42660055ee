package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"gradely/pkg/logger"
)

// KafkaRecorderConfig contains configuration for the Kafka audit recorder
type KafkaRecorderConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultKafkaRecorderConfig returns a default recorder configuration
func DefaultKafkaRecorderConfig() *KafkaRecorderConfig {
	return &KafkaRecorderConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "auth-audit-events",
		RetryMax:         3,
		TimeoutMs:        10000, // 10 seconds
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// KafkaRecorder publishes authentication audit events to Kafka
type KafkaRecorder struct {
	producer sarama.SyncProducer
	config   *KafkaRecorderConfig
	logger   *logger.Logger
}

// NewKafkaRecorder creates a new Kafka audit recorder
func NewKafkaRecorder(config *KafkaRecorderConfig) (*KafkaRecorder, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps a user's events ordered within a partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaRecorder{
		producer: producer,
		config:   config,
		logger:   logger.GetDefault(),
	}, nil
}

// Record publishes a single audit event to Kafka
func (kr *KafkaRecorder) Record(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kr.config.Topic,
		Key:       sarama.StringEncoder(event.Username),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kr.createHeaders(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := kr.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send audit event to Kafka: %w", err)
	}

	kr.logger.Debug("Audit event published",
		"topic", kr.config.Topic,
		"partition", partition,
		"offset", offset,
		"type", string(event.Type),
		"username", event.Username,
	)

	return nil
}

// createHeaders creates Kafka headers for audit events
func (kr *KafkaRecorder) createHeaders(event Event) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("producer"), Value: []byte("gradely-auth")},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
	}

	if event.UserID != "" {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("user_id"),
			Value: []byte(event.UserID),
		})
	}

	return headers
}

// Close closes the Kafka producer
func (kr *KafkaRecorder) Close() error {
	if kr.producer != nil {
		if err := kr.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}
