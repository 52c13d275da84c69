package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/vominhduc11/NexHub-sub001/config"
)

// CreateKafkaWriter returns a producer shared by all topics. Messages are keyed
// by account ID and hashed to a partition, which keeps per-account ordering.
// RequireAll makes a publish block until every in-sync replica acknowledges.
func CreateKafkaWriter(config *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(config.KafkaConfig.BrokerAddress),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
}

func CreateKafkaReader(config *config.Config, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{config.KafkaConfig.BrokerAddress},
		Topic:       topic,
		GroupID:     config.KafkaConfig.ConsumerGroupID,
		MinBytes:    10e3, // 10KB
		MaxBytes:    10e6, // 10MB
		StartOffset: kafka.FirstOffset,
	})
}
