package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

// KafkaPublisher writes domain events to Kafka. The AMQP-style routing key
// travels as the message key and as a header, so consumers can filter
// within a topic.
type KafkaPublisher struct {
	writer  *kafka.Writer
	brokers []string
	logger  *zap.Logger
}

func NewKafkaPublisher(brokers string, logger *zap.Logger) *KafkaPublisher {
	addrs := strings.Split(brokers, ",")
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{
		writer:  writer,
		brokers: addrs,
		logger:  logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, routingKey string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(routingKey),
		Value: data,
		Headers: []kafka.Header{
			{Key: "routing_key", Value: []byte(routingKey)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("routing_key", routingKey),
			zap.Error(err))
		return err
	}

	p.logger.Info("event published",
		zap.String("topic", topic),
		zap.String("routing_key", routingKey))
	return nil
}

// HealthCheck dials the first broker to confirm the cluster is reachable.
func (p *KafkaPublisher) HealthCheck() error {
	conn, err := kafka.Dial("tcp", p.brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Brokers()
	return err
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
