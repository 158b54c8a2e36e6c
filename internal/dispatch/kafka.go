package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wm "writeoff_monitor"

	"github.com/segmentio/kafka-go"
)

// batch key; every payload lands on the same partition so consumers see them in order
const kafkaMessageKey = "writeoffs"

type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes each payload as a single message.
type KafkaSink struct {
	topic  string
	writer kafkaMessageWriter
}

var errNoBrokers = errors.New("kafka sink requires at least one broker")

// NewKafkaSink builds a synchronous writer with leader acks.
func NewKafkaSink(brokers []string, topic string, timeout time.Duration) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errNoBrokers
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka sink topic must not be empty")
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           timeout,
	}
	return &KafkaSink{topic: topic, writer: w}, nil
}

// Send writes payload as one keyed JSON message.
func (s *KafkaSink) Send(ctx context.Context, payload []wm.UnitEventSet) error {
	value, err := encodePayload(payload)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(kafkaMessageKey),
		Value: value,
		Time:  time.Now().UTC(),
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", s.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
