package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

const defaultProduceTimeout = 5 * time.Second

// producer is the subset of *kgo.Client used by KafkaSink.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaSink publishes each bundle as one JSON record keyed by application ID.
type KafkaSink struct {
	client  producer
	topic   string
	timeout time.Duration
}

// KafkaOption configures a KafkaSink.
type KafkaOption func(*KafkaSink)

// WithProduceTimeout bounds how long Submit waits for the broker.
func WithProduceTimeout(d time.Duration) KafkaOption {
	return func(s *KafkaSink) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewKafkaSink connects to brokers. Call Close when shutting down.
func NewKafkaSink(brokers []string, topic string, opts ...KafkaOption) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka sink: no brokers configured")
	}
	if topic == "" {
		return nil, errors.New("kafka sink: topic is required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka sink: create client: %w", err)
	}
	return newKafkaSink(client, topic, opts...), nil
}

func newKafkaSink(client producer, topic string, opts ...KafkaOption) *KafkaSink {
	s := &KafkaSink{client: client, topic: topic, timeout: defaultProduceTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit produces the bundle synchronously.
func (s *KafkaSink) Submit(ctx context.Context, bundle Bundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("kafka sink: encode bundle: %w", err)
	}

	produceCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(bundle.ApplicationID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "submission_id", Value: []byte(bundle.SubmissionID)},
			{Key: "content_type", Value: []byte("application/json")},
		},
	}
	if err := s.client.ProduceSync(produceCtx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka sink: produce to %s: %w", s.topic, err)
	}
	return nil
}

// Close flushes and closes the client. Safe on a nil sink.
func (s *KafkaSink) Close() {
	if s == nil || s.client == nil {
		return
	}
	s.client.Close()
}
