// Package redpanda publishes completed-match events to Redpanda/Kafka.
//
// Events are an analytics side channel: publishing is best-effort and a
// broker outage never fails a match.
package redpanda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

// TopicMatchResults is the Kafka topic for completed-match events.
const TopicMatchResults = "match-results"

// Producer wraps a Kafka producer and implements domain.MatchEventPublisher.
type Producer struct {
	client *kgo.Client
}

// NewProducer constructs a Producer and ensures the topic exists.
func NewProducer(brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no seed brokers provided")
	}

	tracing := kotel.NewKotel(kotel.WithTracer(kotel.NewTracer()))
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.RequestRetries(5),
		kgo.ProducerBatchMaxBytes(1_000_000),
		kgo.WithHooks(tracing.Hooks()...),
	}
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("redpanda client: %w", err)
	}

	if err := createTopicIfNotExists(context.Background(), client, TopicMatchResults, 1, 1); err != nil {
		slog.Warn("failed to create topic, it may already exist",
			slog.String("topic", TopicMatchResults),
			slog.Any("error", err))
	}
	return &Producer{client: client}, nil
}

// PublishMatchCompleted implements domain.MatchEventPublisher. The event is
// keyed by the candidate fingerprint so per-candidate ordering is stable.
func (p *Producer) PublishMatchCompleted(ctx context.Context, ev domain.MatchEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("op=events.publish: %w", err)
	}
	rec := &kgo.Record{
		Topic: TopicMatchResults,
		Key:   []byte(ev.CandidateFP),
		Value: b,
	}
	res := p.client.ProduceSync(ctx, rec)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("op=events.publish: %w", err)
	}
	return nil
}

// Ping verifies broker connectivity.
func (p *Producer) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Close flushes and closes the underlying client.
func (p *Producer) Close() error {
	p.client.Close()
	return nil
}
