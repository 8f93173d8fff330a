package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/logger"
)

// DeliveryHandler applies a supply delivery
type DeliveryHandler func(ctx context.Context, event SupplyDeliveredEvent) error

// Consumer wraps a Kafka consumer group
type Consumer struct {
	group    sarama.ConsumerGroup
	groupID  string
	topics   []string
	handlers map[string]DeliveryHandler
	mu       sync.RWMutex

	// backoff between attempts of a message that failed on a connection error
	retryInitial time.Duration
	retryMax     time.Duration
}

const (
	defaultRetryInitial = 500 * time.Millisecond
	defaultRetryMax     = 30 * time.Second
)

// NewConsumer creates a new Kafka consumer
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return &Consumer{
		group:        group,
		groupID:      groupID,
		topics:       topics,
		handlers:     make(map[string]DeliveryHandler),
		retryInitial: defaultRetryInitial,
		retryMax:     defaultRetryMax,
	}, nil
}

// RegisterHandler registers a handler for an event type
func (c *Consumer) RegisterHandler(eventType string, handler DeliveryHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handlers == nil {
		c.handlers = make(map[string]DeliveryHandler)
	}
	c.handlers[eventType] = handler
	logger.Logger.Info().
		Str("event_type", eventType).
		Msg("Event handler registered")
}

// Start consumes in the background until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) {
	handler := &consumerGroupHandler{consumer: c}

	go func() {
		for {
			if err := c.group.Consume(ctx, c.topics, handler); err != nil {
				logger.Logger.Error().Err(err).Msg("Error from consumer")
			}
			if ctx.Err() != nil {
				logger.Logger.Info().Msg("Consumer context cancelled, stopping")
				return
			}
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			logger.Logger.Error().Err(err).Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.group != nil {
		return c.group.Close()
	}
	return nil
}

func (c *Consumer) handler(eventType string) (DeliveryHandler, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handlers[eventType]
	return h, ok
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.consumer.process(session.Context(), message); err != nil {
			// Session ended while the database was down; the offset stays
			// unmarked so the message is redelivered
			return nil
		}
		session.MarkMessage(message, "")
	}
	return nil
}

// process handles a message, retrying with backoff while the failure is a
// connection error. Other failures are final: they are logged and the
// message is marked so a poison event cannot block the partition. The
// error is non-nil only when ctx ended before the message was handled.
func (c *Consumer) process(ctx context.Context, message *sarama.ConsumerMessage) error {
	wait := c.retryInitial
	if wait <= 0 {
		wait = defaultRetryInitial
	}
	for attempt := 1; ; attempt++ {
		err := c.handleMessage(ctx, message)
		if err == nil || !errors.Is(err, apperr.ErrConnection) {
			return nil
		}

		logger.Warn(ctx).
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Int64("offset", message.Offset).
			Msg("Transient failure handling message, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		if wait *= 2; c.retryMax > 0 && wait > c.retryMax {
			wait = c.retryMax
		}
	}
}

// handleMessage dispatches one message and reports the handler's error.
func (c *Consumer) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	carrier := propagation.MapCarrier{}
	var eventType, eventID string
	for _, header := range message.Headers {
		switch key := string(header.Key); key {
		case "traceparent", "tracestate":
			carrier[key] = string(header.Value)
		case "event_type":
			eventType = string(header.Value)
		case "event_id":
			eventID = string(header.Value)
		}
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	ctx, span := otel.Tracer("kafka-consumer").Start(ctx, "kafka.consume."+eventType,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
	)
	defer span.End()

	fail := func(err error, msg string) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		logger.Error(ctx).
			Err(err).
			Str("event_type", eventType).
			Str("event_id", eventID).
			Msg(msg)
		return err
	}

	if eventType == "" {
		return fail(fmt.Errorf("missing event_type header"), "Message without event_type header")
	}

	handler, ok := c.handler(eventType)
	if !ok {
		return fail(fmt.Errorf("no handler for %s", eventType), "No handler registered for event type")
	}

	switch eventType {
	case EventTypeSupplyDelivered:
		var event SupplyDeliveredEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			return fail(err, "Failed to unmarshal event")
		}
		if event.EventID == "" {
			event.EventID = eventID
		}
		if err := handler(ctx, event); err != nil {
			return fail(err, "Failed to handle event")
		}

		logger.Info(ctx).
			Str("event_id", event.EventID).
			Str("sku", event.SKU).
			Int("quantity", event.Quantity).
			Msg("Delivery event handled")
		return nil
	default:
		return fail(fmt.Errorf("unknown event type %s", eventType), "Unknown event type")
	}
}
