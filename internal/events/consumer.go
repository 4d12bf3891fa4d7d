package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/banking/aml-core/internal/config"
	"github.com/banking/aml-core/internal/core"
	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditConsumer struct {
	consumerGroup sarama.ConsumerGroup
	auditService  *service.AuditService
	amlCore       *core.AmlCore
	transactionTopic string
	topics        []string
	logger        *zap.Logger
}

// WithAmlCore attaches the AML analytical core so transaction-topic
// messages are routed into MonitorTransaction instead of the generic
// audit path (§4.4, §6).
func (c *AuditConsumer) WithAmlCore(amlCore *core.AmlCore) *AuditConsumer {
	c.amlCore = amlCore
	return c
}

func NewAuditConsumer(cfg config.KafkaConfig, auditService *service.AuditService, logger *zap.Logger) (*AuditConsumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Version = sarama.V2_8_0_0

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	topics := []string{cfg.AuditTopic, cfg.TransactionTopic, cfg.UserTopic, cfg.AlertTopic}

	return &AuditConsumer{
		consumerGroup:    consumerGroup,
		auditService:     auditService,
		transactionTopic: cfg.TransactionTopic,
		topics:           topics,
		logger:           logger,
	}, nil
}

func (c *AuditConsumer) Start(ctx context.Context) error {
	handler := &auditConsumerHandler{
		auditService:     c.auditService,
		amlCore:          c.amlCore,
		transactionTopic: c.transactionTopic,
		logger:           c.logger,
	}

	for {
		if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
			if ctx.Err() != nil {
				return nil // Context canceled
			}
			c.logger.Error("Error from consumer", zap.Error(err))
			time.Sleep(time.Second * 5) // Retry backoff
		}
	}
}

func (c *AuditConsumer) Close() error {
	return c.consumerGroup.Close()
}

type auditConsumerHandler struct {
	auditService     *service.AuditService
	amlCore          *core.AmlCore
	transactionTopic string
	logger           *zap.Logger
}

func (h *auditConsumerHandler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *auditConsumerHandler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }
func (h *auditConsumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.processMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *auditConsumerHandler) processMessage(ctx context.Context, msg *sarama.ConsumerMessage) {
	if h.amlCore != nil && msg.Topic == h.transactionTopic {
		h.processTransaction(ctx, msg)
		return
	}

	// Generic event structure to peek at fields
	var genericEvent map[string]interface{}
	if err := json.Unmarshal(msg.Value, &genericEvent); err != nil {
		h.logger.Error("Failed to unmarshal event", zap.Error(err))
		return // Skip malformed
	}

	// Transform to AuditDomain
	auditEvent := h.mapToAuditEvent(genericEvent, msg.Topic)

	// Retry mechanism for persistence
	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		if err := h.auditService.ProcessAndStoreEvent(ctx, auditEvent); err != nil {
			h.logger.Error("Failed to process audit event",
				zap.String("topic", msg.Topic),
				zap.Error(err),
				zap.Int("retry", i+1),
			)
			if i < maxRetries-1 {
				time.Sleep(time.Duration(i+1) * time.Second) // Simple backoff
				continue
			}
			// If we exhausted retries, log failure and potentially move to DLQ (future)
			h.logger.Error("Dropping event after retries", zap.String("event_id", auditEvent.EventID.String()))
		}
		break // Success
	}
}

// transactionEnvelope is the wire format published on the transaction
// topic: the transaction itself plus the caller-computed sliding-window
// counters the rule engine needs (§4.4 - the engine never owns state
// between calls).
type transactionEnvelope struct {
	Transaction domain.Transaction     `json:"transaction"`
	Context     domain.CustomerContext `json:"context"`
}

func (h *auditConsumerHandler) processTransaction(ctx context.Context, msg *sarama.ConsumerMessage) {
	var envelope transactionEnvelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		h.logger.Error("Failed to unmarshal transaction envelope", zap.Error(err))
		return
	}

	alerts, err := h.amlCore.MonitorTransaction(ctx, envelope.Transaction, envelope.Context)
	if err != nil {
		h.logger.Error("Failed to monitor transaction",
			zap.String("transaction_id", envelope.Transaction.TransactionID.String()),
			zap.Error(err))
		return
	}
	if len(alerts) > 0 {
		h.logger.Info("Alerts opened from transaction monitoring",
			zap.String("transaction_id", envelope.Transaction.TransactionID.String()),
			zap.Int("alert_count", len(alerts)))
	}
}

// mapToAuditEvent transforms various event formats into a standardized AuditEvent
func (h *auditConsumerHandler) mapToAuditEvent(raw map[string]interface{}, topic string) *domain.AuditEvent {
	// Defaults
	event := domain.NewAuditEvent(uuid.Nil, domain.ActionType("UNKNOWN"), domain.ResourceType("UNKNOWN"), "0")
	event.ServiceSource = topic // Proxy for service name for now

	// Extract standard fields if they exist
	if idStr, ok := raw["event_id"].(string); ok {
		if uid, err := uuid.Parse(idStr); err == nil {
			event.EventID = uid
		}
	}

	if typeStr, ok := raw["event_type"].(string); ok {
		// Map detailed event type to generic ActionType if possible, or just store it
		// For now, we use the raw string or map common ones
		event.ActionType = domain.ActionType(typeStr) // Dynamic casting
	}

	if userIDStr, ok := raw["user_id"].(string); ok {
		if uid, err := uuid.Parse(userIDStr); err == nil {
			event.UserID = uid
		}
	}

	// Payload handling
	// Store the entire raw event as Metadata JSON
	if metaBytes, err := json.Marshal(raw); err == nil {
		event.Metadata = metaBytes
	}

	return event
}
