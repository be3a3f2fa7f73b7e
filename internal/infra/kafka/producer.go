package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orbittrack/internal/config"
	"orbittrack/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 收藏事件类型
const (
	ActionFavoriteAdded   = "favorite.added"
	ActionFavoriteRemoved = "favorite.removed"
)

// DefaultFavoriteTopic 未配置 topics.favorite_events 时使用
const DefaultFavoriteTopic = "orbittrack.favorite-events"

// FavoriteEvent 收藏变更消息体
type FavoriteEvent struct {
	Action       string    `json:"action"`
	PublicKey    string    `json:"public_key"`
	TokenAddress string    `json:"token_address"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// messageWriter kafka.Writer 的最小子集，便于测试替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer 收藏事件生产者
type Producer struct {
	writer messageWriter
	topic  string
}

// NewProducer 初始化 Kafka 生产者；未配置 brokers 时返回 nil
func NewProducer(cfg *config.KafkaConfig) *Producer {
	if !cfg.Enabled() {
		logger.Info("Kafka brokers not configured, favorite events disabled")
		return nil
	}

	topic := cfg.Topic("favorite_events", DefaultFavoriteTopic)
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", topic),
	)

	return &Producer{writer: writer, topic: topic}
}

// PublishFavoriteEvent 发送收藏事件，按公钥分区保证同一用户的事件有序
func (p *Producer) PublishFavoriteEvent(ctx context.Context, event *FavoriteEvent) error {
	if p == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.PublicKey),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send favorite event: %w", err)
	}

	logger.Debug("Favorite event sent",
		zap.String("action", event.Action),
		zap.String("public_key", event.PublicKey),
		zap.String("token_address", event.TokenAddress),
	)
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
