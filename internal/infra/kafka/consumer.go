package kafka

import (
	"context"
	"encoding/json"
	"time"

	"vidverse/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consume 阻塞消费 topic，每条消息反序列化为 T 后交给 handler；ctx 取消后退出
func Consume[T any](ctx context.Context, brokers []string, topic, groupID string, handler func(context.Context, *T) error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka consumer stopped", zap.String("topic", topic))
	}()

	logger.Info("Kafka consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var payload T
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			logger.Error("Failed to unmarshal kafka message",
				zap.String("topic", topic),
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(ctx, &payload); err != nil {
			logger.Error("Failed to handle kafka message",
				zap.String("topic", topic),
				zap.ByteString("key", msg.Key),
				zap.Error(err),
			)
		}
	}
}
