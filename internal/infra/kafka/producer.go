package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidverse/internal/config"
	"vidverse/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// VideoUploaded 视频上传完成事件，worker 据此探测时长
type VideoUploaded struct {
	VideoID    int64  `json:"video_id"`
	Bucket     string `json:"bucket"`
	ObjectName string `json:"object_name"`
}

// VideoProbed 时长探测结果，Duration 为 ffprobe 输出的原始字符串
type VideoProbed struct {
	VideoID  int64  `json:"video_id"`
	Duration string `json:"duration,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Producer Kafka 生产者
type Producer struct {
	writer *kafka.Writer
	topics *config.KafkaConfig
}

// NewProducer 初始化 Kafka 生产者
func NewProducer(cfg *config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized", zap.Strings("brokers", cfg.Brokers))

	return &Producer{writer: w, topics: cfg}
}

// PublishVideoUploaded 发送上传事件
func (p *Producer) PublishVideoUploaded(ctx context.Context, evt *VideoUploaded) error {
	return p.send(ctx, p.topics.Topic("video_uploaded"), evt.VideoID, evt)
}

// PublishVideoProbed 发送探测结果
func (p *Producer) PublishVideoProbed(ctx context.Context, evt *VideoProbed) error {
	return p.send(ctx, p.topics.Topic("video_probed"), evt.VideoID, evt)
}

func (p *Producer) send(ctx context.Context, topic string, videoID int64, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal kafka payload: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("video-%d", videoID)),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}

	logger.Debug("Kafka message sent", zap.String("topic", topic), zap.Int64("video_id", videoID))
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
