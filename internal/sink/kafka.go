package sink

import (
	"context"
	"fmt"
	"os"
	"time"

	"gov-ix-sol/internal/config"
	"gov-ix-sol/internal/logic/pipeline"
	"gov-ix-sol/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const defaultDeliveryTimeout = 5 * time.Second

// NewKafkaProducer 创建 Kafka 生产者，topic 不存在时先创建
func NewKafkaProducer(cfg config.KafkaSinkConfig) (*kafka.Producer, error) {
	if err := ensureTopic(cfg); err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Brokers,
		"client.id":         fmt.Sprintf("gov-ix-codec-%s", hostname),

		// 可靠性保障
		"acks":               "all",
		"enable.idempotence": true,

		// 超时与重试
		"delivery.timeout.ms": 30000,
		"request.timeout.ms":  30000,
		"retries":             5,
		"retry.backoff.ms":    100,

		// 单条小消息，不需要攒批
		"linger.ms":        0,
		"compression.type": "none",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return producer, nil
}

func ensureTopic(cfg config.KafkaSinkConfig) error {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Brokers,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	meta, err := adminClient.GetMetadata(nil, true, 10000)
	if err != nil {
		return fmt.Errorf("failed to get metadata: %w", err)
	}
	for _, topic := range meta.Topics {
		if topic.Topic == cfg.Topic {
			return nil
		}
	}

	replicationFactor := 1
	if len(meta.Brokers) > 1 {
		replicationFactor = 2
	}
	partitions := cfg.Partitions
	if partitions <= 0 {
		partitions = 1
	}
	logger.Infof("[Kafka] creating topic %s: partitions=%d, replication=%d", cfg.Topic, partitions, replicationFactor)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := adminClient.CreateTopics(ctx, []kafka.TopicSpecification{{
		Topic:             cfg.Topic,
		NumPartitions:     partitions,
		ReplicationFactor: replicationFactor,
	}})
	if err != nil {
		return fmt.Errorf("failed to create topic %s: %w", cfg.Topic, err)
	}
	for _, result := range results {
		if code := result.Error.Code(); code != kafka.ErrNoError && code != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("failed to create topic %s: %w", result.Topic, result.Error)
		}
	}
	return nil
}

// KafkaSink 以 processor id 为 key 投递编码文本，并等待 broker 的 delivery report
type KafkaSink struct {
	producer *kafka.Producer
	topic    string
	timeout  time.Duration
}

func NewKafkaSink(producer *kafka.Producer, topic string, timeout time.Duration) *KafkaSink {
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	return &KafkaSink{producer: producer, topic: topic, timeout: timeout}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Emit(ctx context.Context, out *pipeline.Encoded) error {
	deliveryChan := make(chan kafka.Event, 1)
	err := s.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &s.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   out.Record.ProcessorID[:],
		Value: []byte(out.Text),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("produce error: %w", err)
	}

	select {
	case e, ok := <-deliveryChan:
		if !ok {
			return fmt.Errorf("delivery channel closed unexpectedly")
		}
		msg, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("invalid message type: %T", e)
		}
		return msg.TopicPartition.Error
	case <-time.After(s.timeout):
		go safeDrain(deliveryChan)
		return fmt.Errorf("delivery timeout (>%v)", s.timeout)
	case <-ctx.Done():
		go safeDrain(deliveryChan)
		return fmt.Errorf("ctx cancelled: %w", ctx.Err())
	}
}

func (s *KafkaSink) Close() error {
	if remaining := s.producer.Flush(int(s.timeout / time.Millisecond)); remaining > 0 {
		logger.Warnf("[Kafka] %d messages still in queue on close", remaining)
	}
	s.producer.Close()
	return nil
}

// safeDrain 确保 deliveryChan 被消费，避免 Kafka 回调阻塞
func safeDrain(ch <-chan kafka.Event) {
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
	}
}
