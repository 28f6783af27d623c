package svc

import (
	"fmt"
	"io"
	"time"

	"gov-ix-sol/internal/config"
	"gov-ix-sol/internal/sink"
	"gov-ix-sol/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ServiceContext 持有命令行运行期间需要的资源
type ServiceContext struct {
	Config config.Config
	Sinks  []sink.Sink
}

// NewServiceContext 按配置构建启用的 sink；一个都没启用时退回 stdout
func NewServiceContext(c config.Config, stdout io.Writer) (*ServiceContext, error) {
	ctx := &ServiceContext{Config: c}

	// 1. stdout
	if c.Output.Stdout {
		ctx.Sinks = append(ctx.Sinks, sink.NewWriterSink(stdout))
	}

	// 2. Redis
	if rc := c.Output.Redis; rc.Enabled {
		if rc.Addr == "" {
			ctx.Close()
			return nil, fmt.Errorf("redis sink enabled but addr is empty")
		}
		rdb := redis.NewClient(&redis.Options{Addr: rc.Addr})
		ctx.Sinks = append(ctx.Sinks, sink.NewRedisSink(rdb, rc.Key, time.Duration(rc.TTLSec)*time.Second))
	}

	// 3. Kafka
	if kc := c.Output.Kafka; kc.Enabled {
		producer, err := sink.NewKafkaProducer(kc)
		if err != nil {
			logger.Errorf("Kafka producer 初始化失败: %v", err)
			ctx.Close()
			return nil, err
		}
		ctx.Sinks = append(ctx.Sinks, sink.NewKafkaSink(producer, kc.Topic, time.Duration(kc.TimeoutMs)*time.Millisecond))
	}

	if len(ctx.Sinks) == 0 {
		ctx.Sinks = append(ctx.Sinks, sink.NewWriterSink(stdout))
	}

	logger.Debugf("服务上下文初始化完成: sinks=%d", len(ctx.Sinks))
	return ctx, nil
}

// Close 关闭服务上下文中的资源
func (ctx *ServiceContext) Close() {
	sink.CloseAll(ctx.Sinks)
	ctx.Sinks = nil
}
