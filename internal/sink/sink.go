package sink

import (
	"context"
	"errors"
	"fmt"

	"gov-ix-sol/internal/logic/pipeline"
	"gov-ix-sol/pkg/logger"
)

// Sink 是编码结果的交付目标；只有通过自检的结果才会交给 Sink
type Sink interface {
	Name() string
	Emit(ctx context.Context, out *pipeline.Encoded) error
	Close() error
}

// EmitAll 依次投递到所有 sink，单个失败不影响其余 sink，最后汇总错误
func EmitAll(ctx context.Context, sinks []Sink, out *pipeline.Encoded) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Emit(ctx, out); err != nil {
			logger.Errorf("[Sink] %s emit failed: program=%s, err=%v", s.Name(), out.Record.ProcessorID, err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		logger.Infof("[Sink] %s emitted: program=%s, text=%d chars", s.Name(), out.Record.ProcessorID, len(out.Text))
	}
	return errors.Join(errs...)
}

// CloseAll 关闭所有 sink，忽略单个错误但记录日志
func CloseAll(sinks []Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			logger.Warnf("[Sink] %s close failed: %v", s.Name(), err)
		}
	}
}
