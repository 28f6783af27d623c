package sink

import (
	"context"
	"fmt"
	"io"

	"gov-ix-sol/internal/logic/pipeline"
)

// WriterSink 以 "Encoded ix: <text>" 的格式输出一行，默认写 stdout
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Name() string { return "stdout" }

func (s *WriterSink) Emit(_ context.Context, out *pipeline.Encoded) error {
	_, err := fmt.Fprintf(s.w, "Encoded ix: %s\n", out.Text)
	return err
}

func (s *WriterSink) Close() error { return nil }
