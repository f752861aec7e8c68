package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/bsv-blockchain/utxomatch"

// Span wraps an otel span. The zero value is not usable; use Start.
type Span struct {
	Ctx    context.Context
	otSpan trace.Span
}

// Start opens a span named name as a child of any span in ctx.
func Start(ctx context.Context, name string) Span {
	span := Span{}
	span.Ctx, span.otSpan = otel.Tracer(tracerName).Start(ctx, name)

	return span
}

func (s *Span) SetTag(key, value string) {
	s.otSpan.SetAttributes(attribute.String(key, value))
}

func (s *Span) SetInt(key string, value int) {
	s.otSpan.SetAttributes(attribute.Int(key, value))
}

func (s *Span) RecordError(err error) {
	if err == nil {
		return
	}

	s.otSpan.RecordError(err)
	s.otSpan.SetStatus(codes.Error, err.Error())
}

func (s *Span) Finish() {
	s.otSpan.End()
}
