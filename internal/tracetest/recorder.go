// Package tracetest records OpenTelemetry spans in memory for tests.
package tracetest

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
)

// Recorder is a trace.TracerProvider that keeps every span it starts.
type Recorder struct {
	embedded.TracerProvider

	mu    sync.Mutex
	spans []*Span
}

var _ trace.TracerProvider = (*Recorder)(nil)

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Tracer implements trace.TracerProvider.
func (r *Recorder) Tracer(name string, _ ...trace.TracerOption) trace.Tracer {
	return &tracer{rec: r, name: name}
}

// Spans returns the spans started so far, in start order.
func (r *Recorder) Spans() []*Span {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Span, len(r.spans))
	copy(out, r.spans)
	return out
}

type tracer struct {
	embedded.Tracer
	rec  *Recorder
	name string
}

func (t *tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &Span{
		rec:        t.rec,
		Tracer:     t.name,
		Name:       name,
		Kind:       cfg.SpanKind(),
		Parent:     trace.SpanContextFromContext(ctx),
		attributes: map[attribute.Key]attribute.Value{},
	}
	for _, kv := range cfg.Attributes() {
		s.attributes[kv.Key] = kv.Value
	}

	t.rec.mu.Lock()
	t.rec.spans = append(t.rec.spans, s)
	t.rec.mu.Unlock()

	return trace.ContextWithSpan(ctx, s), s
}

// Span is a recorded span.
type Span struct {
	embedded.Span
	rec *Recorder

	Tracer string
	Name   string
	Kind   trace.SpanKind
	Parent trace.SpanContext

	mu          sync.Mutex
	attributes  map[attribute.Key]attribute.Value
	status      codes.Code
	description string
	errs        []error
	ended       bool
}

// Attr returns the value recorded for key.
func (s *Span) Attr(key string) (attribute.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.attributes[attribute.Key(key)]
	return v, ok
}

// Status returns the span status code and description.
func (s *Span) Status() (codes.Code, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.description
}

// Errors returns the errors passed to RecordError.
func (s *Span) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}

// Ended reports whether End was called.
func (s *Span) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

func (s *Span) End(...trace.SpanEndOption) {
	s.mu.Lock()
	s.ended = true
	s.mu.Unlock()
}

func (s *Span) AddEvent(string, ...trace.EventOption) {}

func (s *Span) AddLink(trace.Link) {}

func (s *Span) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.ended
}

func (s *Span) RecordError(err error, _ ...trace.EventOption) {
	s.mu.Lock()
	s.errs = append(s.errs, err)
	s.mu.Unlock()
}

func (s *Span) SpanContext() trace.SpanContext { return trace.SpanContext{} }

func (s *Span) SetStatus(code codes.Code, description string) {
	s.mu.Lock()
	s.status, s.description = code, description
	s.mu.Unlock()
}

func (s *Span) SetName(name string) {
	s.mu.Lock()
	s.Name = name
	s.mu.Unlock()
}

func (s *Span) SetAttributes(kv ...attribute.KeyValue) {
	s.mu.Lock()
	for _, a := range kv {
		s.attributes[a.Key] = a.Value
	}
	s.mu.Unlock()
}

func (s *Span) TracerProvider() trace.TracerProvider { return s.rec }
