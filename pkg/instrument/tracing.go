package instrument

import (
	"context"
	"fmt"

	"github.com/vango-dev/listen/pkg/listener"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "listen"

// TracingConfig configures the OpenTelemetry decorator.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "listen").
	TracerName string

	// Provider is the tracer provider. Default: otel.GetTracerProvider().
	Provider trace.TracerProvider

	// TraceDelivery creates a span for every delivered event.
	// Disabled by default.
	TraceDelivery bool
}

// TracingOption configures the OpenTelemetry decorator.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(p trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = p
	}
}

// WithDeliverySpans enables a span per delivered event.
func WithDeliverySpans(enabled bool) TracingOption {
	return func(c *TracingConfig) {
		c.TraceDelivery = enabled
	}
}

// Tracing creates spans for registrar operations.
type Tracing struct {
	tracer   trace.Tracer
	delivery bool
}

// NewTracing creates a Tracing decorator factory.
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracing{
		tracer:   provider.Tracer(config.TracerName),
		delivery: config.TraceDelivery,
	}
}

// Wrap returns a Registrar that traces each operation and forwards to next.
func (tr *Tracing) Wrap(next listener.Registrar) listener.Registrar {
	return &tracingRegistrar{next: next, tr: tr}
}

type tracingRegistrar struct {
	next listener.Registrar
	tr   *Tracing
}

func (r *tracingRegistrar) start(op string, attrs ...attribute.KeyValue) trace.Span {
	_, span := r.tr.tracer.Start(context.Background(), "listener."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return span
}

// end closes span, marking it failed if the operation panicked. The panic
// is re-raised.
func end(span trace.Span) {
	if rec := recover(); rec != nil {
		err, ok := rec.(error)
		if !ok {
			err = fmt.Errorf("%v", rec)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		panic(rec)
	}
	span.End()
}

func (r *tracingRegistrar) Register(target listener.Target, name string, opts listener.Options, cb func(listener.Event)) listener.Token {
	span := r.start("register",
		attribute.String("listener.event", name),
		attribute.String("listener.target", target.TargetID()),
		attribute.Bool("listener.capture", opts.Capture),
		attribute.Bool("listener.passive", opts.Passive),
		attribute.Bool("listener.once", opts.Once),
	)
	defer end(span)

	t := r.next.Register(target, name, opts, r.deliver(name, cb))
	span.SetAttributes(attribute.String("listener.token", t.String()))
	return t
}

func (r *tracingRegistrar) RegisterOnce(target listener.Target, name string, cb func(listener.Event)) listener.Token {
	span := r.start("register",
		attribute.String("listener.event", name),
		attribute.String("listener.target", target.TargetID()),
		attribute.Bool("listener.once", true),
	)
	defer end(span)

	t := r.next.RegisterOnce(target, name, r.deliver(name, cb))
	span.SetAttributes(attribute.String("listener.token", t.String()))
	return t
}

func (r *tracingRegistrar) Unregister(t listener.Token) {
	span := r.start("unregister", attribute.String("listener.token", t.String()))
	defer end(span)
	r.next.Unregister(t)
}

func (r *tracingRegistrar) Forget(t listener.Token) {
	span := r.start("forget", attribute.String("listener.token", t.String()))
	defer end(span)
	r.next.Forget(t)
}

func (r *tracingRegistrar) deliver(name string, cb func(listener.Event)) func(listener.Event) {
	if !r.tr.delivery {
		return cb
	}
	return func(e listener.Event) {
		attrs := []attribute.KeyValue{attribute.String("listener.event", name)}
		if t := e.Target(); t != nil {
			attrs = append(attrs, attribute.String("listener.target", t.TargetID()))
		}
		span := r.start("deliver", attrs...)
		defer end(span)
		cb(e)
	}
}
