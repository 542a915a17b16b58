// Package logging provides the process-wide structured logger and tracer.
//
// Log calls take a context so that, when tracing is enabled and a span is
// active, every entry carries the span's trace_id and span_id.
package logging

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "tradetrack"

var (
	logger         = zap.NewNop()
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	tracingEnabled bool
)

// Config holds logging configuration.
type Config struct {
	Level          string // debug, info, warn, error
	Format         string // json or console
	TracingEnabled bool
	Version        string
}

// Init builds the global logger and, when enabled, the tracer.
func Init(cfg Config) error {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = built.With(zap.String("service", serviceName))

	tracingEnabled = cfg.TracingEnabled
	if tracingEnabled {
		if err := initTracer(cfg.Version); err != nil {
			logger.Warn("failed to initialize tracer, tracing disabled", zap.Error(err))
			tracingEnabled = false
		}
	}
	return nil
}

func initTracer(version string) error {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = otel.Tracer(serviceName)
	return nil
}

// Shutdown flushes pending spans and buffered log entries.
func Shutdown(ctx context.Context) error {
	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	// Sync fails on stdout/stderr on some platforms; nothing useful can be done about it.
	_ = logger.Sync()
	return nil
}

// L returns the global logger for callers that do not have a context.
func L() *zap.Logger {
	return logger
}

// StartSpan starts a span when tracing is enabled. Otherwise it returns the
// span already in ctx, which may be a no-op span.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !tracingEnabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

func withTrace(ctx context.Context, fields []zap.Field) []zap.Field {
	if !tracingEnabled || ctx == nil {
		return fields
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return fields
	}
	return append(fields,
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// Debug logs at debug level.
func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	logger.Debug(msg, withTrace(ctx, fields)...)
}

// Info logs at info level.
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	logger.Info(msg, withTrace(ctx, fields)...)
}

// Warn logs at warn level.
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	logger.Warn(msg, withTrace(ctx, fields)...)
}

// Error logs err at error level and marks the active span as failed.
func Error(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if tracingEnabled && ctx != nil {
		span := trace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	logger.Error(msg, withTrace(ctx, append([]zap.Field{zap.Error(err)}, fields...))...)
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}
