package telemetry_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/jsamuelsen11/taskboard/internal/platform/telemetry"
)

// Provider-creating tests mutate global OTEL state, so they do not run in
// parallel.

func TestInitTracer_Stdout(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, "test-service", telemetry.ExporterStdout, "")
	if err != nil {
		t.Fatalf("InitTracer(stdout) error = %v", err)
	}
	t.Cleanup(func() {
		if err := tp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	// The provider must hand out usable tracers.
	_, span := tp.Tracer("test").Start(ctx, "probe")
	span.End()
}

func TestInitTracer_OTLP(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, "test-service", telemetry.ExporterOTLP, "http://localhost:4318")
	if err != nil {
		t.Fatalf("InitTracer(otlp) error = %v", err)
	}
	t.Cleanup(func() {
		// Shutdown may fail when no collector is running; this is expected in unit tests.
		_ = tp.Shutdown(ctx)
	})

	if tp == nil {
		t.Fatal("InitTracer(otlp) returned nil TracerProvider")
	}
}

func TestInitTracer_SetsGlobalPropagator(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, "test-service", telemetry.ExporterStdout, "")
	if err != nil {
		t.Fatalf("InitTracer error = %v", err)
	}
	t.Cleanup(func() {
		if err := tp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	// The composite TraceContext+Baggage propagator carries traceparent,
	// tracestate, and baggage fields.
	fields := otel.GetTextMapPropagator().Fields()
	if len(fields) == 0 {
		t.Fatal("global propagator has no fields, want TraceContext + Baggage fields")
	}

	hasTraceparent := false
	for _, f := range fields {
		if f == "traceparent" {
			hasTraceparent = true
		}
	}
	if !hasTraceparent {
		t.Errorf("propagator fields = %v, want traceparent among them", fields)
	}
}

func TestInitTracer_RejectsBadArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exporter string
		endpoint string
	}{
		{name: "unsupported exporter", exporter: "jaeger", endpoint: ""},
		{name: "otlp without endpoint", exporter: telemetry.ExporterOTLP, endpoint: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := telemetry.InitTracer(context.Background(), "test-service", tt.exporter, tt.endpoint)
			if err == nil {
				t.Fatalf("InitTracer(%q, %q) error = nil, want error", tt.exporter, tt.endpoint)
			}
		})
	}
}

func TestInitMeter_Stdout(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.InitMeter(ctx, "test-service", telemetry.ExporterStdout, "")
	if err != nil {
		t.Fatalf("InitMeter(stdout) error = %v", err)
	}
	t.Cleanup(func() {
		if err := mp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	if mp == nil {
		t.Fatal("InitMeter(stdout) returned nil MeterProvider")
	}
}

func TestInitMeter_OTLP(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.InitMeter(ctx, "test-service", telemetry.ExporterOTLP, "http://localhost:4318")
	if err != nil {
		t.Fatalf("InitMeter(otlp) error = %v", err)
	}
	t.Cleanup(func() {
		// Shutdown may fail when no collector is running; this is expected in unit tests.
		_ = mp.Shutdown(ctx)
	})

	if mp == nil {
		t.Fatal("InitMeter(otlp) returned nil MeterProvider")
	}
}

func TestInitMeter_RejectsBadArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exporter string
		endpoint string
	}{
		{name: "unsupported exporter", exporter: "statsd", endpoint: ""},
		{name: "otlp without endpoint", exporter: telemetry.ExporterOTLP, endpoint: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := telemetry.InitMeter(context.Background(), "test-service", tt.exporter, tt.endpoint)
			if err == nil {
				t.Fatalf("InitMeter(%q, %q) error = nil, want error", tt.exporter, tt.endpoint)
			}
		})
	}
}

func TestNewMetrics(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.InitMeter(ctx, "test-service", telemetry.ExporterStdout, "")
	if err != nil {
		t.Fatalf("InitMeter error = %v", err)
	}
	t.Cleanup(func() {
		if err := mp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	metrics, err := telemetry.NewMetrics(mp, "test-service")
	if err != nil {
		t.Fatalf("NewMetrics error = %v", err)
	}

	instruments := []struct {
		name string
		inst any
	}{
		{"ServerRequestDuration", metrics.ServerRequestDuration},
		{"ServerRequestTotal", metrics.ServerRequestTotal},
		{"ClientRequestDuration", metrics.ClientRequestDuration},
		{"ClientRequestTotal", metrics.ClientRequestTotal},
	}
	for _, i := range instruments {
		if i.inst == nil {
			t.Errorf("%s is nil", i.name)
		}
	}
}
