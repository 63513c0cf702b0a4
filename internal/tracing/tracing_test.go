package tracing

import (
	"context"
	"testing"
)

func TestSetupInstallsANoopExportingProvider(t *testing.T) {
	shutdown, err := Setup(context.Background(), nil)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer shutdown(context.Background())

	if Tracer == nil {
		t.Fatal("expected Tracer to be set after Setup")
	}
}

func TestStartStageAndStartWorkerReturnSpans(t *testing.T) {
	if _, err := Setup(context.Background(), nil); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	ctx, span := StartStage(context.Background(), "parse", "Widget.m")
	if ctx == nil || span == nil {
		t.Fatal("expected a non-nil context and span from StartStage")
	}
	span.End()

	ctx, span = StartWorker(context.Background(), "Widget.m")
	if ctx == nil || span == nil {
		t.Fatal("expected a non-nil context and span from StartWorker")
	}
	span.End()
}
