package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStageAddsASeriesForTheStage(t *testing.T) {
	before := testutil.CollectAndCount(StageDuration)

	ObserveStage(StageParse, 0.01)

	after := testutil.CollectAndCount(StageDuration)
	if after <= before {
		t.Fatalf("expected ObserveStage to add a sample, before=%d after=%d", before, after)
	}
}

func TestTransformsAppliedTotalIncrements(t *testing.T) {
	before := testutil.ToFloat64(TransformsAppliedTotal)

	TransformsAppliedTotal.Inc()

	after := testutil.ToFloat64(TransformsAppliedTotal)
	if after != before+1 {
		t.Fatalf("expected TransformsAppliedTotal to increment by 1, got %v -> %v", before, after)
	}
}

func TestDiagnosticsTotalIsLabeledBySeverity(t *testing.T) {
	before := testutil.ToFloat64(DiagnosticsTotal.WithLabelValues("error"))

	DiagnosticsTotal.WithLabelValues("error").Inc()

	after := testutil.ToFloat64(DiagnosticsTotal.WithLabelValues("error"))
	if after != before+1 {
		t.Fatalf("expected error-severity counter to increment by 1, got %v -> %v", before, after)
	}
}
