package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"epic-events-crm/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordOperation(t *testing.T) {
	m := metrics.New()

	m.RecordOperation("sales", "create_client", metrics.OutcomeOK, time.Now())
	m.RecordOperation("sales", "create_client", metrics.OutcomeOK, time.Now())
	m.RecordOperation("support", "list_events", metrics.OutcomeDenied, time.Now())

	if got := testutil.ToFloat64(m.OperationCounter.WithLabelValues("sales", "create_client", "ok")); got != 2 {
		t.Errorf("Expected 2 create_client operations, got %v", got)
	}
	if got := testutil.ToFloat64(m.OperationCounter.WithLabelValues("support", "list_events", "denied")); got != 1 {
		t.Errorf("Expected 1 denied list_events, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.RecordOperation("sales", "create_client", metrics.OutcomeOK, time.Now())
	m.RecordLogin(metrics.OutcomeOK)
	if err := m.WriteTextfile("/nonexistent/crm.prom"); err != nil {
		t.Errorf("Expected nil metrics to skip writing, got %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.RecordLogin(metrics.OutcomeValidation)

	path := filepath.Join(t.TempDir(), "crm.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	if !strings.Contains(string(content), `crm_login_attempts_total{outcome="validation"} 1`) {
		t.Errorf("Unexpected textfile content:\n%s", content)
	}
}
