package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestInvocationMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewInvocationMetrics(reg)
	op := "createSettlement"
	metrics.ObserveDuration(op, 15*time.Millisecond)
	metrics.IncSuccess(op)
	metrics.IncFailure(op, "VALIDATION_ERROR")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := counterValue(mfs, "invocation_success", map[string]string{"operation": op}); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 1 {
		t.Fatalf("expected success=1, got %f", got)
	}

	if got, err := counterValue(mfs, "invocation_failure", map[string]string{"operation": op, "code": "VALIDATION_ERROR"}); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}

	if got, err := histogramSum(mfs, "invocation_duration_seconds", map[string]string{"operation": op}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestInvocationMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewInvocationMetrics(nil)
	metrics.ObserveDuration("getSettlement", time.Millisecond)
	metrics.IncSuccess("getSettlement")
	metrics.IncFailure("getSettlement", "NOT_FOUND")
}

func findMetric(mfs []*dto.MetricFamily, name string, labels map[string]string) (*dto.Metric, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := 0
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] == lp.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return m, nil
			}
		}
	}
	return nil, fmt.Errorf("metric %s%v not found", name, labels)
}

func counterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	m, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return m.GetCounter().GetValue(), nil
}

func histogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	m, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return m.GetHistogram().GetSampleSum(), nil
}
