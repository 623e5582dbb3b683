package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			if len(mf.GetMetric()) != 1 {
				t.Fatalf("expected 1 metric for %s, got %d", name, len(mf.GetMetric()))
			}
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

// TestRecordCommentCounters はコメント作成・削除カウンタが増加することを検証する。
func TestRecordCommentCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCommentCreated()
	c.RecordCommentCreated()
	c.RecordCommentDeleted()

	if val := counterValue(t, reg, "mdblog_comments_created_total"); val != 2 {
		t.Errorf("comments_created_total = %v, want 2", val)
	}
	if val := counterValue(t, reg, "mdblog_comments_deleted_total"); val != 1 {
		t.Errorf("comments_deleted_total = %v, want 1", val)
	}
}

// TestRecordEventCreated はイベント作成カウンタが増加することを検証する。
func TestRecordEventCreated(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordEventCreated()

	if val := counterValue(t, reg, "mdblog_events_created_total"); val != 1 {
		t.Errorf("events_created_total = %v, want 1", val)
	}
}

// TestRecordUserInfo はuserinfo系メトリクスが記録されることを検証する。
func TestRecordUserInfo(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUserInfoLatency(150 * time.Millisecond)
	c.RecordUserInfoFailure()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	foundLatency := false
	for _, mf := range metrics {
		if mf.GetName() == "mdblog_userinfo_latency_seconds" {
			foundLatency = true
			if count := mf.GetMetric()[0].GetHistogram().GetSampleCount(); count != 1 {
				t.Errorf("latency sample count = %d, want 1", count)
			}
		}
	}
	if !foundLatency {
		t.Error("mdblog_userinfo_latency_seconds metric not found")
	}

	if val := counterValue(t, reg, "mdblog_userinfo_fail_total"); val != 1 {
		t.Errorf("userinfo_fail_total = %v, want 1", val)
	}
}

// TestRecordHTTPStatus はラベル付きステータスカウンタが増加することを検証する。
func TestRecordHTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus("GET", "/api/comments", 200)
	c.RecordHTTPStatus("GET", "/api/comments", 200)
	c.RecordHTTPStatus("POST", "/api/comments", 401)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range metrics {
		if mf.GetName() != "mdblog_http_status_total" {
			continue
		}
		if len(mf.GetMetric()) != 2 {
			t.Fatalf("expected 2 labeled series, got %d", len(mf.GetMetric()))
		}
		return
	}
	t.Error("mdblog_http_status_total metric not found")
}

// TestHandler_ServesMetrics はPrometheusフォーマットでメトリクスが公開されることを検証する。
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordCommentCreated()

	handler := Handler(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "mdblog_comments_created_total") {
		t.Error("response should contain mdblog_comments_created_total metric")
	}
}
