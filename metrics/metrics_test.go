package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/viewfactors", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Middleware(mux)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET /api/v1/viewfactors", "GET", "418"))
	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/viewfactors?altitude_km=550", nil))
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET /api/v1/viewfactors", "GET", "418"))
	if after-before != 3 {
		t.Errorf("counter moved by %v, want 3", after-before)
	}

	otherBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("other", "GET", "404"))
	for _, p := range []string{"/wp-admin", "/.env", "/api/v2/x"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", p, nil))
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("other", "GET", "404")) - otherBefore; got != 3 {
		t.Errorf("unmatched paths counted %v under \"other\", want 3", got)
	}
}

func TestObserveComputation(t *testing.T) {
	ok := computationsTotal.WithLabelValues("viewfactors", "ok")
	bad := computationsTotal.WithLabelValues("viewfactors", "error")
	okBefore, badBefore := testutil.ToFloat64(ok), testutil.ToFloat64(bad)

	ObserveComputation("viewfactors", nil)
	ObserveComputation("viewfactors", errors.New("boom"))
	ObserveComputation("viewfactors", nil)

	if got := testutil.ToFloat64(ok) - okBefore; got != 2 {
		t.Errorf("ok moved by %v, want 2", got)
	}
	if got := testutil.ToFloat64(bad) - badBefore; got != 1 {
		t.Errorf("error moved by %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveSweep(12)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "thermalvf_sweep_points") {
		t.Error("metrics output missing thermalvf_sweep_points")
	}
}
