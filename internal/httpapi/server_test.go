package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codelayers/strata/internal/observability"
	"github.com/codelayers/strata/pkg/cache"
	"github.com/codelayers/strata/pkg/classify"
	"github.com/codelayers/strata/pkg/render"
)

func newTestAPI(opts Options) http.Handler {
	return NewAPI(classify.NewEngine(), opts).Handler()
}

func postClassify(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestClassifyEndpoint(t *testing.T) {
	t.Parallel()

	handler := newTestAPI(Options{})

	payload, _ := json.Marshal(ClassifyRequest{
		Code: `const x: string = "hello";`,
		Path: "a.tsx",
	})

	rec := postClassify(t, handler, string(payload))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var doc render.Document
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if doc.Path != "a.tsx" || doc.Length != 26 {
		t.Errorf("document header: %+v", doc)
	}

	if len(doc.Regions) != 3 {
		t.Errorf("regions = %d, want 3", len(doc.Regions))
	}
}

func TestClassifyEndpointRejectsEmptyCode(t *testing.T) {
	t.Parallel()

	handler := newTestAPI(Options{})

	rec := postClassify(t, handler, `{"code": ""}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestClassifyEndpointRejectsBadJSON(t *testing.T) {
	t.Parallel()

	handler := newTestAPI(Options{})

	rec := postClassify(t, handler, `not json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestClassifyEndpointEnforcesSizeLimit(t *testing.T) {
	t.Parallel()

	handler := newTestAPI(Options{MaxRequestSize: 64})

	payload, _ := json.Marshal(ClassifyRequest{Code: strings.Repeat("const x = 1;\n", 100)})

	rec := postClassify(t, handler, string(payload))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestClassifyEndpointServesFromCache(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics()

	store, err := cache.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	handler := newTestAPI(Options{Metrics: metrics, Store: store})

	payload, _ := json.Marshal(ClassifyRequest{Code: "const x = 1;"})

	first := postClassify(t, handler, string(payload))
	second := postClassify(t, handler, string(payload))

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d, %d", first.Code, second.Code)
	}

	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached response differs from classified response")
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "strata_cache_hits_total 1") {
		t.Errorf("metrics missing cache hit:\n%s", rec.Body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	handler := newTestAPI(Options{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	if !bytes.Contains(rec.Body.Bytes(), []byte(`"ok"`)) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestMetricsEndpointRecordsRequests(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics()
	handler := newTestAPI(Options{Metrics: metrics})

	payload, _ := json.Marshal(ClassifyRequest{Code: "useState(0)"})
	postClassify(t, handler, string(payload))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}

	body := rec.Body.String()

	if !strings.Contains(body, `strata_requests_total{op="http.classify",status="ok"} 1`) {
		t.Errorf("metrics missing request counter:\n%s", body)
	}

	if !strings.Contains(body, `strata_regions_total{layer="library"} 1`) {
		t.Errorf("metrics missing region counter:\n%s", body)
	}
}
