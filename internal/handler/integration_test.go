package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/boddenberg/taxcalc-bff-go/internal/calculators"
	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/handler"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/cache"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/client"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/observability"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/resilience"
	"github.com/boddenberg/taxcalc-bff-go/internal/layout"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
	"github.com/boddenberg/taxcalc-bff-go/internal/render"
	"github.com/boddenberg/taxcalc-bff-go/internal/service"

	"go.uber.org/zap"
)

// TestIntegration_FullFlow runs the page against a mock tax API through the
// real client, result cache and router.
func TestIntegration_FullFlow(t *testing.T) {
	var calls atomic.Int32
	var lastBody atomic.Value

	// --- Mock tax API ---
	taxServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.Write([]byte(`{"status": "ok"}`))
		case "/api/gift-tax":
			calls.Add(1)
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			lastBody.Store(body)

			if body["증여재산가액"] == float64(0) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{"detail": [{"loc": ["body", "증여재산가액"], "msg": "증여재산가액을 입력하세요"}]}`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"증여세_과세가액": 150000000, "증여재산공제": 50000000, "과세표준": 100000000,
				"적용세율": 0.1, "누진공제": 0, "산출세액": 10000000,
				"납부세액공제": 0, "신고세액공제": 300000, "납부세액": 9700000
			}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer taxServer.Close()

	// --- Wire the stack ---
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	taxAPI := client.NewTaxAPIClient(
		&http.Client{Timeout: 5 * time.Second},
		taxServer.URL,
		resilience.NewCircuitBreaker("integration-test"),
		resilience.NewBulkhead(4),
	)
	results := cache.New[[]byte](time.Minute)
	defer results.Close()
	transport := client.NewCachingTransport(taxAPI, results, metrics)

	l, err := layout.Load("")
	if err != nil {
		t.Fatal(err)
	}
	guards := cache.New[*panel.Guard](time.Minute)
	defer guards.Close()

	calcs, err := service.NewCalculations(
		calculators.All(transport, panel.WithObserver(service.StateLogger(logger))),
		l, guards, metrics, logger,
	)
	if err != nil {
		t.Fatal(err)
	}
	renderer, err := render.New()
	if err != nil {
		t.Fatal(err)
	}
	deps := []handler.Dependency{{Name: "tax-api", Pinger: taxAPI, Critical: true}}
	router := handler.NewRouter(calcs, renderer, deps, metrics, logger)

	// --- Readiness ---
	rec := serve(router, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// --- Page load gives the region the form posts back ---
	rec = serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	page, _ := goquery.NewDocumentFromReader(rec.Body)
	region := page.Find(`#form-gift-tax input[name="_region"]`).AttrOr("value", "")
	if region == "" {
		t.Fatal("gift tax form carries no region")
	}

	form := url.Values{
		"_region": {region},
		"수증자_관계":  {"직계비속 (성인)"},
		"증여재산가액":  {"150,000,000"},
		"채무":      {""},
	}

	// --- Calculate ---
	rec = serve(router, postForm("/panels/gift-tax/calculate", form, true))
	if rec.Code != http.StatusOK {
		t.Fatalf("calculate: expected 200, got %d", rec.Code)
	}
	doc, _ := goquery.NewDocumentFromReader(rec.Body)
	if got := doc.Find(".headline .amount").Text(); got != "9,700,000원" {
		t.Errorf("unexpected headline %q", got)
	}
	if got := doc.Find(".headline .caption").Text(); got != "납부할 증여세" {
		t.Errorf("unexpected caption %q", got)
	}
	for _, label := range []string{"적용세율", "신고세액공제"} {
		if !strings.Contains(doc.Find("table").Text(), label) {
			t.Errorf("missing row %q", label)
		}
	}
	if strings.Contains(doc.Find("table").Text(), "납부세액공제") {
		t.Error("zero paid-tax credit must be hidden")
	}

	body := lastBody.Load().(map[string]any)
	if body["증여재산가액"] != float64(150000000) || body["채무"] != float64(0) {
		t.Errorf("unexpected upstream body %v", body)
	}

	// --- Identical request is answered from the cache ---
	serve(router, postForm("/panels/gift-tax/calculate", form, true))
	if n := calls.Load(); n != 1 {
		t.Errorf("expected one upstream call, got %d", n)
	}

	// --- Upstream validation failure renders the server message ---
	form.Set("증여재산가액", "")
	rec = serve(router, postForm("/panels/gift-tax/calculate", form, true))
	doc, _ = goquery.NewDocumentFromReader(rec.Body)
	if got := doc.Find(".error-block .message").Text(); got != "증여재산가액을 입력하세요" {
		t.Errorf("unexpected error message %q", got)
	}
	if doc.Find(".error-block .hint").Length() != 1 {
		t.Error("expected the panel hint")
	}

	// --- Counters ---
	rec = serve(router, httptest.NewRequest(http.MethodGet, "/v1/metrics/calculations", nil))
	var stats domain.CalculationStats
	json.NewDecoder(rec.Body).Decode(&stats)
	if stats.TotalRequests != 3 {
		t.Errorf("expected 3 calculations, got %d", stats.TotalRequests)
	}
	for _, p := range stats.Panels {
		if p.Panel != "gift-tax" {
			continue
		}
		if p.Rendered != 2 || p.Failed != 1 {
			t.Errorf("unexpected gift tax stats %+v", p)
		}
		if p.CacheHitRate < 0.33 || p.CacheHitRate > 0.34 {
			t.Errorf("expected one hit in three lookups, got %f", p.CacheHitRate)
		}
	}

	// --- Readiness after the tax API goes away ---
	taxServer.Close()
	rec = serve(router, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz: expected 503, got %d", rec.Code)
	}
}
