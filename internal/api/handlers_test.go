package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/avramz/luach-api/internal/config"
	"github.com/avramz/luach-api/internal/database"
	"github.com/avramz/luach-api/internal/hebcal"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

// testEnv sets up a complete test environment with database, config,
// handlers, and router.
type testEnv struct {
	db     *database.DB
	cfg    *config.Config
	router http.Handler
	apiKey string
}

// setupTest creates a fresh test environment with an in-memory database
// and a fixed clock pinned to 2025-01-01.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	dbCfg := database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	db, err := database.Open(dbCfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	apiKey := "test-admin-key"
	cfg := &config.Config{
		Port:         8080,
		Env:          config.EnvDevelopment,
		DatabasePath: ":memory:",
		APIKey:       apiKey,
		LogLevel:     "error",
		LogFormat:    "text",
	}

	clock := hebcal.FixedClock{Date: hebcal.GregorianDate{Year: 2025, Month: 1, Day: 1}}
	handlers := NewHandlers(db, cfg, logger, clock)

	return &testEnv{
		db:     db,
		cfg:    cfg,
		router: SetupRoutes(handlers, cfg, logger),
		apiKey: apiKey,
	}
}

// doRequest performs a request against the test router and decodes the
// response envelope.
func (env *testEnv) doRequest(t *testing.T, method, path string, headers map[string]string) (int, Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response for %s %s: %v", method, path, err)
	}

	return rec.Code, resp
}

// dataField digs a field out of the decoded response data.
func dataField(t *testing.T, resp Response, field string) any {
	t.Helper()

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("response data is %T, want object", resp.Data)
	}
	return data[field]
}

// =============================================================================
// TESTS
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	status, resp := env.doRequest(t, http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", status)
	}
	if !resp.Success {
		t.Error("response success = false, want true")
	}
}

func TestConvertDate(t *testing.T) {
	env := setupTest(t)

	status, resp := env.doRequest(t, http.MethodGet, "/api/v1/convert/2024-10-03", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	hebrew, ok := dataField(t, resp, "hebrew").(map[string]any)
	if !ok {
		t.Fatal("hebrew field missing from response")
	}
	if hebrew["year"] != float64(5785) || hebrew["month"] != float64(7) || hebrew["day"] != float64(1) {
		t.Errorf("hebrew = %v, want 5785 Tishrei 1", hebrew)
	}
	if hebrew["month_name"] != "Tishrei" {
		t.Errorf("month_name = %v, want Tishrei", hebrew["month_name"])
	}
	if hebrew["display"] != "5785-Tishrei-01" {
		t.Errorf("display = %v, want 5785-Tishrei-01", hebrew["display"])
	}
}

func TestConvertDate_Invalid(t *testing.T) {
	env := setupTest(t)

	tests := []string{
		"/api/v1/convert/2025-02-29",
		"/api/v1/convert/2025-13-01",
		"/api/v1/convert/not-a-date",
	}

	for _, path := range tests {
		status, resp := env.doRequest(t, http.MethodGet, path, nil)
		if status != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, status)
		}
		if resp.Success {
			t.Errorf("GET %s success = true, want false", path)
		}
	}
}

func TestConvertToday(t *testing.T) {
	env := setupTest(t)

	// The test clock is pinned to 2025-01-01 = 1 Tevet 5785.
	status, resp := env.doRequest(t, http.MethodGet, "/api/v1/convert/today", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	hebrew, _ := dataField(t, resp, "hebrew").(map[string]any)
	if hebrew["display"] != "5785-Tevet-01" {
		t.Errorf("display = %v, want 5785-Tevet-01", hebrew["display"])
	}
}

func TestConvertRange(t *testing.T) {
	env := setupTest(t)

	status, resp := env.doRequest(t, http.MethodGet,
		"/api/v1/convert/range?start=2024-10-01&end=2024-10-03", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	conversions, ok := dataField(t, resp, "conversions").([]any)
	if !ok {
		t.Fatal("conversions field missing from response")
	}
	if len(conversions) != 3 {
		t.Fatalf("got %d conversions, want 3", len(conversions))
	}
}

func TestConvertRange_Invalid(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing params", "/api/v1/convert/range"},
		{"end before start", "/api/v1/convert/range?start=2024-10-03&end=2024-10-01"},
		{"too wide", "/api/v1/convert/range?start=2020-01-01&end=2024-01-01"},
		{"bad start", "/api/v1/convert/range?start=nope&end=2024-10-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := env.doRequest(t, http.MethodGet, tt.path, nil)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}
}

func TestConvertHebrew(t *testing.T) {
	env := setupTest(t)

	status, resp := env.doRequest(t, http.MethodGet, "/api/v1/hebrew/5785/10/1", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	if greg := dataField(t, resp, "gregorian"); greg != "2025-01-01" {
		t.Errorf("gregorian = %v, want 2025-01-01", greg)
	}
}

func TestConvertHebrew_Invalid(t *testing.T) {
	env := setupTest(t)

	tests := []string{
		"/api/v1/hebrew/5785/13/1", // Adar II in a common year
		"/api/v1/hebrew/5785/0/1",
		"/api/v1/hebrew/5785/1/31",
		"/api/v1/hebrew/abc/1/1",
	}

	for _, path := range tests {
		status, _ := env.doRequest(t, http.MethodGet, path, nil)
		if status != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, status)
		}
	}
}

func TestGetYear_Uncached(t *testing.T) {
	env := setupTest(t)

	status, resp := env.doRequest(t, http.MethodGet, "/api/v1/years/5784", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	if length := dataField(t, resp, "length"); length != float64(383) {
		t.Errorf("length = %v, want 383", length)
	}
	if leap := dataField(t, resp, "leap_year"); leap != true {
		t.Errorf("leap_year = %v, want true", leap)
	}
	if cached := dataField(t, resp, "cached"); cached != false {
		t.Errorf("cached = %v, want false", cached)
	}
}

func TestGetYear_Cached(t *testing.T) {
	env := setupTest(t)

	if err := env.db.UpsertYear(context.Background(), database.ComputeYear(5785)); err != nil {
		t.Fatalf("seed year cache: %v", err)
	}

	status, resp := env.doRequest(t, http.MethodGet, "/api/v1/years/5785", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	if cached := dataField(t, resp, "cached"); cached != true {
		t.Errorf("cached = %v, want true", cached)
	}
	if rosh := dataField(t, resp, "rosh_hashana"); rosh != "2024-10-03" {
		t.Errorf("rosh_hashana = %v, want 2024-10-03", rosh)
	}
}

func TestListYears_Endpoint(t *testing.T) {
	env := setupTest(t)

	for year := 5780; year <= 5784; year++ {
		if err := env.db.UpsertYear(context.Background(), database.ComputeYear(year)); err != nil {
			t.Fatalf("seed year cache: %v", err)
		}
	}

	status, resp := env.doRequest(t, http.MethodGet, "/api/v1/years?from=5781&to=5783", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	years, ok := dataField(t, resp, "years").([]any)
	if !ok {
		t.Fatal("years field missing from response")
	}
	if len(years) != 3 {
		t.Fatalf("got %d years, want 3", len(years))
	}

	first, _ := years[0].(map[string]any)
	if first["year"] != float64(5781) {
		t.Errorf("years[0].year = %v, want 5781", first["year"])
	}
	if first["cached"] != true {
		t.Errorf("years[0].cached = %v, want true", first["cached"])
	}

	// Uncached years are absent, not computed.
	status, resp = env.doRequest(t, http.MethodGet, "/api/v1/years?from=5900&to=5910", nil)
	if status != http.StatusOK {
		t.Fatalf("status for uncached range = %d, want 200", status)
	}
	if years, _ := dataField(t, resp, "years").([]any); len(years) != 0 {
		t.Errorf("got %d years for uncached range, want 0", len(years))
	}
}

func TestListYears_BadRange(t *testing.T) {
	env := setupTest(t)

	tests := []string{
		"/api/v1/years?from=5790&to=5780",
		"/api/v1/years?from=1&to=9999",
		"/api/v1/years?from=abc&to=5780",
		"/api/v1/years",
	}

	for _, path := range tests {
		status, _ := env.doRequest(t, http.MethodGet, path, nil)
		if status != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, status)
		}
	}
}

func TestGetMolad(t *testing.T) {
	env := setupTest(t)

	status, resp := env.doRequest(t, http.MethodGet, "/api/v1/molad/5785", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	if day := dataField(t, resp, "day"); day != float64(2112590) {
		t.Errorf("day = %v, want 2112590", day)
	}
	if hour := dataField(t, resp, "hour"); hour != float64(9) {
		t.Errorf("hour = %v, want 9", hour)
	}
	if parts := dataField(t, resp, "parts"); parts != float64(391) {
		t.Errorf("parts = %v, want 391", parts)
	}
}

func TestCacheYears_RequiresKey(t *testing.T) {
	env := setupTest(t)

	status, _ := env.doRequest(t, http.MethodPost,
		"/api/v1/admin/years/cache?from=5780&to=5790", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("status without key = %d, want 401", status)
	}

	status, resp := env.doRequest(t, http.MethodPost,
		"/api/v1/admin/years/cache?from=5780&to=5790",
		map[string]string{"X-API-Key": env.apiKey})
	if status != http.StatusOK {
		t.Fatalf("status with key = %d, want 200", status)
	}
	if cached := dataField(t, resp, "cached"); cached != float64(11) {
		t.Errorf("cached = %v, want 11", cached)
	}

	count, err := env.db.CountYears(context.Background())
	if err != nil {
		t.Fatalf("CountYears: %v", err)
	}
	if count != 11 {
		t.Errorf("CountYears = %d, want 11", count)
	}
}

func TestCacheYears_BadRange(t *testing.T) {
	env := setupTest(t)
	headers := map[string]string{"X-API-Key": env.apiKey}

	tests := []string{
		"/api/v1/admin/years/cache?from=5790&to=5780",
		"/api/v1/admin/years/cache?from=1&to=9999",
		"/api/v1/admin/years/cache?from=abc&to=5780",
		"/api/v1/admin/years/cache",
	}

	for _, path := range tests {
		status, _ := env.doRequest(t, http.MethodPost, path, headers)
		if status != http.StatusBadRequest {
			t.Errorf("POST %s status = %d, want 400", path, status)
		}
	}
}
