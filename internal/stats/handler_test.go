package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service, repo := newTestService(t, true)
	handler := NewHandler(service)

	router := gin.New()
	router.POST("/api/statistics", handler.Save)
	router.GET("/api/statistics", handler.Get)
	router.DELETE("/api/statistics", handler.Reset)
	router.GET("/api/statistics/export", handler.Export)
	router.POST("/api/statistics/dropout", handler.Dropout)
	return router, repo
}

func TestSaveEndpointMissingWeekday(t *testing.T) {
	router, repo := newTestRouter(t)

	body := `{"gender":"female","birthDate":"1995-04-01","timeSlot":"O-si","selectedService":"fortune"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/statistics", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Error, "weekday") {
		t.Errorf("error must name weekday: %q", resp.Error)
	}

	records, _ := repo.FetchAllUsage()
	if len(records) != 0 {
		t.Errorf("nothing should be persisted, found %d", len(records))
	}
}

func TestStatisticsRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	save := `{"gender":"male","birthDate":"1990-06-15","timeSlot":"Jin-si","weekday":"Monday","mbti":"INTJ","selectedService":"fortune"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/statistics", strings.NewReader(save))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var stats AggregatedStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalUsers != 1 || stats.GenderStats["male"] != 1 || stats.MBTIStats["INTJ"] != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/statistics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode after reset: %v", err)
	}
	if stats.TotalUsers != 0 {
		t.Errorf("expected empty stats after reset, got %d users", stats.TotalUsers)
	}
}

func TestExportEndpointHeaders(t *testing.T) {
	router, repo := newTestRouter(t)
	record := &UsageRecord{
		Gender: "female", BirthDate: "1995-01-01", TimeSlot: "O-si",
		Weekday: "Monday", SelectedService: "balance", CreatedAt: time.Now(),
	}
	if err := repo.InsertUsage(record); err != nil {
		t.Fatalf("insert: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/statistics/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Errorf("content type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "statistics_") {
		t.Errorf("content disposition = %q", got)
	}
	if !strings.HasPrefix(w.Body.String(), "ID,Gender,BirthDate,") {
		t.Errorf("unexpected body start: %q", w.Body.String()[:40])
	}
}

func TestDropoutEndpoint(t *testing.T) {
	router, repo := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/statistics/dropout", strings.NewReader(`{"reason":"left at OCR step"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	start, end := localDayWindow(time.Now())
	count, err := repo.CountDropoutsInWindow(start, end)
	if err != nil || count != 1 {
		t.Fatalf("dropout count = %d (err %v), want 1", count, err)
	}
}
