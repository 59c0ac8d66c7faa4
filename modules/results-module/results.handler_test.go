package results_module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newResultsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler().RegisterRoutes(r)
	return r
}

func postResults(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestViewEndpoint(t *testing.T) {
	r := newResultsRouter(t)
	env := portalEnvelope(t, "AEPS", map[string]int{"matched": 12, "not_in_Portal": 2})

	w := postResults(r, "/api/results/view", map[string]any{
		"viewer": "portal",
		"result": env,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success  bool      `json:"success"`
		Columns  []string  `json:"columns"`
		Sections []Section `json:"sections"`
		Section  struct {
			Key       string `json:"key"`
			Total     int    `json:"total"`
			PageCount int    `json:"pageCount"`
		} `json:"section"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || len(resp.Sections) != 2 {
		t.Errorf("response = %s", w.Body.String())
	}
	if resp.Section.Key != "not_in_Portal" {
		t.Errorf("default section = %s, want first active in catalog order", resp.Section.Key)
	}
	if len(resp.Columns) != 18 {
		t.Errorf("columns = %d, want 18", len(resp.Columns))
	}

	w = postResults(r, "/api/results/view", map[string]any{
		"viewer":  "portal",
		"section": "matched",
		"page":    2,
		"result":  env,
	})
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Section.Key != "matched" || resp.Section.Total != 12 || resp.Section.PageCount != 2 {
		t.Errorf("section page = %+v", resp.Section)
	}
}

func TestViewEndpointNoActiveSections(t *testing.T) {
	r := newResultsRouter(t)

	w := postResults(r, "/api/results/view", map[string]any{
		"viewer": "vendor",
		"result": Envelope{
			IsSuccess:   true,
			ServiceName: "DMT",
			Data:        map[string]any{"message": "No mismatches found"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Success  bool      `json:"success"`
		Sections []Section `json:"sections"`
		Message  string    `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || len(resp.Sections) != 0 || resp.Message != "No mismatches found" {
		t.Errorf("response = %s", w.Body.String())
	}
}

func TestExportEndpointAttachment(t *testing.T) {
	r := newResultsRouter(t)
	env := portalEnvelope(t, "AEPS", map[string]int{"matched": 3})

	w := postResults(r, "/api/results/export", map[string]any{
		"viewer":  "portal",
		"mode":    "section",
		"section": "matched",
		"result":  env,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "Matched_Values.xlsx") {
		t.Errorf("Content-Disposition = %s", got)
	}
}

func TestExportEndpointGuards(t *testing.T) {
	r := newResultsRouter(t)
	empty := Envelope{IsSuccess: true, ServiceName: "AEPS", Data: map[string]any{}}

	w := postResults(r, "/api/results/export", map[string]any{
		"viewer": "portal",
		"mode":   "all",
		"result": empty,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty export status = %d, want 422", w.Code)
	}

	w = postResults(r, "/api/results/export", map[string]any{
		"viewer": "portal",
		"mode":   "matched",
		"result": empty,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("portal matched status = %d, want 400", w.Code)
	}
}
