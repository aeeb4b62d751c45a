package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/complexparts-backend/internal/data/repos"
	"github.com/yungbote/complexparts-backend/internal/data/repos/testutil"
	"github.com/yungbote/complexparts-backend/internal/domain/catalog"
	httpH "github.com/yungbote/complexparts-backend/internal/http/handlers"
	"github.com/yungbote/complexparts-backend/internal/observability"
	"github.com/yungbote/complexparts-backend/internal/services"
)

func newTestRouter(t *testing.T, frontendDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()
	partRepo := repos.NewPartRepo(db, log)
	complexRepo := repos.NewComplexRepo(db, log)
	linkRepo := repos.NewComplexPartRepo(db, log)

	cat := services.NewCatalogService(db, log, metrics, partRepo, complexRepo, linkRepo)
	count := services.NewCountService(db, log, metrics, partRepo, complexRepo, linkRepo)

	return NewRouter(RouterConfig{
		Log:            log,
		Metrics:        metrics,
		FrontendDir:    frontendDir,
		PartHandler:    httpH.NewPartHandler(log, cat),
		ComplexHandler: httpH.NewComplexHandler(log, cat),
		CountHandler:   httpH.NewCountHandler(log, count),
		HealthHandler:  httpH.NewHealthHandler(nil),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func TestRouter_CatalogFlow(t *testing.T) {
	r := newTestRouter(t, "")

	if rec := do(t, r, http.MethodGet, "/healthcheck", nil); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}

	rec := do(t, r, http.MethodGet, "/api/parts", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
		t.Fatalf("empty parts: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodPost, "/api/parts", map[string]any{"name": "Rope", "unit": "m"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create part: %d %s", rec.Code, rec.Body.String())
	}
	rope := decode[catalog.Part](t, rec)

	rec = do(t, r, http.MethodPost, "/api/parts", map[string]any{"name": "Rope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate part: %d %s", rec.Code, rec.Body.String())
	}
	if e := decode[errorBody](t, rec); e.Error.Code != string(catalog.CodeDuplicateName) {
		t.Fatalf("duplicate part code: %q", e.Error.Code)
	}

	rec = do(t, r, http.MethodPost, "/api/parts", map[string]any{"name": " "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank part: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodPost, "/api/complexes", map[string]any{"name": "Site B"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create complex: %d %s", rec.Code, rec.Body.String())
	}
	site := decode[catalog.ComplexWithParts](t, rec)
	if len(site.Parts) != 0 {
		t.Fatalf("new complex has parts: %+v", site.Parts)
	}

	path := "/api/complexes/" + site.ID.String() + "/parts"
	rec = do(t, r, http.MethodPost, path, map[string]any{"part_id": rope.ID, "quantity": 15})
	if rec.Code != http.StatusCreated {
		t.Fatalf("set complex part: %d %s", rec.Code, rec.Body.String())
	}
	site = decode[catalog.ComplexWithParts](t, rec)
	if len(site.Parts) != 1 || site.Parts[0].Quantity != 15 || site.Parts[0].Name != "Rope" {
		t.Fatalf("set complex part: %+v", site.Parts)
	}

	rec = do(t, r, http.MethodPost, path, map[string]any{"part_id": uuid.New(), "quantity": 1})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown part: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, http.MethodPost, path, map[string]any{"part_id": rope.ID})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing quantity: %d %s", rec.Code, rec.Body.String())
	}

	if rec = do(t, r, http.MethodGet, "/api/complexes/"+site.ID.String(), nil); rec.Code != http.StatusOK {
		t.Fatalf("get complex: %d %s", rec.Code, rec.Body.String())
	}
	if rec = do(t, r, http.MethodGet, "/api/complexes/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get missing complex: %d", rec.Code)
	}
	if rec = do(t, r, http.MethodGet, "/api/complexes/not-a-uuid", nil); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("get malformed id: %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/api/complexes", nil)
	if list := decode[[]catalog.ComplexWithParts](t, rec); len(list) != 1 {
		t.Fatalf("list complexes: %+v", list)
	}

	rec = do(t, r, http.MethodPost, "/api/count", map[string]any{
		"selections": []map[string]any{{"complex_id": site.ID, "count": 3}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("count: %d %s", rec.Code, rec.Body.String())
	}
	totals := decode[struct {
		Items []catalog.PartTotal `json:"items"`
	}](t, rec)
	if len(totals.Items) != 1 || totals.Items[0].TotalQuantity != 45 {
		t.Fatalf("count items: %+v", totals.Items)
	}

	rec = do(t, r, http.MethodPost, "/api/count", map[string]any{
		"selections": []map[string]any{{"complex_id": uuid.New(), "count": 1}},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("count unknown complex: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodPost, "/api/count", map[string]any{})
	if rec.Code != http.StatusOK || rec.Body.String() != `{"items":[]}` {
		t.Fatalf("count empty: %d %s", rec.Code, rec.Body.String())
	}

	if rec = do(t, r, http.MethodGet, "/metrics", nil); rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
}

func TestRouter_Frontend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	r := newTestRouter(t, dir)

	if rec := do(t, r, http.MethodGet, "/app.js", nil); rec.Code != http.StatusOK || rec.Body.String() != "console.log(1)" {
		t.Fatalf("asset: %d %q", rec.Code, rec.Body.String())
	}
	if rec := do(t, r, http.MethodGet, "/complexes/123", nil); rec.Code != http.StatusOK || rec.Body.String() != "<html>app</html>" {
		t.Fatalf("spa fallback: %d %q", rec.Code, rec.Body.String())
	}
	if rec := do(t, r, http.MethodGet, "/api/unknown", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown api path: %d", rec.Code)
	}
}
