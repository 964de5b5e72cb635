package server

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/xuri/excelize/v2"

	"keywordmatrix/internal/config"
	"keywordmatrix/internal/runner"
	"keywordmatrix/internal/store"
	"keywordmatrix/internal/testutil"
)

// TestEncryptCookieSessionRoundTrip verifies that the encryptcookie +
// session stack keeps a value across requests replaying encrypted cookies,
// which is what the OIDC login state relies on.
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	app := fiber.New()
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: deriveEncryptionKey("test-secret-that-is-long-enough-for-production"),
	}))
	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/state", func(c fiber.Ctx) error {
		session.FromContext(c).Set("oauth_state", "abc")
		return c.SendString("ok")
	})
	app.Get("/state", func(c fiber.Ctx) error {
		v, _ := session.FromContext(c).Get("oauth_state").(string)
		return c.SendString(v)
	})

	req, _ := http.NewRequest(http.MethodPost, "/state", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("set request failed: %v", err)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("set request: no cookies returned")
	}

	for i := range 2 {
		req, _ := http.NewRequest(http.MethodGet, "/state", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("get request %d failed: %v", i, err)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "abc" {
			t.Errorf("get request %d: session value = %q, want %q", i, body, "abc")
		}
		if next := resp.Cookies(); len(next) > 0 {
			cookies = next
		}
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Env:           "test",
		BaseURL:       "http://localhost:3000",
		MaxUploadMB:   5,
		RunTTL:        time.Hour,
		TopN:          10,
		RateLimit:     1000,
		SessionSecret: "test-secret-that-is-long-enough-for-production",
		SiteTitle:     "키워드 매트릭스",
	}
	runs := store.NewMemoryStore(cfg.RunTTL)
	srv := New(cfg, "../../views")
	if err := srv.RegisterRoutes(context.Background(), runner.New(nil, runs), runs); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}
	return srv
}

func request(t *testing.T, app *fiber.App, method, path string, body io.Reader, contentType string) (*http.Response, []byte) {
	t.Helper()

	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func TestRoutes_EmptyDashboard(t *testing.T) {
	app := newTestServer(t).App

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		if resp, _ := request(t, app, http.MethodGet, path, nil, ""); resp.StatusCode != fiber.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, resp.StatusCode)
		}
	}

	resp, body := request(t, app, http.MethodGet, "/", nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET / = %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "분류된 결과가 없습니다") {
		t.Errorf("GET / without runs should show the empty state")
	}

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/runs/latest", fiber.StatusNotFound},
		{"/runs/not-a-uuid", fiber.StatusBadRequest},
		{"/?sort=bogus", fiber.StatusBadRequest},
		{"/api/v1/runs/latest", fiber.StatusNotFound},
	}
	for _, tt := range tests {
		if resp, _ := request(t, app, http.MethodGet, tt.path, nil, ""); resp.StatusCode != tt.wantCode {
			t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.wantCode)
		}
	}

	resp, body = request(t, app, http.MethodGet, "/api/v1/unknown", nil, "")
	if resp.StatusCode != fiber.StatusNotFound || !strings.HasPrefix(string(body), `{"status":"error","error":`) {
		t.Errorf("unknown API route = %d %s, want the JSON error envelope", resp.StatusCode, body)
	}
}

func upload(t *testing.T, app *fiber.App, name string, data []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("files", name)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	part.Write(data)
	w.Close()

	resp, _ := request(t, app, http.MethodPost, "/upload", &buf, w.FormDataContentType())
	return resp
}

func TestRoutes_UploadAndExport(t *testing.T) {
	app := newTestServer(t).App

	resp := upload(t, app, "keywords.xlsx", testutil.XLSX(t, testutil.Header, testutil.SampleRows()))
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("POST /upload = %d, want 303", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	if !strings.HasPrefix(location, "/runs/") {
		t.Fatalf("Location = %q, want /runs/<id>", location)
	}

	resp, body := request(t, app, http.MethodGet, location, nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET %s = %d: %s", location, resp.StatusCode, body)
	}
	page := string(body)
	for _, want := range []string{"강남 초등 영어", "전략적 Sweet Spot", "keywords.xlsx"} {
		if !strings.Contains(page, want) {
			t.Errorf("dashboard page is missing %q", want)
		}
	}

	resp, body = request(t, app, http.MethodGet, location+"/tables?sort=ctr_pc", nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET tables = %d", resp.StatusCode)
	}
	if strings.Contains(string(body), "<html") {
		t.Errorf("tables partial should render without the layout")
	}

	resp, body = request(t, app, http.MethodGet, location+"/export.csv", nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET export.csv = %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv") {
		t.Errorf("export.csv Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	if !bytes.HasPrefix(body, []byte("\ufeff")) {
		t.Errorf("export.csv should start with a byte order mark")
	}

	resp, body = request(t, app, http.MethodGet, location+"/export.xlsx", nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET export.xlsx = %d", resp.StatusCode)
	}
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("export.xlsx is not a workbook: %v", err)
	}
	defer f.Close()
	if len(f.GetSheetList()) != 2 {
		t.Errorf("export.xlsx sheets = %v, want records and summary", f.GetSheetList())
	}
}

func TestRoutes_UploadRejected(t *testing.T) {
	app := newTestServer(t).App

	resp := upload(t, app, "notes.txt", []byte("hello"))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("POST /upload notes.txt = %d, want 400", resp.StatusCode)
	}

	noKeyword := testutil.CSV(t, []string{"키워드"}, [][]string{{"영어"}}, false)
	resp = upload(t, app, "bad.csv", noKeyword)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("POST /upload without keyword column = %d, want 400", resp.StatusCode)
	}
}

func TestRoutes_API(t *testing.T) {
	app := newTestServer(t).App

	resp, body := request(t, app, http.MethodPost, "/api/v1/classify",
		strings.NewReader(`{"keywords":["강남 초등 영어","강남역 비즈니스영어"]}`), fiber.MIMEApplicationJSON)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("POST /api/v1/classify = %d: %s", resp.StatusCode, body)
	}

	for _, path := range []string{
		"/api/v1/runs/latest",
		"/api/v1/runs/latest/stats",
		"/api/v1/runs/latest/top?sort=total_clicks&n=1",
		"/api/v1/explain?keyword=%EC%98%81%EC%96%B4",
	} {
		if resp, body := request(t, app, http.MethodGet, path, nil, ""); resp.StatusCode != fiber.StatusOK {
			t.Errorf("GET %s = %d: %s", path, resp.StatusCode, body)
		}
	}
}
