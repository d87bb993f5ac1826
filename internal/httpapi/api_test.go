package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uhudbuilders/sitecms/internal/auth"
	"github.com/uhudbuilders/sitecms/internal/store"
	"github.com/uhudbuilders/sitecms/internal/upload"
	"github.com/uhudbuilders/sitecms/migration"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "s3cret-pass"
)

type testServer struct {
	handler   http.Handler
	store     *store.Store
	uploadDir string
	cookie    *http.Cookie
}

func setupServer(t *testing.T, mutate ...func(*RouterConfig)) *testServer {
	t.Helper()
	dir := t.TempDir()

	s, err := store.Open(store.Config{Driver: "sqlite", DSN: filepath.Join(dir, "api.db") + "?_foreign_keys=on"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	_, err = migration.NewMigrator(s.DB(), migration.Schema()...).Up(context.Background())
	require.NoError(t, err)

	hasher := auth.NewHasher(auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	hash, err := hasher.Hash(adminPassword)
	require.NoError(t, err)
	_, _, err = s.SetAdminPassword(context.Background(), adminEmail, "Admin User", hash)
	require.NoError(t, err)

	sessions, err := auth.NewManager(s, hasher, auth.SessionConfig{Secret: strings.Repeat("k", 32)})
	require.NoError(t, err)

	uploadDir := filepath.Join(dir, "uploads")
	relay, err := upload.NewRelay(upload.Config{Dir: uploadDir, AllowedTypes: upload.DefaultAllowedTypes})
	require.NoError(t, err)

	cfg := RouterConfig{
		Store:     s,
		Sessions:  sessions,
		Uploads:   relay,
		UploadDir: uploadDir,
		DevMode:   true,
		Log:       zerolog.Nop(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	h, err := NewRouter(cfg)
	require.NoError(t, err)
	return &testServer{handler: h, store: s, uploadDir: uploadDir}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	if ts.cookie != nil {
		return ts.cookie
	}
	rec := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": adminPassword}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			ts.cookie = c
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type projectJSON struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Status            string     `json:"status"`
	Order             int64      `json:"order"`
	BuildingAmenities []string   `json:"buildingAmenities"`
	Units             []unitJSON `json:"units"`
}

type unitJSON struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"projectId"`
	Name      string   `json:"name"`
	Features  []string `json:"features"`
}

const testTower = `{"title":"Test Tower","location":"Dhaka","description":"x","status":"Upcoming","imageUrl":"http://x/y.png",
"units":[{"name":"A","size":"700sqft","bedrooms":2,"bathrooms":2,"balconies":1,"features":[]}]}`

func TestProjects_CreateScenario(t *testing.T) {
	ts := setupServer(t)
	cookie := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/api/projects", strings.Replace(testTower, "Test Tower", "Prior", 1), cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	prior := decode[projectJSON](t, rec)

	rec = ts.do(t, http.MethodPost, "/api/projects", testTower, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[projectJSON](t, rec)

	assert.NotEmpty(t, p.ID)
	assert.Greater(t, p.Order, prior.Order)
	require.Len(t, p.Units, 1)
	assert.NotEmpty(t, p.Units[0].ID)
	assert.Equal(t, p.ID, p.Units[0].ProjectID)
	assert.NotNil(t, p.Units[0].Features)
	assert.NotNil(t, p.BuildingAmenities)

	rec = ts.do(t, http.MethodGet, "/api/projects", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]projectJSON](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, prior.ID, list[0].ID)
	assert.Equal(t, p.ID, list[1].ID)

	rec = ts.do(t, http.MethodGet, "/api/projects/"+p.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Test Tower", decode[projectJSON](t, rec).Title)

	rec = ts.do(t, http.MethodGet, "/api/projects/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, decode[map[string]string](t, rec)["code"])
}

func TestProjects_UpdateReorderDelete(t *testing.T) {
	ts := setupServer(t)
	cookie := ts.login(t)

	var ids []string
	for i := 0; i < 2; i++ {
		rec := ts.do(t, http.MethodPost, "/api/projects", testTower, cookie)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[projectJSON](t, rec).ID)
	}

	rec := ts.do(t, http.MethodPut, "/api/projects/"+ids[0], map[string]any{
		"status": "Completed",
		"units":  []map[string]any{{"name": "B", "size": "900sqft"}, {"name": "C", "size": "1000sqft"}},
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[projectJSON](t, rec)
	assert.Equal(t, "Completed", updated.Status)
	require.Len(t, updated.Units, 2)
	assert.Equal(t, "B", updated.Units[0].Name)

	rec = ts.do(t, http.MethodPost, "/api/projects/"+ids[1]+"/reorder", map[string]string{"direction": "up"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	order := decode[[]projectJSON](t, rec)
	require.Len(t, order, 2)
	assert.Equal(t, ids[1], order[0].ID)

	rec = ts.do(t, http.MethodPost, "/api/projects/"+ids[1]+"/reorder", map[string]string{"direction": "sideways"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/projects/"+ids[0], nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"id":"`+ids[0]+`"}`, rec.Body.String())

	rec = ts.do(t, http.MethodDelete, "/api/projects/"+ids[0], nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/projects/"+ids[0], map[string]any{"title": "ghost"}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjects_Validation(t *testing.T) {
	ts := setupServer(t)
	cookie := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/api/projects", `{"title":"","location":"Dhaka"}`, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, ErrCodeInvalidRequest, body["code"])
	assert.NotEmpty(t, body["details"])

	rec = ts.do(t, http.MethodPost, "/api/projects", `{not json`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/projects", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	ts := setupServer(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/projects/x"},
		{http.MethodDelete, "/api/projects/x"},
		{http.MethodPost, "/api/projects/x/reorder"},
		{http.MethodPost, "/api/gallery"},
		{http.MethodDelete, "/api/gallery/x"},
		{http.MethodGet, "/api/messages"},
		{http.MethodDelete, "/api/messages/x"},
		{http.MethodPost, "/api/settings"},
		{http.MethodPost, "/api/upload"},
	}
	for _, rt := range routes {
		rec := ts.do(t, rt.method, rt.path, "{}", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", rt.method, rt.path)
	}
}

func TestAuthEndpoints(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ErrCodeInvalidCredentials, decode[map[string]string](t, rec)["code"])

	rec = ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/auth/session", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := ts.login(t)
	rec = ts.do(t, http.MethodGet, "/api/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[map[string]map[string]any](t, rec)
	assert.Equal(t, adminEmail, session["user"]["email"])
	assert.NotContains(t, rec.Body.String(), "argon2id")

	rec = ts.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0)
}

func TestLoginRateLimit(t *testing.T) {
	ts := setupServer(t, func(cfg *RouterConfig) { cfg.LoginRateLimit = "2-M" })

	var last int
	for i := 0; i < 3; i++ {
		last = ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": "wrong"}, nil).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestGallery(t *testing.T) {
	ts := setupServer(t)
	cookie := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/api/gallery", map[string]string{"url": "/uploads/a.png", "caption": "Lobby"}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[map[string]any](t, rec)
	assert.Equal(t, "General", item["category"])

	rec = ts.do(t, http.MethodGet, "/api/gallery", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	id := item["id"].(string)
	rec = ts.do(t, http.MethodDelete, "/api/gallery/"+id, nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(t, http.MethodDelete, "/api/gallery/"+id, nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMessages(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodPost, "/api/messages", map[string]string{
		"name": "Rahim", "email": "rahim@example.com", "phone": "017", "message": "Price list?",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	msg := decode[map[string]any](t, rec)
	assert.Equal(t, false, msg["read"])
	assert.NotEmpty(t, msg["date"])

	rec = ts.do(t, http.MethodPost, "/api/messages", map[string]string{"name": "x", "email": "nope", "message": "y"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	cookie := ts.login(t)
	rec = ts.do(t, http.MethodGet, "/api/messages", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = ts.do(t, http.MethodDelete, "/api/messages/"+msg["id"].(string), nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContactRateLimit(t *testing.T) {
	ts := setupServer(t, func(cfg *RouterConfig) { cfg.ContactRateLimit = "1-M" })
	body := map[string]string{"name": "a", "email": "a@example.com", "message": "hi"}

	assert.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/messages", body, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.do(t, http.MethodPost, "/api/messages", body, nil).Code)
}

func TestSettings(t *testing.T) {
	ts := setupServer(t)
	cookie := ts.login(t)

	rec := ts.do(t, http.MethodGet, "/api/settings", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())

	for _, bad := range []string{`[1,2]`, `"text"`, `null`, `42`} {
		rec = ts.do(t, http.MethodPost, "/api/settings", bad, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}

	doc := `{"contact":{"phone":"+880"},"seo":{"siteTitle":"Uhud Builders"}}`
	rec = ts.do(t, http.MethodPost, "/api/settings", doc, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, doc, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/settings", nil, nil)
	assert.JSONEq(t, doc, rec.Body.String())
}

func TestUpload(t *testing.T) {
	ts := setupServer(t)
	cookie := ts.login(t)

	send := func(content []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile(upload.FieldName, "photo.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		ts.handler.ServeHTTP(rec, req)
		return rec
	}

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR-image-bytes")
	rec := send(png)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[uploadResponse](t, rec)
	assert.True(t, res.Success)
	assert.Equal(t, "/uploads/"+res.Filename, res.URL)

	rec = ts.do(t, http.MethodGet, res.URL, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, png, rec.Body.Bytes())

	rec = send([]byte("plain text is not an image"))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, ErrCodeUnsupportedType, decode[map[string]string](t, rec)["code"])

	rec = ts.do(t, http.MethodPost, "/api/upload", `{}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeNoFile, decode[map[string]string](t, rec)["code"])

	rec = ts.do(t, http.MethodGet, "/uploads/", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpload_SlowBodyOutlivesServerReadTimeout(t *testing.T) {
	ts := setupServer(t)
	cookie := ts.login(t)

	srv := httptest.NewUnstartedServer(ts.handler)
	srv.Config.ReadTimeout = 150 * time.Millisecond
	srv.Config.WriteTimeout = 150 * time.Millisecond
	srv.Start()
	t.Cleanup(srv.Close)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile(upload.FieldName, "slow.png")
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
		time.Sleep(400 * time.Millisecond)
		_, _ = part.Write([]byte("-rest-of-the-image"))
		_ = pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", pr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	info, err := os.Stat(filepath.Join(ts.uploadDir, res.Filename))
	require.NoError(t, err)
	assert.Equal(t, int64(len("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR-rest-of-the-image")), info.Size())
}

func TestUnknownAPIRoute(t *testing.T) {
	ts := setupServer(t)
	rec := ts.do(t, http.MethodGet, "/api/nothing/here", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "API Not Found", decode[map[string]string](t, rec)["error"])
}

func TestHealthAndDatabaseOutage(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[healthResponse](t, rec).Checks["database"])

	require.NoError(t, ts.store.Close())

	rec = ts.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", decode[healthResponse](t, rec).Status)

	rec = ts.do(t, http.MethodGet, "/api/projects", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, ErrCodeDatabaseUnavailable, decode[map[string]string](t, rec)["code"])
}

func TestSPAFallback(t *testing.T) {
	dist := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	ts := setupServer(t, func(cfg *RouterConfig) { cfg.SiteDistDir = dist })

	rec := ts.do(t, http.MethodGet, "/projects/abc", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app</html>")

	rec = ts.do(t, http.MethodGet, "/", nil, nil)
	assert.Contains(t, rec.Body.String(), "app</html>")

	rec = ts.do(t, http.MethodGet, "/assets/app.js", nil, nil)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/unknown", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "API Not Found")
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupServer(t)
	ts.do(t, http.MethodGet, "/api/projects", nil, nil)

	rec := ts.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sitecms_http_request_duration_seconds`)
	assert.Contains(t, rec.Body.String(), `path="/api/projects"`)
}
