package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uhudbuilders/sitecms/internal/models"
	"github.com/uhudbuilders/sitecms/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testHasher() *Hasher {
	return NewHasher(Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
}

type memoryAdmins struct {
	users map[string]*models.AdminUser
}

func (m *memoryAdmins) GetAdminByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memoryAdmins) GetAdmin(_ context.Context, id string) (*models.AdminUser, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func setupManager(t *testing.T) (*Manager, *memoryAdmins) {
	t.Helper()
	h := testHasher()
	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	admins := &memoryAdmins{users: map[string]*models.AdminUser{
		"admin-1": {ID: "admin-1", Email: "admin@example.com", Name: "Admin User", PasswordHash: hash},
	}}
	m, err := NewManager(admins, h, SessionConfig{Secret: testSecret})
	require.NoError(t, err)
	return m, admins
}

func TestHasher(t *testing.T) {
	h := testHasher()

	a, err := h.Hash("correct horse")
	require.NoError(t, err)
	b, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("correct horse", a))
	assert.True(t, h.Verify("correct horse", b))
	assert.False(t, h.Verify("wrong horse", a))

	// Hashes made with other parameters still verify.
	assert.True(t, NewHasher(DefaultArgon2Params()).Verify("correct horse", a))

	for _, bad := range []string{"", "plain", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$aGFzaA", "$argon2id$v=19$m=1024,t=1,p=1$!!$aGFzaA"} {
		assert.False(t, h.Verify("x", bad), bad)
	}

	_, err = h.Hash("")
	assert.Error(t, err)
}

func TestParsePHC(t *testing.T) {
	encoded, err := testHasher().Hash("correct horse")
	require.NoError(t, err)

	p, err := parsePHC(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint32(1024), p.params.Memory)
	assert.Equal(t, uint32(1), p.params.Iterations)
	assert.Equal(t, uint8(1), p.params.Parallelism)
	assert.Len(t, p.salt, 16)
	assert.Len(t, p.key, 32)
	assert.Equal(t, encoded, p.String())

	for _, bad := range []string{
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=300$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,x=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA",
	} {
		_, err := parsePHC(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewManager_ShortSecret(t *testing.T) {
	_, err := NewManager(&memoryAdmins{}, testHasher(), SessionConfig{Secret: "short"})
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	admin, err := m.Authenticate(ctx, " Admin@Example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", admin.ID)

	_, err = m.Authenticate(ctx, "admin@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.Authenticate(ctx, "someone@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	m, admins := setupManager(t)

	protected := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin := AdminFromContext(r.Context())
		require.NotNil(t, admin)
		_, _ = w.Write([]byte(admin.Email))
	}))

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/messages", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("forged cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	loginRec := httptest.NewRecorder()
	require.NoError(t, m.Login(loginRec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), admins.users["admin-1"]))
	cookie := sessionCookie(t, loginRec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin@example.com", rec.Body.String())

		admin, err := m.Current(req)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", admin.ID)
	})

	t.Run("logout expires the cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		require.NoError(t, m.Logout(rec, req))
		cleared := sessionCookie(t, rec)
		assert.True(t, cleared.MaxAge < 0)
	})

	t.Run("deleted admin", func(t *testing.T) {
		delete(admins.users, "admin-1")
		req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
		req.AddCookie(cookie)
		_, err := m.Current(req)
		assert.ErrorIs(t, err, ErrNoSession)
	})
}
