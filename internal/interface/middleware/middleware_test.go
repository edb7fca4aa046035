package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/infrastructure/session"
	"github.com/oksasatya/discount-catalog/internal/store"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type fixture struct {
	jwt      *helpers.JWTManager
	sessions *session.MemoryRepository
	stores   *store.Registry
	engine   *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		jwt:      helpers.NewJWTManager("test-secret", time.Hour),
		sessions: session.NewMemoryRepository(),
		stores:   store.NewRegistry(nil),
	}
	f.engine = gin.New()
	f.engine.Use(RequestID(), RealIP(), Session(f.jwt, f.sessions, f.stores, helpers.NewCookie("", false), nil))
	return f
}

func (f *fixture) login(t *testing.T, admin bool) *http.Cookie {
	t.Helper()
	sess := &entity.Session{
		ID:        uuid.NewString(),
		Token:     "api-token",
		User:      entity.UserInfo{ID: "u1", Name: "Ann", IsAdmin: admin},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, f.sessions.Save(context.Background(), sess))
	tok, _, err := f.jwt.GenerateSessionToken(sess.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: helpers.SessionCookie, Value: tok}
}

func (f *fixture) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	f := newFixture(t)
	f.engine.GET("/profile", RequireAuth(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := f.get("/profile", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?redirect=%2Fprofile", w.Header().Get("Location"))

	w = f.get("/profile", f.login(t, false))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture(t)
	f.engine.GET("/admin/discounts", RequireAdmin(), func(c *gin.Context) {
		assert.Equal(t, "u1", c.GetString(CtxUserIDKey))
		c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, "/login", f.get("/admin/discounts", nil).Header().Get("Location"))
	assert.Equal(t, "/login", f.get("/admin/discounts", f.login(t, false)).Header().Get("Location"))
	assert.Equal(t, http.StatusOK, f.get("/admin/discounts", f.login(t, true)).Code)
}

func TestSessionStoreIsStablePerSession(t *testing.T) {
	f := newFixture(t)
	var seen []*store.Store
	f.engine.GET("/x", func(c *gin.Context) {
		seen = append(seen, CurrentStore(c))
		c.Status(http.StatusNoContent)
	})

	cookie := f.login(t, false)
	f.get("/x", cookie)
	f.get("/x", cookie)
	f.get("/x", nil)
	require.Len(t, seen, 3)
	assert.Same(t, seen[0], seen[1])
	assert.NotSame(t, seen[0], seen[2])
	assert.Equal(t, 1, f.stores.Len())
}

func TestStaleSessionClearsCookie(t *testing.T) {
	f := newFixture(t)
	f.engine.GET("/profile", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	cookie := f.login(t, true)
	claims, err := f.jwt.ParseSessionToken(cookie.Value)
	require.NoError(t, err)
	require.NoError(t, f.sessions.Delete(context.Background(), claims.SessionID))

	w := f.get("/profile", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), helpers.SessionCookie+"=;")

	w = f.get("/profile", &http.Cookie{Name: helpers.SessionCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestRequireAPIAuth(t *testing.T) {
	f := newFixture(t)
	f.engine.GET("/api/catalog", RequireAPIAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := f.get("/api/catalog", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	f := newFixture(t)
	f.engine.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Body.String())
}

func TestRealIP(t *testing.T) {
	f := newFixture(t)
	f.engine.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRealIPKey)) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, "203.0.113.7", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("CF-Connecting-IP", "198.51.100.2")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w = httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, "198.51.100.2", w.Body.String())
}

func TestRateLimitWithoutRedisIsNoop(t *testing.T) {
	f := newFixture(t)
	f.engine.GET("/login", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, f.get("/login", nil).Code)
	}
}

func TestAllowFuncs(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(CtxRealIPKey, "127.0.0.1")

	assert.True(t, AllowPrivateIP()(c))
	assert.True(t, AllowReadOnly()(c))

	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set(CtxRealIPKey, "203.0.113.7")
	assert.False(t, AnyAllow(AllowPrivateIP(), AllowReadOnly())(c))
	assert.Equal(t, "rl:ip:203.0.113.7", KeyByIP()(c))
	assert.Equal(t, "rl:user:anon:ip:203.0.113.7", KeyByUserID()(c))
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/login", LoginURL("/"))
	assert.Equal(t, "/login?redirect=%2Fdiscount%2F1", LoginURL("/discount/1"))
}
