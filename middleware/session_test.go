// session_test.go - Tests for session resolution and route guarding

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstore/supabase"
)

// fakePlatform serves the two endpoints session resolution touches: the
// auth user lookup and the users-table role select.
type fakePlatform struct {
	userStatus int    // status for GET /auth/v1/user
	role       string // role column value
	roleStatus int    // status for GET /rest/v1/users
}

func (f *fakePlatform) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/v1/user":
			if f.userStatus != 0 && f.userStatus != http.StatusOK {
				w.WriteHeader(f.userStatus)
				w.Write([]byte(`{"msg":"invalid JWT"}`))
				return
			}
			w.Write([]byte(`{"id":"u1","email":"ana@example.com"}`))
		case strings.HasPrefix(r.URL.Path, "/rest/v1/users"):
			if f.roleStatus != 0 && f.roleStatus != http.StatusOK {
				w.WriteHeader(f.roleStatus)
				return
			}
			w.Write([]byte(`[{"role":"` + f.role + `"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	claims := jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(expiresIn).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func setupRouter(t *testing.T, fake *fakePlatform) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	client, err := supabase.New(srv.URL, "anon-key", zerolog.Nop())
	require.NoError(t, err)

	r := gin.New()
	r.LoadHTMLFiles("../templates/error.tmpl", "../templates/partials.tmpl")
	r.Use(Resolve(client, client.Auth()))

	r.GET("/public", func(c *gin.Context) {
		c.String(http.StatusOK, "role=%s known=%v", Current(c).Role, Current(c).RoleKnown)
	})
	user := r.Group("/", RequireUser())
	user.GET("/profile", func(c *gin.Context) { c.String(http.StatusOK, "profile page") })
	admin := r.Group("/admin", RequireRole("admin"))
	admin.GET("", func(c *gin.Context) { c.String(http.StatusOK, "secret admin panel") })
	return r
}

func get(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	r.ServeHTTP(w, req)
	return w
}

func TestNoSessionRedirectsToLogin(t *testing.T) {
	r := setupRouter(t, &fakePlatform{})

	w := get(r, "/profile", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	w = get(r, "/admin", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestCustomerCannotReachAdmin(t *testing.T) {
	r := setupRouter(t, &fakePlatform{role: "customer"})
	token := signedToken(t, time.Hour)

	w := get(r, "/profile", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/admin", token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "secret admin panel")
}

func TestAdminReachesAdmin(t *testing.T) {
	r := setupRouter(t, &fakePlatform{role: "admin"})
	token := signedToken(t, time.Hour)

	w := get(r, "/admin", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "secret admin panel")
}

// TestUnknownRoleNeverRedirects covers the loading-state rule: while the
// role cannot be resolved the guard must neither redirect nor render
// privileged content.
func TestUnknownRoleNeverRedirects(t *testing.T) {
	r := setupRouter(t, &fakePlatform{roleStatus: http.StatusInternalServerError})
	token := signedToken(t, time.Hour)

	w := get(r, "/admin", token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "secret admin panel")
}

func TestMissingRoleRowDefaultsToCustomer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/v1/user" {
			w.Write([]byte(`{"id":"u1","email":"ana@example.com"}`))
			return
		}
		w.Write([]byte(`[]`)) // no users row yet
	}))
	t.Cleanup(srv.Close)
	client, err := supabase.New(srv.URL, "anon-key", zerolog.Nop())
	require.NoError(t, err)

	r := gin.New()
	r.Use(Resolve(client, client.Auth()))
	r.GET("/public", func(c *gin.Context) {
		c.String(http.StatusOK, "role=%s known=%v", Current(c).Role, Current(c).RoleKnown)
	})

	w := get(r, "/public", signedToken(t, time.Hour))
	assert.Equal(t, "role=customer known=true", w.Body.String())
}

func TestExpiredTokenIsSignedOut(t *testing.T) {
	r := setupRouter(t, &fakePlatform{role: "admin"})
	token := signedToken(t, -time.Hour)

	w := get(r, "/profile", token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestRevokedTokenIsSignedOut(t *testing.T) {
	r := setupRouter(t, &fakePlatform{userStatus: http.StatusUnauthorized})
	token := signedToken(t, time.Hour)

	w := get(r, "/profile", token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}
