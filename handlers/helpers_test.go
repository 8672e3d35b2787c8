// helpers_test.go - Shared test setup: a fake platform server plus a gin
// router wired like the real app (templates, session middleware).

package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"petstore/config"
	"petstore/middleware"
	"petstore/supabase"
)

// testEnv points the handlers at a fake platform served by handler.
func testEnv(t *testing.T, handler http.HandlerFunc) *Env {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := supabase.New(srv.URL, "anon-key", zerolog.Nop())
	require.NoError(t, err)
	cfg := &config.Config{
		SupabaseURL:     srv.URL,
		SupabaseAnonKey: "anon-key",
		Addr:            ":0",
		WhatsAppNumber:  "1234567890",
	}
	return &Env{DB: client, Auth: client.Auth(), Cfg: cfg, Log: zerolog.Nop()}
}

// testRouter loads the real templates and session middleware; each test
// registers just the routes it drives.
func testRouter(env *Env) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetFuncMap(template.FuncMap{
		"money":       func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"statusColor": func(string) string { return "#6b7280" },
	})
	r.LoadHTMLGlob("../templates/*.tmpl")
	r.Use(middleware.Resolve(env.DB, env.Auth))
	return r
}

// userToken builds a parseable, unexpired access token for the cookie.
func userToken(t *testing.T) string {
	claims := jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// withSession wraps a fake-platform handler with the two endpoints session
// resolution hits on every request carrying a cookie.
func withSession(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/v1/user":
			w.Write([]byte(`{"id":"u1","email":"ana@example.com"}`))
		case strings.HasPrefix(r.URL.Path, "/rest/v1/users") && r.URL.Query().Get("select") == "role":
			w.Write([]byte(`[{"role":"` + role + `"}]`))
		default:
			next(w, r)
		}
	}
}

func getPage(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: cookie})
	}
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: cookie})
	}
	r.ServeHTTP(w, req)
	return w
}
