// session.go - Per-request session resolution and route guarding.
//
// The session is resolved once per request and injected into the gin
// context as an explicit value; handlers never touch globals. Guarding
// runs only after resolution has finished, so a still-unknown role can
// never cause a premature redirect or a flash of privileged content.

package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"petstore/supabase"
)

// CookieName holds the platform access token between requests.
const CookieName = "petstore_session"

const sessionKey = "session"

// Session is the resolved identity for one request.
type Session struct {
	User      *supabase.AuthUser // nil when signed out
	Role      string             // meaningful only when RoleKnown
	RoleKnown bool               // false while the role lookup failed
	Token     string             // access token forwarded to table queries
}

// SignedIn reports whether an authenticated identity exists.
func (s Session) SignedIn() bool { return s.User != nil }

// IsAdmin reports whether the resolved role is admin.
func (s Session) IsAdmin() bool { return s.RoleKnown && s.Role == "admin" }

// Resolve returns the middleware that authenticates the session cookie and
// fetches the role attribute for the active identity.
func Resolve(client *supabase.Client, auth *supabase.AuthClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, resolve(c, client, auth))
		c.Next()
	}
}

func resolve(c *gin.Context, client *supabase.Client, auth *supabase.AuthClient) Session {
	sess := Session{}

	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return sess
	}

	// Cheap local expiry check before the network round trip. The signing
	// secret stays on the platform, so full validation is the auth
	// service's job below.
	if expired(token) {
		clearCookie(c)
		return sess
	}

	user, err := auth.User(c.Request.Context(), token)
	if err != nil {
		// Revoked or garbage token: drop it and continue signed out.
		clearCookie(c)
		return sess
	}
	sess.User = user
	sess.Token = token

	// Role comes from the users table, not the token.
	var rows []struct {
		Role string `json:"role"`
	}
	query := url.Values{}
	query.Set("select", "role")
	query.Set("id", "eq."+user.ID)
	if err := client.Select(c.Request.Context(), "users", query, token, &rows); err != nil {
		// Role stays unknown; guards must not redirect on this.
		return sess
	}
	sess.RoleKnown = true
	if len(rows) > 0 && rows[0].Role != "" {
		sess.Role = rows[0].Role
	} else {
		sess.Role = "customer"
	}
	return sess
}

// Current returns the session resolved for this request.
func Current(c *gin.Context) Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(Session); ok {
			return sess
		}
	}
	return Session{}
}

// RequireUser redirects signed-out visitors to the login page.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Current(c).SignedIn() {
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
		}
	}
}

// RequireRole guards a group behind a role. An unknown role (failed role
// lookup) renders an error page and never redirects.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := Current(c)
		if !sess.SignedIn() {
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
			return
		}
		if !sess.RoleKnown {
			c.HTML(http.StatusServiceUnavailable, "error", gin.H{
				"Message": "No pudimos verificar tu acceso. Intenta de nuevo.",
				"Session": sess,
			})
			c.Abort()
			return
		}
		if sess.Role != role {
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
		}
	}
}

func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func clearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
