// env.go - Shared dependencies injected into every page handler

package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"petstore/config"
	"petstore/middleware"
	"petstore/supabase"
)

// Env carries the platform clients and config into the page handlers.
// Every handler is a method on Env; there is no package-level state.
type Env struct {
	DB   *supabase.Client
	Auth *supabase.AuthClient
	Cfg  *config.Config
	Log  zerolog.Logger
}

// page builds the common template data: the resolved session plus any
// flash message carried over from a redirect.
func (e *Env) page(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = middleware.Current(c)
	if _, ok := data["Error"]; !ok {
		data["Error"] = c.Query("error")
	}
	if _, ok := data["Notice"]; !ok {
		data["Notice"] = c.Query("notice")
	}
	return data
}

// redirectWith issues a see-other redirect carrying flash params. Empty
// values are dropped so clean URLs stay clean.
func redirectWith(c *gin.Context, path string, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	target := path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

// notFound renders the 404 page.
func (e *Env) notFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "error", e.page(c, gin.H{"Message": message}))
}
