// auth.go - Sign-in, sign-up and sign-out pages

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petstore/middleware"
)

// Sessions outlive the request; the cookie simply carries the platform
// access token. GoTrue tokens default to an hour, this cap is a backstop.
const sessionCookieMaxAge = 72 * 3600

// LoginForm renders the login page.
func (e *Env) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login", e.page(c, gin.H{"Email": ""}))
}

// Login establishes a session with the platform. A failed attempt renders
// the same page with an inline error so the user can retry immediately.
func (e *Env) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	session, err := e.Auth.SignInWithPassword(c.Request.Context(), email, password)
	if err != nil {
		c.HTML(http.StatusOK, "login", e.page(c, gin.H{
			"Error": "Credenciales inválidas. Intenta de nuevo.",
			"Email": email,
		}))
		return
	}

	maxAge := session.ExpiresIn
	if maxAge <= 0 || maxAge > sessionCookieMaxAge {
		maxAge = sessionCookieMaxAge
	}
	c.SetCookie(middleware.CookieName, session.AccessToken, maxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// SignupForm renders the signup page.
func (e *Env) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup", e.page(c, gin.H{"FullName": "", "Email": ""}))
}

// Signup creates the platform account and its profile row with the
// customer role. Duplicate emails and policy violations stay on the page
// as an inline error without navigating away.
func (e *Env) Signup(c *gin.Context) {
	fullName := c.PostForm("full_name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	renderErr := func(msg string) {
		c.HTML(http.StatusOK, "signup", e.page(c, gin.H{
			"Error":    msg,
			"FullName": fullName,
			"Email":    email,
		}))
	}

	if fullName == "" || email == "" || password == "" {
		renderErr("Completa todos los campos.")
		return
	}

	user, err := e.Auth.SignUp(c.Request.Context(), email, password,
		map[string]interface{}{"full_name": fullName})
	if err != nil {
		e.Log.Warn().Err(err).Msg("signup failed")
		renderErr("Error al registrarse: " + err.Error())
		return
	}

	// Profile row carries the role the session store reads back later.
	err = e.DB.Insert(c.Request.Context(), "users", map[string]interface{}{
		"id":        user.ID,
		"email":     email,
		"full_name": fullName,
		"role":      "customer",
	}, "")
	if err != nil {
		e.Log.Error().Err(err).Str("user_id", user.ID).Msg("profile insert failed")
		renderErr("Tu cuenta fue creada pero no pudimos guardar tu perfil. Contáctanos.")
		return
	}

	redirectWith(c, "/auth/login", map[string]string{"notice": "¡Verificación enviada a tu email!"})
}

// Logout clears the session on the platform and drops the cookie.
func (e *Env) Logout(c *gin.Context) {
	sess := middleware.Current(c)
	if sess.SignedIn() {
		if err := e.Auth.SignOut(c.Request.Context(), sess.Token); err != nil {
			e.Log.Warn().Err(err).Msg("platform sign-out failed")
		}
	}
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
