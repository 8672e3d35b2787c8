// profile.go - Profile page with order history

package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"petstore/middleware"
	"petstore/models"
)

// Profile shows the user's profile record and their orders, newest first.
func (e *Env) Profile(c *gin.Context) {
	sess := middleware.Current(c)

	userQuery := url.Values{}
	userQuery.Set("select", "*")
	userQuery.Set("id", "eq."+sess.User.ID)
	var users []models.User
	if err := e.DB.Select(c.Request.Context(), "users", userQuery, sess.Token, &users); err != nil {
		c.HTML(http.StatusBadGateway, "error", e.page(c, gin.H{"Message": "No pudimos cargar tu perfil."}))
		return
	}
	var profile models.User
	if len(users) > 0 {
		profile = users[0]
	}

	orderQuery := url.Values{}
	orderQuery.Set("select", "*,order_items(*)")
	orderQuery.Set("user_id", "eq."+sess.User.ID)
	orderQuery.Set("order", "created_at.desc")
	var orders []models.Order
	if err := e.DB.Select(c.Request.Context(), "orders", orderQuery, sess.Token, &orders); err != nil {
		c.HTML(http.StatusBadGateway, "error", e.page(c, gin.H{"Message": "No pudimos cargar tus pedidos."}))
		return
	}

	c.HTML(http.StatusOK, "profile", e.page(c, gin.H{
		"Profile": profile,
		"Orders":  orders,
	}))
}
