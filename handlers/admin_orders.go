// admin_orders.go - Admin back-office: order management

package handlers

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/gin-gonic/gin"

	"petstore/middleware"
	"petstore/models"
)

// AdminOrders lists every order, newest first, with an optional status
// filter applied to the fetched list.
func (e *Env) AdminOrders(c *gin.Context) {
	sess := middleware.Current(c)

	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")
	var orders []models.Order
	if err := e.DB.Select(c.Request.Context(), "orders", query, sess.Token, &orders); err != nil {
		c.HTML(http.StatusBadGateway, "error", e.page(c, gin.H{"Message": "No pudimos cargar los pedidos."}))
		return
	}

	filter := c.DefaultQuery("status", "all")
	filtered := orders
	if filter != "all" {
		filtered = make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == filter {
				filtered = append(filtered, o)
			}
		}
	}

	c.HTML(http.StatusOK, "admin_orders", e.page(c, gin.H{
		"Orders":   filtered,
		"Filter":   filter,
		"Statuses": models.OrderStatuses,
	}))
}

// AdminUpdateOrderStatus moves an order through its lifecycle.
func (e *Env) AdminUpdateOrderStatus(c *gin.Context) {
	sess := middleware.Current(c)
	status := c.PostForm("status")
	back := "/admin/orders"
	if f := c.PostForm("filter"); f != "" {
		back += "?status=" + url.QueryEscape(f)
	}

	if !slices.Contains(models.OrderStatuses, status) {
		redirectWith(c, "/admin/orders", map[string]string{"error": "Estado de pedido inválido."})
		return
	}

	match := url.Values{}
	match.Set("id", "eq."+c.Param("id"))
	err := e.DB.Update(c.Request.Context(), "orders", match,
		map[string]interface{}{"status": status}, sess.Token)
	if err != nil {
		e.Log.Warn().Err(err).Str("id", c.Param("id")).Msg("order status update failed")
		redirectWith(c, "/admin/orders", map[string]string{"error": "No pudimos actualizar el pedido."})
		return
	}
	c.Redirect(http.StatusSeeOther, back)
}
