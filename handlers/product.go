// product.go - Product detail page

package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"petstore/middleware"
	"petstore/models"
)

// ProductDetail renders a single product. The route segment is the product
// id; an unknown id is a plain 404.
func (e *Env) ProductDetail(c *gin.Context) {
	id := c.Param("slug")

	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+id)
	query.Set("limit", "1")

	sess := middleware.Current(c)
	var products []models.Product
	if err := e.DB.Select(c.Request.Context(), "products", query, sess.Token, &products); err != nil {
		c.HTML(http.StatusBadGateway, "error", e.page(c, gin.H{"Message": "No pudimos cargar el producto."}))
		return
	}
	if len(products) == 0 || !products[0].IsActive {
		e.notFound(c, "Producto no encontrado.")
		return
	}
	c.HTML(http.StatusOK, "product", e.page(c, gin.H{"Product": products[0]}))
}
