// admin.go - Admin back-office: product management

package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"petstore/middleware"
	"petstore/models"
)

// AdminProducts renders the product table with the create/edit form.
// ?edit=<id> pre-fills the form from the already-fetched list.
func (e *Env) AdminProducts(c *gin.Context) {
	sess := middleware.Current(c)

	catQuery := url.Values{}
	catQuery.Set("select", "*")
	var categories []models.Category
	if err := e.DB.Select(c.Request.Context(), "categories", catQuery, sess.Token, &categories); err != nil {
		c.HTML(http.StatusBadGateway, "error", e.page(c, gin.H{"Message": "No pudimos cargar las categorías."}))
		return
	}

	prodQuery := url.Values{}
	prodQuery.Set("select", "*")
	prodQuery.Set("order", "created_at.desc")
	var products []models.Product
	if err := e.DB.Select(c.Request.Context(), "products", prodQuery, sess.Token, &products); err != nil {
		c.HTML(http.StatusBadGateway, "error", e.page(c, gin.H{"Message": "No pudimos cargar los productos."}))
		return
	}

	var editing *models.Product
	if editID := c.Query("edit"); editID != "" {
		for i := range products {
			if products[i].ID == editID {
				editing = &products[i]
				break
			}
		}
	}

	c.HTML(http.StatusOK, "admin_products", e.page(c, gin.H{
		"Categories": categories,
		"Products":   products,
		"Editing":    editing,
	}))
}

// productForm validates the shared create/update form fields.
func productForm(c *gin.Context) (map[string]interface{}, bool) {
	price, errPrice := strconv.ParseFloat(c.PostForm("price"), 64)
	stock, errStock := strconv.Atoi(c.PostForm("stock_quantity"))
	name := c.PostForm("name")
	if name == "" || errPrice != nil || price < 0 || errStock != nil || stock < 0 {
		return nil, false
	}
	return map[string]interface{}{
		"name":           name,
		"description":    c.PostForm("description"),
		"price":          price,
		"category_id":    c.PostForm("category_id"),
		"image_url":      c.PostForm("image_url"),
		"stock_quantity": stock,
	}, true
}

// AdminCreateProduct inserts a product and refreshes the table.
func (e *Env) AdminCreateProduct(c *gin.Context) {
	sess := middleware.Current(c)
	fields, ok := productForm(c)
	if !ok {
		redirectWith(c, "/admin", map[string]string{"error": "Datos de producto inválidos."})
		return
	}
	fields["created_by"] = sess.User.ID
	if err := e.DB.Insert(c.Request.Context(), "products", fields, sess.Token); err != nil {
		e.Log.Warn().Err(err).Msg("product create failed")
		redirectWith(c, "/admin", map[string]string{"error": "No pudimos crear el producto."})
		return
	}
	redirectWith(c, "/admin", map[string]string{"notice": "Producto creado."})
}

// AdminUpdateProduct updates a product row in place.
func (e *Env) AdminUpdateProduct(c *gin.Context) {
	sess := middleware.Current(c)
	fields, ok := productForm(c)
	if !ok {
		redirectWith(c, "/admin", map[string]string{"error": "Datos de producto inválidos."})
		return
	}
	fields["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	match := url.Values{}
	match.Set("id", "eq."+c.Param("id"))
	if err := e.DB.Update(c.Request.Context(), "products", match, fields, sess.Token); err != nil {
		e.Log.Warn().Err(err).Str("id", c.Param("id")).Msg("product update failed")
		redirectWith(c, "/admin", map[string]string{"error": "No pudimos actualizar el producto."})
		return
	}
	redirectWith(c, "/admin", map[string]string{"notice": "Producto actualizado."})
}

// AdminDeleteProduct removes a product row.
func (e *Env) AdminDeleteProduct(c *gin.Context) {
	sess := middleware.Current(c)
	match := url.Values{}
	match.Set("id", "eq."+c.Param("id"))
	if err := e.DB.Delete(c.Request.Context(), "products", match, sess.Token); err != nil {
		e.Log.Warn().Err(err).Str("id", c.Param("id")).Msg("product delete failed")
		redirectWith(c, "/admin", map[string]string{"error": "No pudimos eliminar el producto."})
		return
	}
	redirectWith(c, "/admin", map[string]string{"notice": "Producto eliminado."})
}
