// storefront.go - Home page: product grid, search, add to cart, newsletter

package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"petstore/catalog"
	"petstore/middleware"
	"petstore/models"
)

// Home renders the storefront: the first eight active products, narrowed
// by the ?q= search filter recomputed against the fetched list.
func (e *Env) Home(c *gin.Context) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("is_active", "eq.true")
	query.Set("limit", "8")

	sess := middleware.Current(c)
	var products []models.Product
	if err := e.DB.Select(c.Request.Context(), "products", query, sess.Token, &products); err != nil {
		c.HTML(http.StatusOK, "home", e.page(c, gin.H{"Error": "No pudimos cargar los productos."}))
		return
	}

	q := c.Query("q")
	c.HTML(http.StatusOK, "home", e.page(c, gin.H{
		"Products": catalog.Filter(q, products),
		"Query":    q,
	}))
}

// AddToCart adds a product to the signed-in user's cart. The cart keeps
// one row per (user, product): an existing row gets its quantity bumped,
// otherwise a new row is inserted. Either way the cart page refetches
// afterwards, so the redirect target always shows authoritative state.
func (e *Env) AddToCart(c *gin.Context) {
	sess := middleware.Current(c)
	if !sess.SignedIn() {
		c.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}

	productID := c.PostForm("product_id")
	returnTo := c.DefaultPostForm("return", "/")
	if productID == "" {
		redirectWith(c, returnTo, map[string]string{"error": "Producto inválido."})
		return
	}
	quantity, err := strconv.Atoi(c.DefaultPostForm("quantity", "1"))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	// Look up the existing row for this (user, product) pair.
	query := url.Values{}
	query.Set("select", "id,quantity")
	query.Set("user_id", "eq."+sess.User.ID)
	query.Set("product_id", "eq."+productID)
	var existing []models.CartItem
	if err := e.DB.Select(c.Request.Context(), "cart_items", query, sess.Token, &existing); err != nil {
		redirectWith(c, returnTo, map[string]string{"error": "No pudimos agregar el producto al carrito."})
		return
	}

	if len(existing) > 0 {
		match := url.Values{}
		match.Set("id", "eq."+existing[0].ID)
		err = e.DB.Update(c.Request.Context(), "cart_items", match,
			map[string]interface{}{"quantity": existing[0].Quantity + quantity}, sess.Token)
	} else {
		err = e.DB.Insert(c.Request.Context(), "cart_items", map[string]interface{}{
			"user_id":    sess.User.ID,
			"product_id": productID,
			"quantity":   quantity,
		}, sess.Token)
	}
	if err != nil {
		e.Log.Warn().Err(err).Str("product_id", productID).Msg("add to cart failed")
		redirectWith(c, returnTo, map[string]string{"error": "No pudimos agregar el producto al carrito."})
		return
	}
	redirectWith(c, returnTo, map[string]string{"notice": "Producto agregado al carrito."})
}

// SubscribeNewsletter appends an email to the newsletter list.
func (e *Env) SubscribeNewsletter(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		redirectWith(c, "/", map[string]string{"error": "Ingresa tu email para suscribirte."})
		return
	}
	sess := middleware.Current(c)
	err := e.DB.Insert(c.Request.Context(), "newsletter_subscriptions", models.NewsletterSubscription{
		Email:    email,
		IsActive: true,
	}, sess.Token)
	if err != nil {
		e.Log.Warn().Err(err).Msg("newsletter subscribe failed")
		redirectWith(c, "/", map[string]string{"error": "Error al suscribirse. Intenta de nuevo."})
		return
	}
	redirectWith(c, "/", map[string]string{"notice": "¡Gracias por suscribirte! Recibirás descuentos exclusivos en tu email."})
}
