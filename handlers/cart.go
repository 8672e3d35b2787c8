// cart.go - Cart page: line items, totals and the WhatsApp checkout

package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"petstore/checkout"
	"petstore/middleware"
	"petstore/models"
	"petstore/pricing"
)

// fetchCartItems reads the user's cart with the product columns embedded,
// the one read every cart mutation refetches afterwards.
func (e *Env) fetchCartItems(ctx context.Context, sess middleware.Session) ([]models.CartItem, error) {
	query := url.Values{}
	query.Set("select", "id,product_id,quantity,products(name,price,image_url,stock_quantity)")
	query.Set("user_id", "eq."+sess.User.ID)
	var items []models.CartItem
	err := e.DB.Select(ctx, "cart_items", query, sess.Token, &items)
	return items, err
}

// Cart renders the cart with its order summary.
func (e *Env) Cart(c *gin.Context) {
	sess := middleware.Current(c)
	items, err := e.fetchCartItems(c.Request.Context(), sess)
	if err != nil {
		c.HTML(http.StatusBadGateway, "error", e.page(c, gin.H{"Message": "No pudimos cargar tu carrito."}))
		return
	}
	subtotal := pricing.Subtotal(items)
	shipping := pricing.Shipping(subtotal)
	c.HTML(http.StatusOK, "cart", e.page(c, gin.H{
		"Items":     items,
		"Subtotal":  subtotal,
		"Shipping":  shipping,
		"Total":     subtotal + shipping,
		"Threshold": pricing.FreeShippingThreshold,
	}))
}

// UpdateCartItem sets a line's quantity. A quantity below one removes the
// row instead of storing a non-positive value.
func (e *Env) UpdateCartItem(c *gin.Context) {
	sess := middleware.Current(c)
	itemID := c.PostForm("item_id")
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if itemID == "" || err != nil {
		redirectWith(c, "/cart", map[string]string{"error": "Cantidad inválida."})
		return
	}

	match := url.Values{}
	match.Set("id", "eq."+itemID)
	if quantity < 1 {
		err = e.DB.Delete(c.Request.Context(), "cart_items", match, sess.Token)
	} else {
		err = e.DB.Update(c.Request.Context(), "cart_items", match,
			map[string]interface{}{"quantity": quantity}, sess.Token)
	}
	if err != nil {
		e.Log.Warn().Err(err).Str("item_id", itemID).Msg("cart update failed")
		redirectWith(c, "/cart", map[string]string{"error": "No pudimos actualizar el carrito."})
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// RemoveCartItem deletes a line outright.
func (e *Env) RemoveCartItem(c *gin.Context) {
	sess := middleware.Current(c)
	itemID := c.PostForm("item_id")
	if itemID == "" {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}
	match := url.Values{}
	match.Set("id", "eq."+itemID)
	if err := e.DB.Delete(c.Request.Context(), "cart_items", match, sess.Token); err != nil {
		e.Log.Warn().Err(err).Str("item_id", itemID).Msg("cart remove failed")
		redirectWith(c, "/cart", map[string]string{"error": "No pudimos eliminar el producto."})
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// Checkout re-reads the cart, builds the order summary and hands the sale
// off to the operator's WhatsApp chat. No order row is written here; the
// operator finalizes the sale manually from the message.
func (e *Env) Checkout(c *gin.Context) {
	sess := middleware.Current(c)
	email := c.PostForm("email")
	phone := c.PostForm("phone")
	if email == "" || phone == "" {
		redirectWith(c, "/cart", map[string]string{"error": "Por favor completa tu email y teléfono."})
		return
	}

	items, err := e.fetchCartItems(c.Request.Context(), sess)
	if err != nil {
		redirectWith(c, "/cart", map[string]string{"error": "No pudimos cargar tu carrito."})
		return
	}
	if len(items) == 0 {
		redirectWith(c, "/cart", map[string]string{"error": "Tu carrito está vacío."})
		return
	}

	subtotal := pricing.Subtotal(items)
	shipping := pricing.Shipping(subtotal)
	ref := checkout.NewOrderRef()
	message := checkout.BuildMessage(ref, items, subtotal, shipping, subtotal+shipping, email, phone)
	c.Redirect(http.StatusSeeOther, checkout.WhatsAppURL(e.Cfg.WhatsAppNumber, message))
}
