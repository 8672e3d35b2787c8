// product_test.go - Tests for the product detail page

package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func productRouter(env *Env) *gin.Engine {
	r := testRouter(env)
	r.GET("/product/:slug", env.ProductDetail)
	return r
}

func TestProductDetailRenders(t *testing.T) {
	env := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/products", r.URL.Path)
		assert.Equal(t, "eq.p1", r.URL.Query().Get("id"))
		w.Write([]byte(`[{"id":"p1","name":"Croquetas Premium","description":"Comida seca para perros","price":25.50,"stock_quantity":10,"is_active":true}]`))
	})
	r := productRouter(env)

	w := getPage(r, "/product/p1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Croquetas Premium")
	assert.Contains(t, w.Body.String(), "$25.50")
}

func TestProductDetailUnknownIDIs404(t *testing.T) {
	env := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	r := productRouter(env)

	w := getPage(r, "/product/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Producto no encontrado")
}

func TestProductDetailInactiveIs404(t *testing.T) {
	env := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","name":"Croquetas Premium","price":25.50,"is_active":false}]`))
	})
	r := productRouter(env)

	w := getPage(r, "/product/p1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductDetailPlatformErrorIs502(t *testing.T) {
	env := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r := productRouter(env)

	w := getPage(r, "/product/p1", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
