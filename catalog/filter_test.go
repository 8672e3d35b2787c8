// filter_test.go - Tests for the in-memory product search

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"petstore/models"
)

var products = []models.Product{
	{ID: "1", Name: "Croquetas Premium", Description: "Comida seca para perros adultos"},
	{ID: "2", Name: "Sueter de Lana", Description: "Ropa abrigada para gatos"},
	{ID: "3", Name: "Snack de Comida Húmeda", Description: "Lata individual para gatitos"},
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	assert.Equal(t, products, Filter("", products))
	assert.Equal(t, products, Filter("   ", products)) // all-space counts as empty
}

func TestFilterMatchesNameCaseInsensitive(t *testing.T) {
	got := Filter("CROQUETAS", products)
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterMatchesDescription(t *testing.T) {
	got := Filter("gatos", products)
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestFilterMatchesEitherField(t *testing.T) {
	got := Filter("comida", products)
	assert.Len(t, got, 2) // description of 1, name of 3
}

func TestFilterNoMatches(t *testing.T) {
	assert.Empty(t, Filter("acuario", products))
}
