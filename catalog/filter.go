// filter.go - In-memory product search over an already-fetched list

package catalog

import (
	"strings"

	"petstore/models"
)

// Filter returns the products whose name or description contains query as
// a case-insensitive substring. An empty (or all-space) query returns the
// input unchanged.
func Filter(query string, products []models.Product) []models.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return products
	}
	needle := strings.ToLower(query)
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}
