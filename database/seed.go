// seed.go - Start-up bootstrap against the hosted platform.
//
// The storefront assumes the flat category set exists; start-up makes sure
// the rows are there instead of failing later with an empty category select.

package database

import (
	"context"
	"net/url"

	"petstore/models"
	"petstore/supabase"
)

// DefaultCategories is the storefront's flat category set.
var DefaultCategories = []models.Category{
	{Name: "Comida", Slug: "comida"},
	{Name: "Ropa", Slug: "ropa"},
	{Name: "Servicios", Slug: "servicios"},
	{Name: "Juguetes", Slug: "juguetes"},
}

// EnsureCategories inserts any missing default category. Existing rows are
// left untouched; the slug is the identity.
func EnsureCategories(ctx context.Context, client *supabase.Client) error {
	query := url.Values{}
	query.Set("select", "slug")
	var existing []models.Category
	if err := client.Select(ctx, "categories", query, "", &existing); err != nil {
		return err
	}
	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[c.Slug] = true
	}
	for _, cat := range DefaultCategories {
		if present[cat.Slug] {
			continue
		}
		err := client.Insert(ctx, "categories", map[string]interface{}{
			"name": cat.Name,
			"slug": cat.Slug,
		}, "")
		if err != nil {
			return err
		}
	}
	return nil
}
