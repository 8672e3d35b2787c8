// pricing.go - Cart money arithmetic

package pricing

import "petstore/models"

const (
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold = 75.0
	// FlatShippingFee applies to every order at or below the threshold.
	FlatShippingFee = 8.99
)

// LineTotal is the price of one cart line.
func LineTotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// Subtotal sums the line totals of the cart.
func Subtotal(items []models.CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += LineTotal(item.Product.Price, item.Quantity)
	}
	return sum
}

// Shipping is zero above the free-shipping threshold, flat otherwise.
func Shipping(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Total is subtotal plus shipping.
func Total(subtotal float64) float64 {
	return subtotal + Shipping(subtotal)
}
