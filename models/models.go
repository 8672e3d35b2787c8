// models.go - Record types mirroring the platform tables

package models

import "time"

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"` // "customer" or "admin"
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	CategoryID    string    `json:"category_id"`
	ImageURL      string    `json:"image_url"`
	StockQuantity int       `json:"stock_quantity"` // 0 disables purchase
	IsActive      bool      `json:"is_active"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CartProduct is the embedded product columns a cart query selects.
type CartProduct struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
}

// CartItem is one row per (user, product). The platform returns the joined
// product under the table name, hence the "products" key.
type CartItem struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id,omitempty"`
	ProductID string      `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Product   CartProduct `json:"products"`
}

// Order statuses as stored on the platform.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// OrderStatuses lists every valid status, in lifecycle order.
var OrderStatuses = []string{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled}

type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	UserID        string      `json:"user_id,omitempty"`
	TotalPrice    float64     `json:"total_price"`
	Status        string      `json:"status"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `json:"order_items,omitempty"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type NewsletterSubscription struct {
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}
