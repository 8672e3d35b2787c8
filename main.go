// main.go - Entry point for the pet-store storefront server

package main

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"petstore/config"
	"petstore/database"
	"petstore/handlers"
	"petstore/middleware"
	"petstore/supabase"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// STEP 1: Load configuration and build the platform clients.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration error")
	}
	client, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("platform client error")
	}
	env := &handlers.Env{DB: client, Auth: client.Auth(), Cfg: cfg, Log: logger}

	// Make sure the flat category set exists. Not fatal: the platform may
	// simply be unreachable right now.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureCategories(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("category bootstrap failed")
	}
	cancel()

	// STEP 2: Create the router and configure routes.
	r := gin.Default()
	r.SetFuncMap(templateFuncs())
	r.LoadHTMLGlob("templates/*.tmpl")
	r.Use(middleware.Resolve(client, client.Auth()))

	registerRoutes(r, env)

	// STEP 3: Start the web server.
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func registerRoutes(r *gin.Engine, env *handlers.Env) {
	// Public storefront.
	r.GET("/", env.Home)
	r.GET("/product/:slug", env.ProductDetail)
	r.POST("/newsletter", env.SubscribeNewsletter)
	r.POST("/cart/add", env.AddToCart) // redirects to login when signed out

	// Auth pages.
	r.GET("/auth/login", env.LoginForm)
	r.POST("/auth/login", env.Login)
	r.GET("/auth/signup", env.SignupForm)
	r.POST("/auth/signup", env.Signup)
	r.POST("/auth/logout", env.Logout)

	// Pages requiring a session.
	user := r.Group("/")
	user.Use(middleware.RequireUser())
	{
		user.GET("/cart", env.Cart)
		user.POST("/cart/update", env.UpdateCartItem)
		user.POST("/cart/remove", env.RemoveCartItem)
		user.POST("/cart/checkout", env.Checkout)
		user.GET("/profile", env.Profile)
	}

	// Admin back-office.
	admin := r.Group("/admin")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("", env.AdminProducts)
		admin.POST("/products", env.AdminCreateProduct)
		admin.POST("/products/:id", env.AdminUpdateProduct)
		admin.POST("/products/:id/delete", env.AdminDeleteProduct)
		admin.GET("/orders", env.AdminOrders)
		admin.POST("/orders/:id/status", env.AdminUpdateOrderStatus)
		admin.GET("/analytics", env.AdminAnalytics)
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"statusColor": func(status string) string {
			colors := map[string]string{
				"pending":   "#fbbf24",
				"confirmed": "#60a5fa",
				"shipped":   "#34d399",
				"delivered": "#10b981",
				"cancelled": "#ef4444",
			}
			if c, ok := colors[status]; ok {
				return c
			}
			return "#6b7280"
		},
	}
}
