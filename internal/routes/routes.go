package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aavkar_pos/internal/cache"
	"aavkar_pos/internal/handlers"
	"aavkar_pos/internal/middleware"
)

type Options struct {
	JWTSecret   []byte
	CORSOrigins []string
	Limits      *cache.Cache
	Log         *zap.Logger
}

// corsConfig lets the dashboard origins in with credentials, the terminal
// cookie being one. Without configured origins any origin is allowed but
// no credentials are.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AddAllowHeaders("Authorization")
	cfg.ExposeHeaders = []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"}
	cfg.MaxAge = 12 * time.Hour
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, opt Options) {
	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}

	r.Use(cors.New(corsConfig(opt.CORSOrigins)))

	r.GET("/healthz", handlers.Health)

	api := r.Group("/api")
	api.Use(middleware.AuthRequired(opt.JWTSecret, log), middleware.APIRateLimit(opt.Limits, log))

	// Catalog
	api.GET("/categories", h.ListCategories)
	api.GET("/products", middleware.SearchRateLimit(opt.Limits, log), h.ListProducts)
	api.GET("/products/:id", h.GetProduct)

	admin := api.Group("/admin", middleware.RequireAdmin)
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)

	// POS terminal
	terminal := api.Group("/pos")
	terminal.GET("/cart", h.GetCart)
	terminal.DELETE("/cart", h.ClearCart)
	terminal.POST("/cart/items", h.AddItem)
	terminal.PATCH("/cart/items", h.UpdateItem)
	terminal.DELETE("/cart/items", h.RemoveItem)
	terminal.PUT("/selections/:productId", h.SelectVariant)
	terminal.POST("/checkout", middleware.CheckoutRateLimit(opt.Limits, log), h.Checkout)

	// Orders
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.GET("/orders/:id/tracking-qr", h.TrackingQR)
	api.PATCH("/orders/:id/shipping", middleware.RequireAdmin, h.UpdateShipping)

	// WhatsApp leads
	api.GET("/leads", middleware.RequireAdmin, h.ListLeads)
	api.GET("/leads/:id", middleware.RequireAdmin, h.GetLead)
}
