package handler

import (
	"time"

	"microsite-shop/internal/middleware"
	"microsite-shop/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Product   *ProductHandler
	Category  *CategoryHandler
	Order     *OrderHandler
	Auth      *AuthHandler
	Setting   *SettingHandler
	Post      *PostHandler
	Shipping  *ShippingHandler
	Dashboard *DashboardHandler
	Upload    *UploadHandler
}

type RouteConfig struct {
	// Login/register attempts per client within RateLimitWindow. Zero disables the limit.
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// RegisterRoutes mounts the /api tree and the /ws admin feed.
func RegisterRoutes(app *fiber.App, h Handlers, auth *middleware.Authenticator, hub *ws.Hub, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	requireAuth := auth.RequireAuth()
	requireAdmin := []fiber.Handler{requireAuth, middleware.RequireAdmin()}
	admin := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, requireAdmin...), handler)
	}

	// ============ AUTH ============
	var throttle []fiber.Handler
	if cfg.RateLimitMax > 0 {
		throttle = append(throttle, limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests, try again later"})
			},
		}))
	}
	withThrottle := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, throttle...), handler)
	}

	authGroup := api.Group("/auth")
	authGroup.Post("/register", withThrottle(h.Auth.Register)...)
	authGroup.Post("/login", withThrottle(h.Auth.Login)...)
	authGroup.Get("/me", requireAuth, h.Auth.Me)
	api.Post("/login", withThrottle(h.Auth.LegacyLogin)...)

	// ============ CATALOG ============
	api.Get("/products", h.Product.GetProducts)
	api.Get("/products/:id", h.Product.GetProduct)
	api.Post("/products", admin(h.Product.CreateProduct)...)
	api.Put("/products/:id", admin(h.Product.UpdateProduct)...)
	api.Delete("/products/:id", admin(h.Product.DeleteProduct)...)

	api.Get("/categories", h.Category.GetCategories)
	api.Get("/categories/:id", h.Category.GetCategory)
	api.Post("/categories", admin(h.Category.CreateCategory)...)
	api.Put("/categories/:id", admin(h.Category.UpdateCategory)...)
	api.Delete("/categories/:id", admin(h.Category.DeleteCategory)...)

	// ============ ORDERS ============
	api.Post("/orders", auth.OptionalAuth(), h.Order.CreateOrder)
	api.Get("/orders/my", requireAuth, h.Order.GetMyOrders)
	api.Get("/orders", admin(h.Order.GetOrders)...)
	api.Get("/orders/:id", admin(h.Order.GetOrder)...)
	api.Patch("/orders/:id/status", admin(h.Order.UpdateStatus)...)

	// ============ CONTENT ============
	api.Get("/posts", h.Post.GetPosts)
	api.Get("/posts/:idOrSlug", h.Post.GetPost)
	api.Post("/posts", admin(h.Post.CreatePost)...)
	api.Put("/posts/:id", admin(h.Post.UpdatePost)...)
	api.Delete("/posts/:id", admin(h.Post.DeletePost)...)

	api.Get("/settings", h.Setting.GetSettings)
	api.Put("/admin/settings", admin(h.Setting.UpdateSettings)...)
	api.Get("/admin/stats", admin(h.Dashboard.GetDashboardStats)...)
	api.Get("/admin/revenue", admin(h.Dashboard.GetRevenueChart)...)
	api.Post("/upload", admin(h.Upload.UploadImage)...)

	// ============ SHIPPING ============
	ship := api.Group("/rajaongkir")
	ship.Get("/provinces", h.Shipping.GetProvinces)
	ship.Get("/cities/:provinceId", h.Shipping.GetCities)
	ship.Get("/districts/:cityId", h.Shipping.GetDistricts)
	ship.Post("/cost", h.Shipping.CalculateCost)

	// ============ ADMIN FEED ============
	// Browsers cannot set headers on a WebSocket handshake, so the token rides in ?token=.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		cred, err := auth.Resolve("Bearer " + c.Query("token"))
		if err != nil || !cred.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
