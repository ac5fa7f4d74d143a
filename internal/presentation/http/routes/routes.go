package routes

import (
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/config"
	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/handler"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/middleware"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Receipt     *handler.ReceiptHandler
	Room        *handler.RoomHandler
	Bill        *handler.BillHandler
	Menu        *handler.MenuHandler
	BankAccount *handler.BankAccountHandler
	Invoice     *handler.InvoiceHandler
	Sync        *handler.SyncHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
	// Online reports the connectivity state for the health check
	Online func() bool
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()
	// room numbers such as "11/13" travel URL-encoded inside one segment
	router.UseRawPath = true

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewUserRateLimiter(rateLimiterConfig(&deps.Cfg.RateLimit))

	router.GET("/health", func(c *gin.Context) {
		online := false
		if deps.Online != nil {
			online = deps.Online()
		}
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"online":       online,
			"rate_limiter": rateLimiter.Stats(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required), limited per client IP
		v1.POST("/auth/login", rateLimiter.Middleware(), h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Logger: deps.Logger}))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func rateLimiterConfig(cfg *config.RateLimitConfig) middleware.RateLimiterConfig {
	if cfg.Requests <= 0 || cfg.Duration <= 0 {
		return middleware.DefaultRateLimiterConfig()
	}
	return middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.Requests) / float64(cfg.Duration),
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	adminOnly := middleware.RequireRole(entity.RoleAdmin)

	// Auth
	auth := protected.Group("/auth")
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
		auth.GET("/users", adminOnly, h.Auth.ListUsers)
		auth.POST("/users", h.Auth.AddUser)
	}

	// Receipts
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.POST("", h.Receipt.Create)
		receipts.POST("/pull", h.Receipt.Pull)
		receipts.POST("/checkout", h.Receipt.Checkout)
		receipts.POST("/mark-checked-out", h.Receipt.MarkCheckedOut)
		receipts.GET("/:id", h.Receipt.Get)
	}

	// Rooms
	rooms := protected.Group("/rooms/:location")
	{
		rooms.POST("/init", h.Room.Initialize)
		rooms.GET("", h.Room.List)
		rooms.GET("/stats", h.Room.Stats)
		rooms.GET("/floors", h.Room.Floors)
		rooms.GET("/:number", h.Room.Get)
		rooms.POST("/:number/check-in", h.Room.CheckIn)
		rooms.POST("/:number/check-out", h.Room.CheckOut)
		rooms.POST("/:number/maintenance", h.Room.SetMaintenance)
		rooms.POST("/:number/available", h.Room.SetAvailable)
	}

	// Restaurant bills
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.POST("", h.Bill.Create)
		bills.GET("/room", h.Bill.ForRoom)
		bills.GET("/:id", h.Bill.Get)
	}

	// Menu
	menu := protected.Group("/menu")
	{
		menu.GET("", h.Menu.List)
		menu.GET("/categories", h.Menu.Categories)
		menu.POST("/refresh", h.Menu.Refresh)
		menu.POST("", adminOnly, h.Menu.Create)
		menu.PUT("/:id", adminOnly, h.Menu.Update)
		menu.PATCH("/:id/availability", adminOnly, h.Menu.SetAvailability)
		menu.DELETE("/:id", adminOnly, h.Menu.Delete)
	}

	// Bank accounts
	banks := protected.Group("/bank-accounts")
	{
		banks.GET("", h.BankAccount.Get)
		banks.POST("", adminOnly, h.BankAccount.Create)
		banks.PUT("/:id", adminOnly, h.BankAccount.Update)
	}

	// Invoices
	protected.POST("/invoices", h.Invoice.Generate)

	// Sync
	sync := protected.Group("/sync")
	{
		sync.GET("/status", h.Sync.Status)
		sync.POST("/drain", h.Sync.Drain)
	}
}
