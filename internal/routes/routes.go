package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/audit"
	"github.com/glowbook/salon-platform/internal/cache"
	"github.com/glowbook/salon-platform/internal/config"
	pay "github.com/glowbook/salon-platform/internal/domain/payment"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/handlers"
	"github.com/glowbook/salon-platform/internal/infra/mercadopago"
	infraRepo "github.com/glowbook/salon-platform/internal/infra/repository"
	"github.com/glowbook/salon-platform/internal/infra/storage"
	"github.com/glowbook/salon-platform/internal/middleware"
	ucBooking "github.com/glowbook/salon-platform/internal/usecase/booking"
	ucCart "github.com/glowbook/salon-platform/internal/usecase/cart"
	"github.com/glowbook/salon-platform/internal/usecase/payments"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	redisClient := cache.NewClient(cfg)
	catalog := cache.NewCatalog(redisClient, 5*time.Minute)
	blacklist := cache.NewTokenBlacklist(redisClient)

	bus := events.NewBus(log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)
	audit.NewSubscriber(auditDispatcher).Register(bus)

	logos := storage.NewLogoStorage(cfg)

	var (
		provider pay.Provider
		verifier pay.Verifier
	)
	if cfg.MercadoPagoAccessToken != "" {
		p, err := mercadopago.NewProvider(cfg)
		if err != nil {
			log.Warn("payment provider disabled", zap.Error(err))
		} else {
			provider = p
			verifier = p
		}
	}

	var deposits *payments.DepositService
	if provider != nil {
		deposits = payments.NewDepositService(db, provider)
	}

	bookingRepo := infraRepo.NewBookingGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, bus, deposits)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, bus)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, bus)
	noShowBookingUC := ucBooking.NewMarkNoShow(bookingRepo, bus)
	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	checkoutUC := ucCart.NewCheckout(db, bus, provider, log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, blacklist, bus)
	meHandler := handlers.NewMeHandler(db)
	tenantHandler := handlers.NewTenantHandler(db, bus)
	salonHandler := handlers.NewSalonHandler(db, logos, bus)
	branchHandler := handlers.NewBranchHandler(db, bus)
	staffHandler := handlers.NewStaffHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, bus, catalog)
	customerHandler := handlers.NewCustomerHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, bus)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		completeBookingUC,
		cancelBookingUC,
		noShowBookingUC,
		listByDateUC,
		listByMonthUC,
	)

	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(db, checkoutUC)
	orderHandler := handlers.NewOrderHandler(db, bus)

	auditHandler := handlers.NewAuditHandler(db)
	analyticsHandler := handlers.NewAnalyticsHandler(db)
	webVitalsHandler := handlers.NewWebVitalsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, catalog, availabilityUC, createBookingUC)
	webhookHandler := handlers.NewWebhookHandler(db, bus, verifier)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC STOREFRONT
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetSalon)
			publicAPI.GET("/:slug/staff", publicHandler.ListStaff)
			publicAPI.GET("/:slug/availability", publicHandler.GetAvailability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
			publicAPI.POST("/:slug/vitals", webVitalsHandler.Ingest)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/payments", webhookHandler.PaymentNotification)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, blacklist))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// TENANT (owner only)
			// ------------------------------
			secured.GET("/me/tenant", tenantHandler.GetMeTenant)
			secured.PATCH("/me/tenant",
				middleware.RequireRole(middleware.RoleOwner), tenantHandler.UpdateMeTenant)
			secured.PATCH("/me/tenant/plan",
				middleware.RequireRole(middleware.RoleOwner), tenantHandler.ChangePlan)

			// ------------------------------
			// SALON
			// ------------------------------
			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon",
				middleware.RequireRole(middleware.RoleManager), salonHandler.UpdateMeSalon)
			secured.POST("/me/salon/logo",
				middleware.RequireRole(middleware.RoleManager), salonHandler.UploadLogo)

			// ------------------------------
			// BRANCHES (managers)
			// ------------------------------
			branches := secured.Group("/me/branches",
				middleware.RequireRole(middleware.RoleManager))
			{
				branches.GET("", branchHandler.List)
				branches.POST("", branchHandler.Create)
				branches.PATCH("/:id", branchHandler.Update)
				branches.DELETE("/:id", branchHandler.Delete)
			}

			// ------------------------------
			// STAFF (managers)
			// ------------------------------
			staff := secured.Group("/me/staff",
				middleware.RequireRole(middleware.RoleManager))
			{
				staff.GET("", staffHandler.List)
				staff.POST("", staffHandler.Create)
				staff.PATCH("/:id", staffHandler.Update)
			}

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services",
				middleware.RequireRole(middleware.RoleManager), serviceHandler.Create)
			secured.PATCH("/me/services/:id",
				middleware.RequireRole(middleware.RoleManager), serviceHandler.Update)
			secured.DELETE("/me/services/:id",
				middleware.RequireRole(middleware.RoleManager), serviceHandler.Delete)

			// ------------------------------
			// CUSTOMERS & SCHEDULE
			// ------------------------------
			secured.GET("/me/customers", customerHandler.List)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/me/bookings/:id/no-show", bookingHandler.NoShow)

			// ------------------------------
			// COMMERCE
			// ------------------------------
			secured.GET("/me/products", productHandler.List)
			secured.POST("/me/products",
				middleware.RequireRole(middleware.RoleManager), productHandler.Create)
			secured.PATCH("/me/products/:id",
				middleware.RequireRole(middleware.RoleManager), productHandler.Update)
			secured.PATCH("/me/products/variants/:variant_id",
				middleware.RequireRole(middleware.RoleManager), productHandler.UpdateVariant)

			secured.GET("/me/cart", cartHandler.Get)
			secured.POST("/me/cart/items", cartHandler.AddItem)
			secured.PATCH("/me/cart/items/:item_id", cartHandler.UpdateItem)
			secured.DELETE("/me/cart/items/:item_id", cartHandler.RemoveItem)
			secured.POST("/me/cart/checkout", cartHandler.Checkout)

			secured.GET("/me/orders", orderHandler.List)
			secured.GET("/me/orders/:id", orderHandler.Get)
			secured.PATCH("/me/orders/:id/fulfill", orderHandler.Fulfill)
			secured.PATCH("/me/orders/:id/cancel", orderHandler.Cancel)

			// ------------------------------
			// REPORTING
			// ------------------------------
			secured.GET("/me/analytics/summary", analyticsHandler.Summary)

			secured.GET("/me/audit-logs",
				middleware.RequireRole(middleware.RoleManager), auditHandler.List)
			secured.GET("/me/audit-logs/export",
				middleware.RequireRole(middleware.RoleManager), auditHandler.Export)
		}
	}
}
