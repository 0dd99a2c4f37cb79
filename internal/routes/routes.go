package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/plant-decor/internal/clock"
	"github.com/BruksfildServices01/plant-decor/internal/config"
	"github.com/BruksfildServices01/plant-decor/internal/handlers"
	"github.com/BruksfildServices01/plant-decor/internal/metrics"
	"github.com/BruksfildServices01/plant-decor/internal/middleware"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/payment"
	"github.com/BruksfildServices01/plant-decor/internal/storage"
	"github.com/BruksfildServices01/plant-decor/internal/store"
	ucCare "github.com/BruksfildServices01/plant-decor/internal/usecase/careservice"
	ucOrder "github.com/BruksfildServices01/plant-decor/internal/usecase/order"
)

// Deps are the long-lived singletons built by main.
type Deps struct {
	Config  *config.Config
	Log     *zap.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics

	Catalog *store.CatalogStore
	Carts   *store.CartStore
	Orders  *store.OrderStore
	Care    *store.CareServiceStore
	Chats   *store.ChatStore
	Photos  storage.PhotoStore

	// Payments defaults to offline settlement.
	Payments payment.Gateway

	// AuditLogs is nil when audit entries only go to the application log.
	AuditLogs handlers.AuditReader
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(d.Metrics.Middleware())

	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// 🧠 USE CASES — CARE SERVICE
	// ======================================================
	createRequestUC := ucCare.NewCreateRequest(
		d.Care,
		d.Catalog,
		d.Clock,
		d.Config.MinLeadTime,
	)

	assignCaretakerUC := ucCare.NewAssignCaretaker(d.Care)

	// ======================================================
	// 🧠 USE CASES — ORDERS
	// ======================================================
	checkoutUC := ucOrder.NewCheckout(
		d.Carts,
		d.Catalog,
		d.Orders,
		d.Payments,
		d.Log,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	catalogHandler := handlers.NewCatalogHandler(d.Catalog)
	cartHandler := handlers.NewCartHandler(d.Carts, d.Catalog)
	orderHandler := handlers.NewOrderHandler(d.Orders, checkoutUC)
	chatHandler := handlers.NewChatHandler(d.Chats)
	caretakerHandler := handlers.NewCaretakerHandler(d.Care)

	careHandler := handlers.NewCareServiceHandler(
		d.Care,
		d.Photos,
		createRequestUC,
		assignCaretakerUC,
	)

	chatLimiter := middleware.NewRateLimiter(d.Config.ChatRatePerMin, d.Log)

	if mem, ok := d.Photos.(*storage.MemoryPhotoStore); ok {
		r.GET("/photos/*key", handlers.NewPhotoHandler(mem).Get)
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC CATALOG
		// ------------------------------
		api.GET("/plants", catalogHandler.ListPlants)
		api.GET("/plants/:id", catalogHandler.GetPlant)
		api.GET("/categories", catalogHandler.ListCategories)
		api.GET("/care-packages", catalogHandler.ListCarePackages)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))

		// ------------------------------
		// 🛒 CUSTOMER
		// ------------------------------
		me := secured.Group("/me")
		me.Use(middleware.RequireRole(models.RoleCustomer))
		{
			me.GET("/cart", cartHandler.Get)
			me.POST("/cart/items", cartHandler.AddItem)
			me.PATCH("/cart/items/:plantId", cartHandler.UpdateQuantity)
			me.DELETE("/cart/items/:plantId", cartHandler.RemoveItem)
			me.DELETE("/cart", cartHandler.Clear)

			me.POST("/checkout", orderHandler.Checkout)
			me.GET("/orders", orderHandler.ListMine)
			me.GET("/orders/:id", orderHandler.GetMine)
			me.PATCH("/orders/:id/cancel", orderHandler.CancelMine)

			me.POST("/care-requests", careHandler.Create)
			me.GET("/care-requests", careHandler.ListMine)
			me.GET("/care-requests/:id", careHandler.GetMine)
			me.PATCH("/care-requests/:id/add-ons/:addOnId/approve", careHandler.ApproveAddOn)
			me.PATCH("/care-requests/:id/add-ons/:addOnId/reject", careHandler.RejectAddOn)

			me.GET("/chat", chatHandler.Current)
			me.POST("/chat", chatHandler.Start)
			me.POST("/chat/:id/messages", chatLimiter.Middleware(), chatHandler.CustomerMessage)
			me.PATCH("/chat/:id/request-human", chatHandler.RequestHuman)
		}

		// ------------------------------
		// 🎧 SUPPORT STAFF
		// ------------------------------
		support := secured.Group("/support")
		support.Use(middleware.RequireRole(models.RoleSupportStaff, models.RoleAdmin))
		{
			support.GET("/care-requests", careHandler.List)
			support.GET("/care-requests/pending", careHandler.ListPending)
			support.GET("/care-requests/active", careHandler.ListActive)
			support.GET("/care-requests/:id", careHandler.Get)
			support.PATCH("/care-requests/:id/confirm", careHandler.Confirm)
			support.PATCH("/care-requests/:id/assign", careHandler.Assign)
			support.PATCH("/care-requests/:id/cancel", careHandler.Cancel)

			support.GET("/orders", orderHandler.List)
			support.GET("/orders/:id", orderHandler.Get)
			support.PATCH("/orders/:id/confirm", orderHandler.Confirm)
			support.PATCH("/orders/:id/process", orderHandler.Process)
			support.PATCH("/orders/:id/cancel", orderHandler.Cancel)

			support.GET("/caretakers", caretakerHandler.List)
			support.GET("/caretakers/available", caretakerHandler.ListAvailable)
			support.PATCH("/caretakers/:id/release", caretakerHandler.Release)

			support.GET("/chats/waiting", chatHandler.Waiting)
			support.GET("/chats/active", chatHandler.Active)
			support.GET("/chats/closed", chatHandler.Closed)
			support.GET("/chats/:id", chatHandler.Get)
			support.PATCH("/chats/:id/join", chatHandler.Join)
			support.POST("/chats/:id/messages", chatLimiter.Middleware(), chatHandler.SupportMessage)
			support.PATCH("/chats/:id/close", chatHandler.Close)
		}

		// ------------------------------
		// 🚚 SHIPPER
		// ------------------------------
		shipper := secured.Group("/shipper")
		shipper.Use(middleware.RequireRole(models.RoleShipper))
		{
			shipper.GET("/orders/available", orderHandler.Available)
			shipper.GET("/orders", orderHandler.ListShipments)
			shipper.PATCH("/orders/:id/ship", orderHandler.Ship)
			shipper.PATCH("/orders/:id/deliver", orderHandler.Deliver)
		}

		// ------------------------------
		// 🌱 CARETAKER
		// ------------------------------
		caretaker := secured.Group("/caretaker")
		caretaker.Use(middleware.RequireRole(models.RoleCaretaker))
		{
			caretaker.GET("/me", caretakerHandler.GetMe)
			caretaker.PATCH("/me/status", caretakerHandler.UpdateMyStatus)

			caretaker.GET("/care-requests", careHandler.ListAssigned)
			caretaker.PATCH("/care-requests/:id/check-in", careHandler.CheckIn)
			caretaker.POST("/care-requests/:id/logs", careHandler.AddLog)
			caretaker.POST("/care-requests/:id/photos", careHandler.UploadPhoto)
			caretaker.POST("/care-requests/:id/add-ons", careHandler.SuggestAddOn)
			caretaker.PATCH("/care-requests/:id/estimated-completion", careHandler.UpdateEstimatedCompletion)
			caretaker.PATCH("/care-requests/:id/handover", careHandler.Handover)
			caretaker.PATCH("/care-requests/:id/reclaim", careHandler.Reclaim)
			caretaker.PATCH("/care-requests/:id/complete", careHandler.Complete)
		}

		// ------------------------------
		// 🔐 ADMIN
		// ------------------------------
		admin := secured.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/plants", catalogHandler.CreatePlant)
			admin.PUT("/plants/:id", catalogHandler.UpdatePlant)
			admin.DELETE("/plants/:id", catalogHandler.DeletePlant)
			admin.POST("/plants/:id/variants", catalogHandler.AddVariant)
			admin.DELETE("/plants/:id/variants/:variantId", catalogHandler.DeleteVariant)
			admin.PATCH("/plants/:id/variants/:variantId/sold", catalogHandler.MarkVariantSold)

			admin.PUT("/caretakers", caretakerHandler.Upsert)

			if d.AuditLogs != nil {
				admin.GET("/audit-logs", handlers.NewAuditLogsHandler(d.AuditLogs).List)
			}
		}
	}
}
