package main

import (
	"log"
	"time"

	"go-pos-client/internal/config"
	"go-pos-client/internal/gateway"
	"go-pos-client/internal/handlers"
	"go-pos-client/internal/middleware"
	"go-pos-client/internal/models"
	"go-pos-client/internal/session"
	"go-pos-client/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	store, err := storage.Open(cfg.StoragePath)
	if err != nil {
		log.Fatal("Failed to open local storage:", err)
	}
	sessions := session.NewManager(session.NewRepository(store))
	drafts := session.NewDrafts(store)
	gw := gateway.New(cfg.APIBaseURL, sessions.UserID)
	carts := handlers.NewCartStore()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.GET("/api/system/status", handlers.SystemStatus(&cfg))

	r.POST("/login", handlers.Login(gw, sessions, cfg.BackendURL))
	r.POST("/logout", handlers.Logout(sessions))

	api := r.Group("/api")
	api.Use(middleware.Authenticate(sessions))
	{
		api.GET("/me", handlers.Me())

		allRoles := []string{models.RoleAdmin, models.RoleCashier, models.RoleStorekeeper}

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/dashboard", handlers.Dashboard(gw))

			admin.GET("/reports/today", handlers.TodayReport(gw))
			admin.GET("/reports/range", handlers.RangeReport(gw))

			admin.PUT("/settings/profile", handlers.UpdateProfile(gw, sessions))
			admin.POST("/settings/avatar", handlers.UploadAvatar(gw, sessions, cfg.BackendURL))
		}

		// ADMIN + STOREKEEPER
		grn := api.Group("/grn")
		grn.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleStorekeeper))
		{
			grn.GET("", handlers.GRNWorkspace(gw, drafts))
			grn.POST("", handlers.CompleteGRN(drafts))
			grn.POST("/draft", handlers.SaveGRNDraft(drafts))
		}

		// ALL STAFF
		staff := api.Group("/")
		staff.Use(middleware.RequireRoles(allRoles...))
		{
			pos := staff.Group("/pos")
			{
				pos.GET("/products", handlers.POSSearchProducts(gw))
				pos.GET("/latest-price", handlers.POSLatestPrice(gw))
				pos.GET("/customers", handlers.POSSearchCustomers(gw))
				pos.POST("/customers", handlers.POSAddCustomer(gw))
				pos.GET("/cart", handlers.POSCart(carts))
				pos.POST("/cart/items", handlers.POSAddItem(carts))
				pos.PUT("/cart/items/:grnItemsId/quantity", handlers.POSSetQuantity(carts))
				pos.PUT("/cart/items/:grnItemsId/discount", handlers.POSSetDiscount(carts))
				pos.DELETE("/cart/items/:grnItemsId", handlers.POSRemoveItem(carts))
				pos.PUT("/cart/invoice", handlers.POSAdjustInvoice(carts))
				pos.POST("/cart/checkout", handlers.POSCheckout(gw, carts))
				pos.DELETE("/cart", handlers.POSClearCart(carts))
			}

			handlers.NewCustomersCollection(gw).Register(staff.Group("/customers"))
			handlers.NewProductsCollection(gw).Register(staff.Group("/products"))
			handlers.NewBrandsCollection(gw).Register(staff.Group("/brands"))
			handlers.NewCategoriesCollection(gw).Register(staff.Group("/categories"))

			suppliers := staff.Group("/suppliers")
			{
				suppliers.GET("", handlers.ListSuppliers(gw))
				suppliers.POST("", handlers.CreateSupplier(gw))
				suppliers.PUT("/:id", handlers.UpdateSupplier(gw))
				suppliers.GET("/export", handlers.ExportSuppliers(gw))
			}

			invoices := staff.Group("/invoices")
			{
				invoices.GET("", handlers.ListInvoices(gw))
				invoices.GET("/:id", handlers.InvoiceDetails(gw))
				invoices.DELETE("/:id", handlers.DeleteInvoice(gw))
				invoices.PUT("/:id/items", handlers.UpdateInvoiceItem(gw))
				invoices.DELETE("/:id/items", handlers.RemoveInvoiceItem(gw))
			}

			staff.POST("/drafts/:key", handlers.SaveDraft(drafts))
			staff.GET("/drafts/:key", handlers.LoadDraft(drafts))
			staff.DELETE("/drafts/:key", handlers.ClearDraft(drafts))
		}
	}

	if cfg.DebugMode() {
		log.Println("⚠️ WARNING: No API_BASE_URL configured, backend calls will fail")
	} else {
		log.Println("🔗 Gateway target: " + cfg.APIBaseURL)
	}
	log.Println("🚀 POS client starting on " + cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Client failed to start:", err)
	}
}
