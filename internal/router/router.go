package router

import (
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/config"
	"github.com/fdestra28/kasirtta-sub000/internal/handler"
	"github.com/fdestra28/kasirtta-sub000/internal/middleware"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"
	"github.com/fdestra28/kasirtta-sub000/internal/service"
	"github.com/fdestra28/kasirtta-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	debtRepo := repository.NewDebtRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	closingRepo := repository.NewClosingRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo)
	productSvc := service.NewProductService(productRepo, movementRepo, rdb, time.Duration(cfg.ProductCacheTTLSec)*time.Second)
	catalogSvc := service.NewCatalogService(productRepo)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, expenseRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	saleSvc := service.NewSaleService(saleRepo, productRepo, movementRepo, debtRepo, customerRepo, catalogSvc, dispatcher)
	debtSvc := service.NewDebtService(debtRepo)
	customerSvc := service.NewCustomerService(customerRepo, debtRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	reportSvc := service.NewReportService(reportRepo, expenseRepo)
	closingSvc := service.NewClosingService(closingRepo, reportRepo, expenseRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	debtsH := handler.NewDebtsHandler(debtSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	closingH := handler.NewClosingHandler(closingSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.RateLimiter(cfg.LoginRateLimitPerMin, time.Minute), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleOwner)
	ownerOnly := middleware.RequireRole(model.RoleOwner)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", anyRole, authH.Me)
		v1.POST("/auth/change-password", anyRole, authH.ChangePassword)

		v1.POST("/sales", anyRole, salesH.Create)
		v1.GET("/sales", anyRole, salesH.List)
		v1.GET("/sales/:id", anyRole, salesH.Get)

		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.Get)
		prods := v1.Group("/products", anyRole)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Deactivate)
			prods.PATCH("/:id/reactivate", productsH.Reactivate)
			prods.POST("/:id/variants", productsH.AddVariant)
		}

		inv := v1.Group("/inventory", anyRole)
		{
			inv.POST("/adjust", inventoryH.Adjust)
			inv.GET("/movements", inventoryH.ListMovements)
		}

		debts := v1.Group("/debts", anyRole)
		{
			debts.GET("", debtsH.List)
			debts.GET("/:id", debtsH.Get)
			debts.POST("/:id/payments", debtsH.Pay)
		}

		customers := v1.Group("/customers", anyRole)
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Deactivate)
		}

		expenses := v1.Group("/expenses", anyRole)
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
			expenses.PUT("/:id", expensesH.Update)
			expenses.DELETE("/:id", expensesH.Delete)
		}

		// Reports and account management are owner territory
		reports := v1.Group("/reports", ownerOnly)
		{
			reports.GET("/summary", reportsH.SalesSummary)
			reports.GET("/daily", reportsH.DailySales)
			reports.GET("/best-sellers", reportsH.BestSellers)
		}

		closings := v1.Group("/closings", ownerOnly)
		{
			closings.POST("", closingH.Close)
			closings.GET("", closingH.List)
		}

		users := v1.Group("/users", ownerOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
			users.PATCH("/:id/deactivate", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	return r
}
