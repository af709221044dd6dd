package router

import (
	"time"

	"github.com/Collegeyse/medicinai/internal/config"
	"github.com/Collegeyse/medicinai/internal/handler"
	"github.com/Collegeyse/medicinai/internal/middleware"
	"github.com/Collegeyse/medicinai/internal/repository"
	"github.com/Collegeyse/medicinai/internal/service"
	"github.com/Collegeyse/medicinai/internal/worker"

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
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	dispenseRepo := repository.NewDispenseRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	medicineSvc := service.NewMedicineService(medicineRepo, batchRepo, auditRepo)
	batchSvc := service.NewBatchService(batchRepo, medicineRepo, auditRepo)
	allocationSvc := service.NewAllocationService(batchRepo)
	saleSvc := service.NewSaleService(saleRepo, batchRepo, medicineRepo, dispenseRepo, auditRepo, userRepo, dispatcher)
	stockSvc := service.NewStockHealthService(batchRepo)
	registerSvc := service.NewRegisterService(dispenseRepo, dispatcher)
	auditSvc := service.NewAuditService(auditRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	medicinesH := handler.NewMedicinesHandler(medicineSvc)
	batchesH := handler.NewBatchesHandler(batchSvc)
	salesH := handler.NewSalesHandler(saleSvc, allocationSvc)
	stockH := handler.NewStockHandler(stockSvc, cfg.ExpiryWindow)
	registerH := handler.NewRegisterHandler(registerSvc)
	auditH := handler.NewAuditHandler(auditSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole("pharmacist", "admin")
	admin := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog — reads for all staff, writes for admin
		v1.GET("/medicines", staff, medicinesH.List)
		v1.GET("/medicines/:id", staff, medicinesH.Get)
		v1.POST("/medicines", admin, medicinesH.Create)
		v1.PUT("/medicines/:id", admin, medicinesH.Update)
		v1.DELETE("/medicines/:id", admin, medicinesH.Delete)

		// Batches — restock receipt creates a new row, never merges
		v1.POST("/medicines/:id/batches", staff, batchesH.Create)
		v1.GET("/medicines/:id/batches", staff, batchesH.ListByMedicine)

		// Cart + checkout
		v1.POST("/cart/allocate", staff, salesH.Allocate)
		v1.POST("/sales", staff, salesH.Checkout)
		v1.GET("/sales", staff, salesH.List)
		v1.GET("/sales/:id", staff, salesH.Get)

		// Stock health
		stock := v1.Group("/stock", staff)
		{
			stock.GET("/expiring", stockH.Expiring)
			stock.GET("/low", stockH.LowStock)
			stock.GET("/restock-suggestions", stockH.RestockSuggestions)
		}

		// Schedule H1 register
		register := v1.Group("/register", staff)
		{
			register.GET("/h1", registerH.ListMonth)
			register.POST("/h1/pdf", registerH.ExportPDF)
		}

		// Suppliers — admin only
		suppliers := v1.Group("/suppliers", admin)
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Deactivate)
		}

		// Users + audit — admin only
		users := v1.Group("/users", admin)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.DELETE("/:id", authH.DeactivateUser)
		}
		v1.GET("/audit", admin, auditH.List)
	}

	return r
}
