package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"salarypay-service/internal/handler"
	"salarypay-service/internal/middleware"
	"salarypay-service/internal/model"
	"salarypay-service/internal/store"
	"salarypay-service/pkg/config"
	"salarypay-service/pkg/jwtutil"
	"salarypay-service/pkg/logger"
	"salarypay-service/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting SalaryPay service...", zap.String("environment", cfg.Server.Env))

	// Seed the in-memory dataset; all components share this single owner.
	st := store.New(cfg.Limit.EnforceOnChange)
	log.Info("Store seeded", zap.Bool("limit_enforcement", cfg.Limit.EnforceOnChange))

	// Initialize session token utility
	jwt := jwtutil.NewJWTUtil(&cfg.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	h := handler.New(st, jwt, cfg)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/", h.Hello)
	e.GET("/health", h.HealthCheck)
	e.GET("/metrics", prometheus.HandlerFunc())
	e.POST("/auth/login", h.Login)
	e.GET("/auth/demo", h.DemoCredentials)

	// Authenticated routes
	api := e.Group("/api", middleware.JWTAuth(jwt, st))
	api.GET("/me", h.Me)
	api.POST("/logout", h.Logout)

	// Consumer persona
	consumer := api.Group("/consumer", middleware.RequireRole(model.RoleConsumer))
	consumer.GET("/overview", h.ConsumerOverview)
	consumer.GET("/commitments", h.ConsumerCommitments)
	consumer.PUT("/commitments/:id/amount", h.AmendCommitment, middleware.RequireWritable)
	consumer.POST("/commitments/:id/cancel", h.CancelCommitment, middleware.RequireWritable)
	consumer.GET("/merchants", h.ConsumerMerchants)

	// Employer persona
	employer := api.Group("/employer", middleware.RequireRole(model.RoleEmployer))
	employer.GET("/overview", h.EmployerOverview)
	employer.GET("/employees", h.EmployerEmployees)
	employer.POST("/employees", h.AddEmployee, middleware.RequireWritable)
	employer.PUT("/employees/:id/status", h.SetEmployeeStatus, middleware.RequireWritable)
	employer.GET("/rule", h.EmployerRule)
	employer.PUT("/rule", h.SetEmployerRule, middleware.RequireWritable)

	// Business persona
	business := api.Group("/business", middleware.RequireRole(model.RoleBusiness))
	business.GET("/overview", h.BusinessOverview)
	business.GET("/customers", h.BusinessCustomers)
	business.GET("/settlements", h.BusinessSettlements)
	business.POST("/commitments", h.CreateCommitment, middleware.RequireWritable)

	// Admin persona
	admin := api.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/overview", h.AdminOverview)
	admin.GET("/employers", h.AdminEmployers)
	admin.GET("/businesses", h.AdminBusinesses)
	admin.POST("/businesses/:id/toggle", h.ToggleBusinessStatus, middleware.RequireWritable)
	admin.GET("/consumers", h.AdminConsumers)
	admin.GET("/commitments", h.AdminCommitments)
	admin.POST("/impersonate", h.StartImpersonation)

	// Stop must remain reachable while the overlay is active, when the
	// effective role is the target's; the handler checks the acting role.
	api.POST("/admin/impersonate/stop", h.StopImpersonation)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
