package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imperia-dev/imperia-data-insight-sub000/config"
	"github.com/imperia-dev/imperia-data-insight-sub000/docs"
	clientHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/client"
	dashboardHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/dashboard"
	exportHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/export"
	integrationClientHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/integration_client"
	orderHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/order"
	pendencyHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/pendency"
	productivityHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/productivity"
	reportHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/report"
	userHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/user"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/metrics"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/repository"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/client"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/dashboard"
	integrationClientService "github.com/imperia-dev/imperia-data-insight-sub000/internal/service/integration_client"
	orderService "github.com/imperia-dev/imperia-data-insight-sub000/internal/service/order"
	pendencyService "github.com/imperia-dev/imperia-data-insight-sub000/internal/service/pendency"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/productivity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/quality_feed"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/redis"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/refresher"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/report"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/user"
	"github.com/imperia-dev/imperia-data-insight-sub000/middleware"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterHandler struct {
	userHandler              *userHandler.UserHandler
	orderHandler             *orderHandler.OrderHandler
	pendencyHandler          *pendencyHandler.PendencyHandler
	dashboardHandler         *dashboardHandler.DashboardHandler
	productivityHandler      *productivityHandler.ProductivityHandler
	reportHandler            *reportHandler.ReportHandler
	exportHandler            *exportHandler.ExportHandler
	clientHandler            *clientHandler.ClientHandler
	integrationClientHandler *integrationClientHandler.IntegrationClientHandler
	integrationClientService integrationClientService.IntegrationClientService
	redisService             redis.ServiceInterface
	rateLimitPerMinute       int
}

func RunServer(config *config.Config) {
	env := config.Env
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}

	fmt.Println("ENVs: ", config.DB.Host, config.DB.DBName, config.DB.User, config.Env)

	db, err := repository.NewRepository(config.DB)
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}
	defer db.Close()

	// redisSrv stays a nil interface when Redis is unreachable, so the
	// cache guards downstream actually see nil instead of a typed nil.
	var redisSrv redis.ServiceInterface
	if rs, err := redis.NewRedisService(redis.RedisConfig{
		Host:     config.Redis.Host,
		Port:     config.Redis.Port,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}); err != nil {
		log.Printf("⚠️ Redis unavailable, caching and rate limiting disabled: %v", err)
	} else {
		redisSrv = rs
		defer rs.Close()
	}

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	pendencyRepo := repository.NewPendencyRepository(db)
	clientRepo := repository.NewClientRepository(db)
	integrationClientRepo := repository.NewIntegrationClientRepository(db)

	policy := metrics.RatePolicy{
		DailyDocumentGoal:   config.Analytics.DailyDocumentGoal,
		MaxConcurrentOrders: config.Analytics.MaxConcurrentOrders,
	}

	userSrv := user.NewUserService(userRepo)
	orderSrv := orderService.NewOrderService(orderRepo)
	pendencySrv := pendencyService.NewPendencyService(pendencyRepo, orderRepo)
	clientSrv := client.NewClientService(clientRepo, userRepo)
	integrationClientSrv := integrationClientService.NewIntegrationClientService(integrationClientRepo)
	dashboardSrv := dashboard.NewDashboardService(orderRepo, pendencyRepo, redisSrv, policy)
	productivitySrv := productivity.NewProductivityService(orderRepo)

	var qualitySrv *quality_feed.QualityFeedService
	if config.QualityFeed.BaseURL != "" {
		qualitySrv = quality_feed.NewQualityFeedService(config.QualityFeed.BaseURL, config.QualityFeed.APIKey, redisSrv)
	} else {
		log.Println("Quality feed disabled: QUALITY_FEED_URL not set")
	}

	reportSrv := report.NewReportService(dashboardSrv, qualitySrv)

	routerHandler := &RouterHandler{
		userHandler:              userHandler.NewUserHandler(userSrv, clientSrv),
		orderHandler:             orderHandler.NewOrderHandler(orderSrv),
		pendencyHandler:          pendencyHandler.NewPendencyHandler(pendencySrv),
		dashboardHandler:         dashboardHandler.NewDashboardHandler(dashboardSrv),
		productivityHandler:      productivityHandler.NewProductivityHandler(productivitySrv),
		reportHandler:            reportHandler.NewReportHandler(reportSrv),
		exportHandler:            exportHandler.NewExportHandler(dashboardSrv, userRepo),
		clientHandler:            clientHandler.NewClientHandler(clientSrv),
		integrationClientHandler: integrationClientHandler.NewIntegrationClientHandler(integrationClientSrv),
		integrationClientService: integrationClientSrv,
		redisService:             redisSrv,
		rateLimitPerMinute:       config.Analytics.RateLimitPerMinute,
	}

	r := setupRouter(routerHandler)

	refreshCtx, cancelRefresh := context.WithCancel(context.Background())
	snapshotRefresher := refresher.NewRefresher(
		dashboardSrv,
		qualitySrv,
		config.Analytics.SnapshotRefreshInterval,
		config.Analytics.QualityRefreshInterval,
	)
	go snapshotRefresher.Run(refreshCtx)

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	gracefulShutdown(srv, cancelRefresh)
}

func gracefulShutdown(srv *http.Server, cancelRefresh context.CancelFunc) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	cancelRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	select {
	case <-ctx.Done():
		log.Println("⚠️ Server shutdown timeout exceeded")
	default:
		log.Println("✅ Server gracefully stopped")
	}
}

func setupRouter(routerHandler *RouterHandler) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else if origin == "https://imperia-insight.app" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-API-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "imperia-data-insight",
		})
	})

	docs.SwaggerInfo.Host = "127.0.0.1:8080"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	docs.SwaggerInfo.Title = "Imperia Data Insight API"
	docs.SwaggerInfo.Description = "Translation ops metrics and productivity analytics API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/api/auth/verify-admin", routerHandler.exportHandler.VerifyAdmin)

	// API-key surface for integration bots (WhatsApp report dispatch)
	botRoutes := r.Group("/api/v1/bot")
	botRoutes.Use(middleware.APIKeyMiddleware(routerHandler.integrationClientService))
	botRoutes.Use(middleware.RateLimitMiddleware(routerHandler.redisService, routerHandler.rateLimitPerMinute))
	{
		botRoutes.POST("/auth", routerHandler.integrationClientHandler.ValidateAPIKey)
		botRoutes.GET("/reports", routerHandler.reportHandler.GetReport)
		botRoutes.GET("/dashboard", routerHandler.dashboardHandler.GetSnapshot)
	}

	publicAdminRoutes := r.Group("/api/v1/admin")
	{
		publicAdminRoutes.POST("/users/auth", routerHandler.userHandler.CreateOrAuthUserWithPassword)
	}

	privateRoutes := r.Group("/api/v1/admin")
	privateRoutes.Use(middleware.AuthenticationMiddleware())
	{
		privateRoutes.GET("/users/profile", routerHandler.userHandler.GetUserById)
		privateRoutes.GET("/users/profile/clients", routerHandler.userHandler.GetUserWithClients)
		privateRoutes.POST("/users/logout", routerHandler.userHandler.Logout)

		orderRoutes := privateRoutes.Group("/orders")
		{
			orderRoutes.POST("", routerHandler.orderHandler.CreateOrder)
			orderRoutes.POST("/batch", routerHandler.orderHandler.BatchCreateOrders)
			orderRoutes.GET("", routerHandler.orderHandler.GetOrders)
			orderRoutes.GET("/stats", routerHandler.orderHandler.GetStats)
			orderRoutes.GET("/:id", routerHandler.orderHandler.GetOrderByID)
			orderRoutes.DELETE("/:id", routerHandler.orderHandler.DeleteOrder)
		}

		pendencyRoutes := privateRoutes.Group("/pendencies")
		{
			pendencyRoutes.POST("", routerHandler.pendencyHandler.CreatePendency)
			pendencyRoutes.GET("", routerHandler.pendencyHandler.GetPendencies)
			pendencyRoutes.GET("/:id", routerHandler.pendencyHandler.GetPendencyByID)
			pendencyRoutes.PATCH("/:id/resolve", routerHandler.pendencyHandler.ResolvePendency)
			pendencyRoutes.DELETE("/:id", routerHandler.pendencyHandler.DeletePendency)
		}

		privateRoutes.GET("/dashboard", routerHandler.dashboardHandler.GetSnapshot)
		privateRoutes.GET("/productivity", routerHandler.productivityHandler.GetAllWorkersProductivity)
		privateRoutes.GET("/productivity/:workerId", routerHandler.productivityHandler.GetWorkerProductivity)
		privateRoutes.GET("/reports", routerHandler.reportHandler.GetReport)
		privateRoutes.GET("/exports/snapshot.csv", routerHandler.exportHandler.ExportSnapshotCSV)

		clientRoutes := privateRoutes.Group("/clients")
		{
			clientRoutes.POST("", routerHandler.clientHandler.CreateClient)
			clientRoutes.GET("", routerHandler.clientHandler.GetAllClients)
			clientRoutes.GET("/my", routerHandler.clientHandler.GetUserClients)
			clientRoutes.GET("/:id", routerHandler.clientHandler.GetClient)
			clientRoutes.GET("/:id/managers", routerHandler.clientHandler.GetClientWithManagers)
			clientRoutes.PUT("/:id", routerHandler.clientHandler.UpdateClient)
			clientRoutes.DELETE("/:id", routerHandler.clientHandler.DeleteClient)
			clientRoutes.POST("/:id/users", routerHandler.clientHandler.AddManagerToClient)
			clientRoutes.DELETE("/:id/users/:user_id", routerHandler.clientHandler.RemoveManagerFromClient)
			clientRoutes.PUT("/:id/users/:user_id/role", routerHandler.clientHandler.UpdateManagerRole)
		}

		integrationRoutes := privateRoutes.Group("/integrations")
		{
			integrationRoutes.POST("/clients/generate", routerHandler.integrationClientHandler.CreateIntegrationClient)
			integrationRoutes.GET("/clients", routerHandler.integrationClientHandler.GetAllIntegrationClients)
			integrationRoutes.GET("/clients/stats", routerHandler.integrationClientHandler.GetIntegrationClientStats)
			integrationRoutes.GET("/clients/:id", routerHandler.integrationClientHandler.GetIntegrationClientByID)
			integrationRoutes.PUT("/clients/:id", routerHandler.integrationClientHandler.UpdateIntegrationClient)
			integrationRoutes.DELETE("/clients/:id", routerHandler.integrationClientHandler.DeleteIntegrationClient)
			integrationRoutes.POST("/clients/:id/regenerate-key", routerHandler.integrationClientHandler.RegenerateAPIKey)
			integrationRoutes.GET("/name/:name", routerHandler.integrationClientHandler.GetIntegrationClientByName)
		}
	}

	return r
}
