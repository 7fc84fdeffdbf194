package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yamaneko/cat-care-api/internal/config"
	"github.com/yamaneko/cat-care-api/internal/constants"
	"github.com/yamaneko/cat-care-api/internal/database"
	"github.com/yamaneko/cat-care-api/internal/handlers"
	"github.com/yamaneko/cat-care-api/internal/middleware"
	"github.com/yamaneko/cat-care-api/internal/repository"
	"github.com/yamaneko/cat-care-api/internal/scheduler"
	"github.com/yamaneko/cat-care-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := setupLogger(cfg.GinMode)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database and run migrations
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Repositories
	taskRepo := repository.NewTaskRepository(db)
	templateRepo := repository.NewPredefinedTaskRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	catRepo := repository.NewCatRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	materializer := services.NewMaterializer(taskRepo, templateRepo, log)
	taskService := services.NewTaskService(taskRepo, templateRepo, userRepo)
	templateService := services.NewPredefinedTaskService(templateRepo)
	customerService := services.NewCustomerService(customerRepo)
	catService := services.NewCatService(catRepo)
	authService := services.NewAuthService(userRepo)

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskService, materializer, log)
	templateHandler := handlers.NewPredefinedTaskHandler(templateService, log)
	customerHandler := handlers.NewCustomerHandler(customerService, log)
	catHandler := handlers.NewCatHandler(catService, log)
	dashboardHandler := handlers.NewDashboardHandler(customerService, log)
	authHandler := handlers.NewAuthHandler(authService, log)

	// Initialize Gin router
	r := gin.Default()

	// CORS
	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.CORSOrigins}
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Redis store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))
	r.Use(middleware.ResolveSession())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Cat Care API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		api.GET("/users", authHandler.ListUsers)

		tasks := api.Group("/tasks")
		{
			tasks.GET("/date/:date", taskHandler.ListTasksForDate)
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		templates := api.Group("/predefined-tasks")
		{
			templates.GET("", templateHandler.ListPredefinedTasks)
			templates.POST("", templateHandler.CreatePredefinedTask)
			templates.GET("/:id", templateHandler.GetPredefinedTask)
			templates.PUT("/:id", templateHandler.UpdatePredefinedTask)
			templates.DELETE("/:id", templateHandler.DeletePredefinedTask)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", customerHandler.ListCustomers)
			customers.POST("", customerHandler.CreateCustomer)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PUT("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", customerHandler.DeleteCustomer)
		}

		cats := api.Group("/cats")
		{
			cats.GET("", catHandler.ListCats)
			cats.POST("", catHandler.CreateCat)
			cats.GET("/:id", catHandler.GetCat)
			cats.PUT("/:id", catHandler.UpdateCat)
			cats.DELETE("/:id", catHandler.DeleteCat)
		}

		api.GET("/dashboard/customer/summary", dashboardHandler.CustomerSummary)
	}

	// Daily materialization run, so the day's tasks exist even before the
	// first request asks for them.
	sched := scheduler.New(time.UTC)
	if _, err := sched.ScheduleDaily(cfg.MaterializeAt, func() {
		if _, err := materializer.MaterializeDay(time.Now().UTC()); err != nil {
			log.WithError(err).Error("Scheduled materialization failed")
		}
	}); err != nil {
		log.WithError(err).Fatal("Failed to schedule daily materialization")
	}
	sched.Start()
	defer sched.Stop()

	// Start server
	log.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

func setupLogger(ginMode string) *logrus.Logger {
	log := logrus.New()

	if ginMode == "release" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}
