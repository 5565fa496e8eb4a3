package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/openimagingdata/radelement-api/internal/config"
	"github.com/openimagingdata/radelement-api/internal/database"
	"github.com/openimagingdata/radelement-api/internal/handlers"
	"github.com/openimagingdata/radelement-api/internal/middleware"
	"github.com/openimagingdata/radelement-api/internal/services"
	"github.com/openimagingdata/radelement-api/internal/types"
	"github.com/openimagingdata/radelement-api/internal/utils"
	"go.uber.org/zap"

	_ "github.com/openimagingdata/radelement-api/docs/api" // Swagger docs
)

// @title RadElement API
// @version 1.0.0
// @description REST API for the radiology data element dictionary
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/openimagingdata/radelement-api

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	sugar := zapLogger.Sugar()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations and seed the index code systems
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("radelement")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Services
	elementService := services.NewElementService(db, sugar)
	setService := services.NewSetService(db, sugar)
	personService := services.NewPersonService(db, sugar)
	organizationService := services.NewOrganizationService(db, sugar)

	// Handlers
	elementHandler := &handlers.ElementHandler{Service: elementService}
	setHandler := &handlers.SetHandler{Service: setService}
	personHandler := &handlers.PersonHandler{Service: personService}
	organizationHandler := &handlers.OrganizationHandler{Service: organizationService}
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db}

	// API routes under /api, mutations behind bearer auth
	api := app.Group("/api")
	api.Use(middleware.Version())
	auth := middleware.Auth(cfg)

	api.Get("/", healthHandler.Index)
	api.Get("/health", healthHandler.Health)

	api.Get("/set", setHandler.GetSets)
	api.Get("/set/search", setHandler.SearchSets)
	api.Get("/set/:setId", setHandler.GetSet)
	api.Post("/set", auth, setHandler.CreateSet)
	api.Put("/set/:setId", auth, setHandler.UpdateSet)
	api.Delete("/set/:setId", auth, setHandler.DeleteSet)

	api.Get("/element", elementHandler.GetElements)
	api.Get("/element/search", elementHandler.SearchElements)
	api.Get("/element/:elementId", elementHandler.GetElement)
	api.Get("/set/:setId/element", elementHandler.GetElementsBySet)
	api.Post("/set/:setId/element", auth, elementHandler.CreateElement)
	api.Put("/set/:setId/element/:elementId", auth, elementHandler.UpdateElement)
	api.Delete("/set/:setId/element/:elementId", auth, elementHandler.DeleteElement)

	api.Get("/person", personHandler.GetPersons)
	api.Get("/person/search", personHandler.SearchPersons)
	api.Get("/person/:personId", personHandler.GetPerson)
	api.Post("/person", auth, personHandler.CreatePerson)
	api.Put("/person/:personId", auth, personHandler.UpdatePerson)
	api.Delete("/person/:personId", auth, personHandler.DeletePerson)

	api.Get("/organization", organizationHandler.GetOrganizations)
	api.Get("/organization/search", organizationHandler.SearchOrganizations)
	api.Get("/organization/:organizationId", organizationHandler.GetOrganization)
	api.Post("/organization", auth, organizationHandler.CreateOrganization)
	api.Put("/organization/:organizationId", auth, organizationHandler.UpdateOrganization)
	api.Delete("/organization/:organizationId", auth, organizationHandler.DeleteOrganization)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return utils.ErrorResponse(c, message, code, errorType)
}
