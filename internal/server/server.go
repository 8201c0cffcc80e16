package server

import (
	"log"

	"workflow-hub-be/internal/bootstrap"
	"workflow-hub-be/internal/config"
	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, catalog imports
	})

	// Middleware
	app.Use(cors.New(corsConfig(cfg.App.CorsAllowedOrigins)))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

// corsConfig only allows credentials for an explicit origin list; fiber
// rejects credentials combined with a wildcard.
func corsConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Mcp-Session-Id",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Mcp-Session-Id",
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.HealthController.RegisterRoutes(api)
	c.WorkflowController.RegisterRoutes(api)
	c.ImportController.RegisterRoutes(api)

	websocket.RegisterChatRoutes(api, c.ChatService)
	c.ChatController.RegisterRoutes(api)
	c.WaitlistController.RegisterRoutes(api)

	c.MCPServer.RegisterRoutes(app)
}
