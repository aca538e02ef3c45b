package main

import (
	"log"
	"os"
	"time"

	"teamselect/database"
	"teamselect/handlers"
	"teamselect/middleware"
	"teamselect/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	database.InitDB()
	defer database.CloseDB()

	handlers.Init()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimitMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "time": time.Now().Unix()})
	})

	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Get("/me", middleware.AuthMiddleware, handlers.Me)

	// Track routes
	api.Get("/tracks", handlers.GetTracks)
	api.Get("/tracks/:id", handlers.GetTrack)
	api.Post("/tracks", middleware.AdminAuthMiddleware, handlers.CreateTrack)

	// Technology routes
	api.Get("/technologies", handlers.GetTechnologies)
	api.Post("/technologies", middleware.AdminAuthMiddleware, handlers.CreateTechnology)
	api.Delete("/technologies/:id", middleware.AdminAuthMiddleware, handlers.DeleteTechnology)

	// Student routes
	api.Post("/students", middleware.AuthMiddleware, handlers.CreateStudent)
	api.Get("/students/me", middleware.AuthMiddleware, handlers.GetMyStudent)
	api.Get("/students", middleware.AuthMiddleware, handlers.SearchStudents)
	api.Get("/students/:id", middleware.AuthMiddleware, handlers.GetStudent)
	api.Get("/students/:id/history", middleware.AuthMiddleware, handlers.GetStudentTeamHistory)
	api.Get("/students/:id/applications", middleware.AuthMiddleware, handlers.GetStudentApplications)
	api.Get("/students/:id/applied-teams", middleware.AuthMiddleware, handlers.GetStudentAppliedTeams)

	// Team routes
	api.Post("/teams", middleware.AuthMiddleware, handlers.CreateTeam)
	api.Get("/teams", middleware.AuthMiddleware, handlers.SearchTeams)
	api.Get("/teams/:id", middleware.AuthMiddleware, handlers.GetTeam)
	api.Delete("/teams/:id", middleware.AuthMiddleware, handlers.DeleteTeam)
	api.Get("/teams/:id/applications", middleware.AuthMiddleware, handlers.GetTeamApplicants)
	api.Post("/teams/:id/members", middleware.AuthMiddleware, handlers.AddTeamMember)
	api.Delete("/teams/:id/members/:studentId", middleware.AuthMiddleware, handlers.RemoveTeamMember)

	// Application routes
	api.Post("/applications", middleware.AuthMiddleware, handlers.CreateApplication)
	api.Get("/applications/my", middleware.AuthMiddleware, handlers.GetMyApplications)
	api.Get("/applications/:id", middleware.AuthMiddleware, handlers.GetApplication)
	api.Put("/applications/:id", middleware.AuthMiddleware, handlers.UpdateApplication)
	api.Delete("/applications/:id", middleware.AdminAuthMiddleware, handlers.DeleteApplication)

	port := utils.GetEnv("PORT", "8080")
	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
