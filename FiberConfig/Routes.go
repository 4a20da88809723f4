package FiberConfig

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"

	"KidGrow/Assignments"
	"KidGrow/Controllers"
	"KidGrow/CronJobs"
	"KidGrow/Models"
	"KidGrow/Progress"
	"KidGrow/TipsFeed"
	"KidGrow/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, scheduler *CronJobs.AssignmentScheduler) {
	// Initialize handlers
	assignmentService := Assignments.NewService(db, nil)
	progressService := Progress.NewService(db, assignmentService.Location)
	childController := Controllers.NewChildController(db)
	taskController := Controllers.NewTaskController(db)
	assignmentController := Controllers.NewAssignmentController(assignmentService)
	progressController := Controllers.NewProgressController(progressService)

	// Auth routes
	app.Post("/api/Register", Controllers.Register)
	app.Post("/api/Login", Controllers.Login)
	app.Get("/api/validate-token", Controllers.ValidateToken)
	app.Use("/api/User", Controllers.User)
	app.Use("/api/Logout", Controllers.Logout)
	app.Post("/api/UpdateToken", middleware.Verify(), Models.UpdateToken)

	api := app.Group("/api", middleware.Verify())

	// Task catalog (also serves the tips screens)
	api.Get("/tasks", taskController.GetTasks)
	api.Post("/tips/import", TipsFeed.ImportTips)

	// Children routes
	children := api.Group("/children")
	children.Get("/", childController.GetChildren)
	children.Post("/", childController.CreateChild)
	children.Get("/:id", childController.GetChild)
	children.Patch("/:id", childController.UpdateChild)
	children.Delete("/:id", childController.DeleteChild)
	children.Get("/:id/measurements", childController.GetMeasurements)
	children.Post("/:id/measurements", childController.AddMeasurement)
	children.Post("/:id/photo", childController.UploadChildPhoto)

	// Assignment routes
	children.Get("/:childId/assignments", assignmentController.GetChildAssignments)
	api.Patch("/assignments/:id/complete", assignmentController.CompleteAssignment)
	api.Patch("/assignments/:id/uncomplete", assignmentController.UncompleteAssignment)

	// Progress routes
	progress := api.Group("/progress")
	progress.Get("/", progressController.GetAllProgress)
	progress.Get("/children/:childId", progressController.GetChildProgress)
	progress.Get("/children/:childId/export", progressController.ExportChildProgress)

	// Request log viewer
	api.Get("/logs", Controllers.GetLogs)

	// Manual sweep trigger, same entry point the cron uses
	api.Post("/sweep", func(c *fiber.Ctx) error {
		scheduler.RunManualSweep()
		return c.JSON(fiber.Map{"message": "Sweep completed"})
	})
}

func FiberConfig(scheduler *CronJobs.AssignmentScheduler) {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		var childCount, taskCount int64
		Models.DB.Model(&Models.Child{}).Count(&childCount)
		Models.DB.Model(&Models.Task{}).Count(&taskCount)
		return c.Render("index", fiber.Map{
			"Children": childCount,
			"Tasks":    taskCount,
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, Models.DB, scheduler)

	// Serve child avatar photos
	app.Static("/ChildPhotos", "./ChildPhotos", fiber.Static{Compress: true, CacheDuration: time.Second * 10})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
