package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"KidGrow/Assignments"
	"KidGrow/CronJobs"
	"KidGrow/FiberConfig"
	"KidGrow/Models"
	"KidGrow/Notifications"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
	setupLogging()

	Models.Connect()

	if err := Notifications.InitFirebase(); err != nil {
		log.Println("Failed to initialize Firebase:", err)
	}

	assignmentService := Assignments.NewService(Models.DB, nil)
	scheduler := CronJobs.NewAssignmentScheduler(assignmentService, true)
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start assignment scheduler:", err)
	}
	defer scheduler.Stop()

	FiberConfig.FiberConfig(scheduler)
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
