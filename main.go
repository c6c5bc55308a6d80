package main

import (
	"fmt"
	"log"
	"os"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/routes"
	"salonbook-backend/scheduling"
	"salonbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Salon{},
		&models.Branch{},
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Stylist{},
		&models.WorkingHoursRule{},
		&models.Appointment{},
		&models.Invoice{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
	)
}

func main() {
	tz := scheduling.NewNormalizer(config.Timezone())
	store := scheduling.NewGormStore(config.DB)
	sched := scheduling.NewScheduler(store, store, tz, scheduling.SystemClock(), config.SlotStepMinutes())

	reminderService := services.NewReminderService(config.DB, tz)
	reminderService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(sched)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
