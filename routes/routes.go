package routes

import (
	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/scheduling"
	"salonbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(sched *scheduling.Scheduler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	appointmentController := controllers.AppointmentController{Scheduler: sched}
	dashboardController := controllers.DashboardController{Scheduler: sched}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Branch routes (mutations are owner-only)
		branches := api.Group("/branches")
		{
			branches.GET("", controllers.GetBranches)
			branches.POST("", utils.OwnerOnly(), controllers.CreateBranch)
			branches.PUT("/:id", utils.OwnerOnly(), controllers.UpdateBranch)
			branches.DELETE("/:id", utils.OwnerOnly(), controllers.DeleteBranch)
		}

		// Stylist routes, with the weekly schedule nested under the stylist
		stylists := api.Group("/stylists")
		{
			stylists.POST("", controllers.CreateStylist)
			stylists.GET("", controllers.GetStylists)
			stylists.GET("/:id", controllers.GetStylist)
			stylists.PUT("/:id", controllers.UpdateStylist)
			stylists.DELETE("/:id", utils.OwnerOnly(), controllers.DeleteStylist)
			stylists.GET("/:id/schedule", appointmentController.GetStylistSchedule)
			stylists.GET("/:id/working-hours", controllers.GetWorkingHours)
			stylists.PUT("/:id/working-hours", controllers.UpdateWorkingHours)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.GET("/slots", appointmentController.GetAvailableSlots)
			appointments.GET("/check-conflict", appointmentController.CheckConflict)
			appointments.POST("", appointmentController.CreateAppointment)
			appointments.GET("", appointmentController.GetAppointments)
			appointments.GET("/:id", appointmentController.GetAppointment)
			appointments.PUT("/:id/reschedule", appointmentController.RescheduleAppointment)
			appointments.PUT("/:id/cancel", appointmentController.CancelAppointment)
			appointments.PUT("/:id/confirm", appointmentController.ConfirmAppointment)
			appointments.PUT("/:id/start", appointmentController.StartAppointment)
			appointments.PUT("/:id/complete", appointmentController.CompleteAppointment)
			appointments.PUT("/:id/no-show", appointmentController.MarkNoShow)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id/pay", controllers.PayInvoice)
		}

		// Dashboard routes
		api.GET("/dashboard", dashboardController.GetDashboardOverview)
	}

	return r
}
