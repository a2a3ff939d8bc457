package routes

import (
	"net/http"

	"clinic-scheduling-server/internal/config"
	"clinic-scheduling-server/internal/handlers"
	"clinic-scheduling-server/internal/middleware"
	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/repository"
	"clinic-scheduling-server/internal/services"
	"clinic-scheduling-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, logger zerolog.Logger) error {
	store := repository.NewStore(db)
	issuer := utils.NewJWTIssuer(cfg.JWTSecret, cfg.ProviderTokenTTL())

	authService, err := services.NewAuthService(store, issuer, cfg.BcryptCost, logger)
	if err != nil {
		return err
	}
	registrationService := services.NewRegistrationService(store, cfg.BcryptCost, logger)
	appointmentService := services.NewAppointmentService(store, services.TimePolicy{MinLead: cfg.AppointmentMinLead}, logger)
	profileService := services.NewProfileService(store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, registrationService, logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, logger)
	userHandler := handlers.NewUserHandler(profileService, logger)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		patientAuth := public.Group("/patient")
		{
			patientAuth.POST("/register", authHandler.RegisterPatient)
			patientAuth.POST("/login", authHandler.LoginPatient)
		}
		providerAuth := public.Group("/provider")
		{
			providerAuth.POST("/register", authHandler.RegisterProvider)
			providerAuth.POST("/login", authHandler.LoginProvider)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(issuer))
	{
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("/book", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleProvider), appointmentHandler.BookAppointment)
			appointmentRoutes.GET("/list", middleware.RoleAuthMiddleware(models.RoleProvider), appointmentHandler.ListAppointments)

			// Patient or provider on the appointment; checked in the service
			appointmentRoutes.GET("/:id", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleProvider), appointmentHandler.GetAppointment)
			appointmentRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(models.RoleProvider), appointmentHandler.UpdateAppointmentStatus)
		}

		private.GET("/patients/:id", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleProvider), userHandler.GetPatient)
		private.GET("/providers/:id", userHandler.GetProvider)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	return nil
}
