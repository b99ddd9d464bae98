package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/audit"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/config"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/handlers"
	infraRepo "github.com/didierjondet/sav-pro-fix-sub003/internal/infra/repository"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/middleware"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/notification"
	ucAppointment "github.com/didierjondet/sav-pro-fix-sub003/internal/usecase/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/usecase/confirmation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var sms notification.SMSSender = notification.NoopSMSSender{}
	if cfg.SMSWebhookURL != "" {
		sms = notification.NewWebhookSMSSender(cfg.SMSWebhookURL, cfg.SMSWebhookToken)
	}
	notifier := notification.NewDispatcher(db, sms, cfg.PublicBaseURL)

	// ======================================================
	// USE CASES
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(appointmentRepo, notifier, auditDispatcher)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, notifier, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, notifier, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	noShowUC := ucAppointment.NewMarkNoShow(appointmentRepo, auditDispatcher)
	acceptCounterUC := ucAppointment.NewAcceptCounterProposal(appointmentRepo, notifier, auditDispatcher)
	rejectCounterUC := ucAppointment.NewRejectCounterProposal(appointmentRepo, notifier, auditDispatcher)
	editUC := ucAppointment.NewEditAppointment(appointmentRepo, auditDispatcher)
	deleteUC := ucAppointment.NewDeleteAppointment(appointmentRepo, auditDispatcher)
	listUC := ucAppointment.NewListAppointments(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	gateway := confirmation.NewGateway(appointmentRepo, notifier, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	workingHoursHandler := handlers.NewWorkingHoursHandler(appointmentRepo)
	customerHandler := handlers.NewCustomerHandler(db)
	savCaseHandler := handlers.NewSavCaseHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		confirmUC,
		cancelUC,
		completeUC,
		noShowUC,
		acceptCounterUC,
		rejectCounterUC,
		editUC,
		deleteUC,
		listUC,
		availabilityUC,
	)

	confirmationHandler := handlers.NewConfirmationHandler(gateway, appointmentRepo)

	publicLimiter := middleware.NewRedisRateLimiter(rdb, cfg.PublicRateLimit, time.Minute, "public")

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (token possession only)
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(publicLimiter.Middleware())
		{
			publicAPI.GET("/appointments/:token", confirmationHandler.Show)
			publicAPI.POST("/appointments/:token/confirm", confirmationHandler.Confirm)
			publicAPI.POST("/appointments/:token/counter-propose", confirmationHandler.CounterPropose)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// STAFF (tenant authenticated)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/customers", customerHandler.List)
			secured.POST("/me/customers", customerHandler.Create)

			secured.GET("/me/sav-cases", savCaseHandler.List)
			secured.POST("/me/sav-cases", savCaseHandler.Create)

			secured.GET("/me/availability", appointmentHandler.Availability)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByRange)
			secured.GET("/me/appointments/pending-counters", appointmentHandler.ListPendingCounters)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Edit)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.PATCH("/me/appointments/:id/accept-counter", appointmentHandler.AcceptCounter)
			secured.PATCH("/me/appointments/:id/reject-counter", appointmentHandler.RejectCounter)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
