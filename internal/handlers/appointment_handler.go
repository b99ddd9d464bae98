package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/httperr"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/httpresp"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/middleware"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/notification"
	ucAppointment "github.com/didierjondet/sav-pro-fix-sub003/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC        *ucAppointment.CreateAppointment
	confirmUC       *ucAppointment.ConfirmAppointment
	cancelUC        *ucAppointment.CancelAppointment
	completeUC      *ucAppointment.CompleteAppointment
	noShowUC        *ucAppointment.MarkNoShow
	acceptCounterUC *ucAppointment.AcceptCounterProposal
	rejectCounterUC *ucAppointment.RejectCounterProposal
	editUC          *ucAppointment.EditAppointment
	deleteUC        *ucAppointment.DeleteAppointment
	listUC          *ucAppointment.ListAppointments
	availabilityUC  *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	noShowUC *ucAppointment.MarkNoShow,
	acceptCounterUC *ucAppointment.AcceptCounterProposal,
	rejectCounterUC *ucAppointment.RejectCounterProposal,
	editUC *ucAppointment.EditAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListAppointments,
	availabilityUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:        createUC,
		confirmUC:       confirmUC,
		cancelUC:        cancelUC,
		completeUC:      completeUC,
		noShowUC:        noShowUC,
		acceptCounterUC: acceptCounterUC,
		rejectCounterUC: rejectCounterUC,
		editUC:          editUC,
		deleteUC:        deleteUC,
		listUC:          listUC,
		availabilityUC:  availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	SavCaseID    *uint `json:"sav_case_id"`
	CustomerID   *uint `json:"customer_id"`
	TechnicianID *uint `json:"technician_id"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	Type            string `json:"appointment_type" binding:"required"`

	Notes      string         `json:"notes"`
	DeviceInfo map[string]any `json:"device_info"`
}

type EditAppointmentRequest struct {
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Type            *string `json:"appointment_type"`
	Notes           *string `json:"notes"`
}

type ResolveCounterRequest struct {
	Channel string `json:"channel"` // sms (default) or chat
}

type appointmentResponse struct {
	Appointment *models.Appointment `json:"appointment"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// mapDomainError translates the core taxonomy into HTTP statuses: validation
// 400, unknown 404, illegal transition or lost race 409.
func mapDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		httperr.BadRequest(c, "invalid_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case domain.IsInvalidTransition(err):
		httperr.Conflict(c, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrConflict):
		httperr.Conflict(c, "conflict", "The appointment was modified by someone else, please refresh.")
	default:
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, warnings, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ShopID:          shopID,
		UserID:          &userID,
		SavCaseID:       req.SavCaseID,
		CustomerID:      req.CustomerID,
		TechnicianID:    req.TechnicianID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Type:            domain.Type(req.Type),
		ProposedBy:      domain.ActorShop,
		Notes:           req.Notes,
		DeviceInfo:      req.DeviceInfo,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointmentResponse{Appointment: ap, Warnings: warnings})
}

// ======================================================
// LISTINGS
// ======================================================

func (h *AppointmentHandler) ListByRange(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		httperr.BadRequest(c, "missing_range", "Both from and to dates are required.")
		return
	}

	aps, err := h.listUC.ByRange(c.Request.Context(), shopID, from, to)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListPendingCounters(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	aps, err := h.listUC.PendingCounters(c.Request.Context(), shopID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	granularity := 0
	if g := c.Query("granularity"); g != "" {
		n, err := strconv.Atoi(g)
		if err != nil {
			httperr.BadRequest(c, "invalid_granularity", "Granularity must be a number of minutes.")
			return
		}
		granularity = n
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), shopID, dateStr, granularity)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(shopID, userID, id uint) (*models.Appointment, []string, error) {
		return h.confirmUC.Execute(c.Request.Context(), shopID, userID, id)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(shopID, userID, id uint) (*models.Appointment, []string, error) {
		return h.cancelUC.Execute(c.Request.Context(), shopID, userID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(shopID, userID, id uint) (*models.Appointment, []string, error) {
		ap, err := h.completeUC.Execute(c.Request.Context(), shopID, userID, id)
		return ap, nil, err
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, func(shopID, userID, id uint) (*models.Appointment, []string, error) {
		ap, err := h.noShowUC.Execute(c.Request.Context(), shopID, userID, id)
		return ap, nil, err
	})
}

func (h *AppointmentHandler) AcceptCounter(c *gin.Context) {
	channel := h.counterChannel(c)
	h.transition(c, func(shopID, userID, id uint) (*models.Appointment, []string, error) {
		return h.acceptCounterUC.Execute(c.Request.Context(), shopID, userID, id, channel)
	})
}

func (h *AppointmentHandler) RejectCounter(c *gin.Context) {
	channel := h.counterChannel(c)
	h.transition(c, func(shopID, userID, id uint) (*models.Appointment, []string, error) {
		return h.rejectCounterUC.Execute(c.Request.Context(), shopID, userID, id, channel)
	})
}

func (h *AppointmentHandler) counterChannel(c *gin.Context) notification.Channel {
	var req ResolveCounterRequest
	// Body is optional; an empty or absent body means the default channel.
	_ = c.ShouldBindJSON(&req)
	return notification.Channel(req.Channel)
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(shopID, userID, id uint) (*models.Appointment, []string, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, warnings, err := run(shopID, userID, uint(id))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointmentResponse{Appointment: ap, Warnings: warnings})
}

// ======================================================
// EDIT / DELETE
// ======================================================

func (h *AppointmentHandler) Edit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	var apType *domain.Type
	if req.Type != nil {
		t := domain.Type(*req.Type)
		apType = &t
	}

	ap, warnings, err := h.editUC.Execute(c.Request.Context(), shopID, userID, uint(id), ucAppointment.EditAppointmentInput{
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Type:            apType,
		Notes:           req.Notes,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointmentResponse{Appointment: ap, Warnings: warnings})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), shopID, userID, uint(id)); err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
