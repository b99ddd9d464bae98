package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/httperr"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/usecase/confirmation"
)

// ConfirmationHandler is the public, token-gated surface. Possession of the
// token is the only credential; unknown tokens get a generic 404 that does
// not reveal whether the token ever existed.
type ConfirmationHandler struct {
	gateway *confirmation.Gateway
	repo    domain.Repository
}

func NewConfirmationHandler(
	gateway *confirmation.Gateway,
	repo domain.Repository,
) *ConfirmationHandler {
	return &ConfirmationHandler{
		gateway: gateway,
		repo:    repo,
	}
}

// ======================================================
// DTOs
// ======================================================

type CounterProposeRequest struct {
	Date    string `json:"date" binding:"required"` // YYYY-MM-DD
	Time    string `json:"time" binding:"required"` // HH:mm
	Message string `json:"message"`
}

type appointmentSummary struct {
	ShopName        string `json:"shop_name"`
	Status          string `json:"status"`
	StartDatetime   string `json:"start_datetime"`
	DurationMinutes int    `json:"duration_minutes"`
	AppointmentType string `json:"appointment_type"`
	CaseReference   string `json:"case_reference,omitempty"`
	DeviceBrand     string `json:"device_brand,omitempty"`
	DeviceModel     string `json:"device_model,omitempty"`

	// True only while the client can still act on the link.
	Actionable bool `json:"actionable"`
}

// ======================================================
// VIEW
// ======================================================

func (h *ConfirmationHandler) Show(c *gin.Context) {
	token := c.Param("token")

	ap, err := h.gateway.Resolve(c.Request.Context(), token)
	if err != nil {
		h.mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.summarize(c, ap))
}

// ======================================================
// ACTIONS
// ======================================================

func (h *ConfirmationHandler) Confirm(c *gin.Context) {
	token := c.Param("token")

	ap, warnings, err := h.gateway.Confirm(c.Request.Context(), token)
	if err != nil {
		h.mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": h.summarize(c, ap),
		"warnings":    warnings,
	})
}

func (h *ConfirmationHandler) CounterPropose(c *gin.Context) {
	token := c.Param("token")

	var req CounterProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A date and time are required.")
		return
	}

	// Resolve first so the shop's timezone interprets the civil datetime.
	ap, err := h.gateway.Resolve(c.Request.Context(), token)
	if err != nil {
		h.mapError(c, err)
		return
	}

	shop, err := h.repo.GetShopByID(c.Request.Context(), ap.ShopID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		req.Date+" "+req.Time,
		locationFromShop(shop),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	ap, warnings, err := h.gateway.CounterPropose(c.Request.Context(), token, newStart, req.Message)
	if err != nil {
		h.mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": h.summarize(c, ap),
		"warnings":    warnings,
	})
}

// ======================================================
// HELPERS
// ======================================================

func (h *ConfirmationHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Deliberately vague: do not confirm or deny the token's existence.
		httperr.NotFound(c, "invalid_link", "This link is invalid.")
	case domain.IsValidation(err):
		httperr.BadRequest(c, "invalid_request", err.Error())
	case domain.IsInvalidTransition(err), errors.Is(err, domain.ErrConflict):
		httperr.Conflict(c, "already_resolved", "This appointment has already been handled.")
	default:
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}

func (h *ConfirmationHandler) summarize(c *gin.Context, ap *models.Appointment) appointmentSummary {
	summary := appointmentSummary{
		Status:          ap.Status,
		DurationMinutes: ap.DurationMinutes,
		AppointmentType: ap.AppointmentType,
		Actionable:      domain.Status(ap.Status) == domain.StatusProposed,
	}

	shop, err := h.repo.GetShopByID(c.Request.Context(), ap.ShopID)
	if err == nil {
		summary.ShopName = shop.Name
		summary.StartDatetime = ap.StartDatetime.In(locationFromShop(shop)).Format("2006-01-02 15:04")
	} else {
		summary.StartDatetime = ap.StartDatetime.Format("2006-01-02 15:04")
	}

	if ap.SavCaseID != nil {
		if sc, err := h.repo.GetSavCase(c.Request.Context(), ap.ShopID, *ap.SavCaseID); err == nil {
			summary.CaseReference = sc.CaseNumber
			summary.DeviceBrand = sc.DeviceBrand
			summary.DeviceModel = sc.DeviceModel
		}
	}

	return summary
}
