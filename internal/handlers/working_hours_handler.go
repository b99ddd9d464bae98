package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/httperr"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/httpresp"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/middleware"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

type WorkingHoursHandler struct {
	repo domain.Repository
}

func NewWorkingHoursHandler(repo domain.Repository) *WorkingHoursHandler {
	return &WorkingHoursHandler{repo: repo}
}

type WorkingHoursRow struct {
	Weekday    int    `json:"weekday"`
	IsOpen     bool   `json:"is_open"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	rows, err := h.repo.ListWorkingHours(c.Request.Context(), shopID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_working_hours", "Could not load working hours.")
		return
	}

	httpresp.List(c, rows)
}

// Update replaces the full weekly schedule at once; partial weeks are
// allowed (missing weekdays count as closed once any row exists).
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req []WorkingHoursRow
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid working hours payload.")
		return
	}

	rows := make([]models.WorkingHours, 0, len(req))
	seen := map[int]bool{}
	for _, r := range req {
		if seen[r.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear only once.")
			return
		}
		seen[r.Weekday] = true

		row := models.WorkingHours{
			ShopID:     shopID,
			Weekday:    r.Weekday,
			IsOpen:     r.IsOpen,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
			BreakStart: r.BreakStart,
			BreakEnd:   r.BreakEnd,
		}
		if err := domain.ValidateWeeklyRow(row); err != nil {
			httperr.BadRequest(c, "invalid_working_hours", err.Error())
			return
		}
		rows = append(rows, row)
	}

	if err := h.repo.ReplaceWorkingHours(c.Request.Context(), shopID, rows); err != nil {
		httperr.Internal(c, "failed_to_update_working_hours", "Could not save working hours.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(rows)})
}
