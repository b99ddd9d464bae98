package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/httperr"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/httpresp"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/middleware"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

type SavCaseHandler struct {
	db *gorm.DB
}

func NewSavCaseHandler(db *gorm.DB) *SavCaseHandler {
	return &SavCaseHandler{db: db}
}

func (h *SavCaseHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	q := h.db.Where("shop_id = ?", shopID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var cases []models.SavCase
	if err := q.Order("created_at DESC").Find(&cases).Error; err != nil {
		httperr.Internal(c, "failed_to_list_cases", "Could not load SAV cases.")
		return
	}

	httpresp.List(c, cases)
}

type CreateSavCaseRequest struct {
	CustomerID  *uint  `json:"customer_id"`
	DeviceBrand string `json:"device_brand"`
	DeviceModel string `json:"device_model"`
	Issue       string `json:"issue" binding:"required"`
}

func (h *SavCaseHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateSavCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	sc := models.SavCase{
		ShopID:      shopID,
		CustomerID:  req.CustomerID,
		CaseNumber:  fmt.Sprintf("SAV-%d-%d", shopID, time.Now().UnixNano()),
		DeviceBrand: req.DeviceBrand,
		DeviceModel: req.DeviceModel,
		Issue:       req.Issue,
		Status:      "open",
	}

	if err := h.db.Create(&sc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_case", "Could not create SAV case.")
		return
	}

	c.JSON(201, sc)
}
