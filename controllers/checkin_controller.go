package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/fleetcheck/middleware"
	"github.com/cppla/fleetcheck/models"
	"github.com/cppla/fleetcheck/utils"
)

// CheckinController handles the checkin RPC endpoint. Every action runs
// behind AuthRequired; getDriverCheckins additionally needs admin.
type CheckinController struct {
	db *gorm.DB
}

// NewCheckinController creates a CheckinController.
func NewCheckinController(db *gorm.DB) *CheckinController {
	return &CheckinController{db: db}
}

// Handle dispatches an {action, data} request.
func (c *CheckinController) Handle(ctx *gin.Context) {
	user, ok := middleware.Driver(ctx)
	if !ok {
		utils.Fail(ctx, utils.KindAuth, "未登录")
		return
	}

	req, ok := bindAction(ctx)
	if !ok {
		return
	}

	switch req.Action {
	case "checkin":
		c.checkin(ctx, user, req.Data)
	case "getStatus":
		c.getStatus(ctx, user)
	case "getHistory":
		c.getHistory(ctx, user, req.Data)
	case "getDriverCheckins":
		if _, ok := middleware.RequireAdmin(ctx); !ok {
			return
		}
		c.getDriverCheckins(ctx, req.Data)
	default:
		utils.Fail(ctx, utils.KindInvalidParameter, "未知操作")
	}
}

func (c *CheckinController) checkin(ctx *gin.Context, user *models.Driver, data json.RawMessage) {
	var req struct {
		Location *struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
			Address   string   `json:"address"`
		} `json:"location"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	if req.Location == nil || req.Location.Latitude == nil || req.Location.Longitude == nil {
		utils.Fail(ctx, utils.KindValidation, "位置信息不能为空")
		return
	}
	lat, lng := *req.Location.Latitude, *req.Location.Longitude
	if !utils.ValidLatitude(lat) || !utils.ValidLongitude(lng) {
		utils.Fail(ctx, utils.KindValidation, "位置信息超出有效范围")
		return
	}

	now := time.Now()
	today := now.Format(models.DateLayout)

	// Courtesy read for a friendly message. Two concurrent check-ins can
	// both pass this; the unique (driver_id, date) index decides then.
	var count int64
	if err := c.db.Model(&models.Checkin{}).
		Where("driver_id = ? AND date = ?", user.ID, today).
		Count(&count).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "打卡失败")
		return
	}
	if count > 0 {
		utils.Fail(ctx, utils.KindBusiness, "今日已打卡")
		return
	}

	location := models.Location{Latitude: lat, Longitude: lng, Address: req.Location.Address}
	if areas := loadCheckinAreas(c.db); !withinAllowedArea(location, areas) {
		utils.Fail(ctx, utils.KindBusiness, "不在允许的打卡范围内")
		return
	}

	if location.Address == "" {
		location.Address = fmt.Sprintf("纬度: %.6f, 经度: %.6f", lat, lng)
	}

	status := classifyCheckin(now, loadCheckinWindow(c.db))

	record := models.Checkin{
		DriverID:    user.ID,
		DriverName:  user.Name,
		EmployeeID:  user.EmployeeID,
		CheckinTime: now,
		Location:    location,
		Status:      status,
		Date:        today,
		CreatedAt:   now,
	}

	if err := c.db.Create(&record).Error; err != nil {
		if isDuplicateKeyErr(err) {
			utils.Fail(ctx, utils.KindBusiness, "今日已打卡")
			return
		}
		utils.Fail(ctx, utils.KindDatabase, "打卡失败")
		return
	}

	utils.Sugar.Infof("司机打卡: %s (%s) - %s", user.Name, user.EmployeeID, status)

	utils.SuccessMsg(ctx, gin.H{
		"checkinId":   record.ID,
		"status":      status,
		"checkinTime": formatTime(now),
		"location":    location,
	}, "打卡成功")
}

func (c *CheckinController) getStatus(ctx *gin.Context, user *models.Driver) {
	today := time.Now().Format(models.DateLayout)

	var record models.Checkin
	err := c.db.Where("driver_id = ? AND date = ?", user.ID, today).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Success(ctx, gin.H{
			"hasCheckedIn": false,
			"checkinTime":  nil,
			"status":       nil,
			"location":     nil,
		})
		return
	}
	if err != nil {
		utils.Fail(ctx, utils.KindDatabase, "获取打卡状态失败")
		return
	}

	utils.Success(ctx, gin.H{
		"hasCheckedIn": true,
		"checkinTime":  formatTime(record.CheckinTime),
		"status":       record.Status,
		"location":     record.Location,
	})
}

type checkinHistoryRequest struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (c *CheckinController) getHistory(ctx *gin.Context, user *models.Driver, data json.RawMessage) {
	var req checkinHistoryRequest
	if !decodeData(ctx, data, &req) {
		return
	}

	records, ok := c.queryCheckins(ctx, user.ID, req)
	if !ok {
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, record := range records {
		items = append(items, gin.H{
			"id":          record.ID,
			"date":        record.Date,
			"checkinTime": formatTime(record.CheckinTime),
			"status":      record.Status,
			"location":    record.Location,
		})
	}

	utils.Success(ctx, items)
}

func (c *CheckinController) getDriverCheckins(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		DriverID uint `json:"driverId"`
		checkinHistoryRequest
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	if req.DriverID == 0 {
		utils.Fail(ctx, utils.KindValidation, "司机ID不能为空")
		return
	}

	records, ok := c.queryCheckins(ctx, req.DriverID, req.checkinHistoryRequest)
	if !ok {
		return
	}

	stats := gin.H{"total": len(records), "normal": 0, "late": 0, "missed": 0}
	items := make([]gin.H, 0, len(records))
	for _, record := range records {
		if n, ok := stats[record.Status].(int); ok {
			stats[record.Status] = n + 1
		}
		items = append(items, gin.H{
			"id":          record.ID,
			"date":        record.Date,
			"checkinTime": formatTime(record.CheckinTime),
			"status":      record.Status,
			"location":    record.Location,
			"driverName":  record.DriverName,
			"employeeId":  record.EmployeeID,
		})
	}

	utils.Success(ctx, gin.H{
		"records": items,
		"stats":   stats,
	})
}

// queryCheckins applies the shared filter/order/pagination shape for
// per-driver history listings. Failure has already been written to ctx.
func (c *CheckinController) queryCheckins(ctx *gin.Context, driverID uint, req checkinHistoryRequest) ([]models.Checkin, bool) {
	page, limit := normalizePage(req.Page, req.Limit)

	query := c.db.Where("driver_id = ?", driverID)
	if req.StartDate != "" && req.EndDate != "" {
		// date is a plain YYYY-MM-DD column, inclusive on both ends
		query = query.Where("date >= ? AND date <= ?", req.StartDate, req.EndDate)
	}

	var records []models.Checkin
	if err := query.
		Order("checkin_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "获取打卡历史失败")
		return nil, false
	}
	return records, true
}
