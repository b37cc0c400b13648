package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cppla/fleetcheck/middleware"
	"github.com/cppla/fleetcheck/models"
	"github.com/cppla/fleetcheck/utils"
)

// AdminController handles the admin RPC endpoint. Every action needs the
// admin role except logOperation, which any active user may call.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// Handle dispatches an {action, data} request.
func (a *AdminController) Handle(ctx *gin.Context) {
	user, ok := middleware.Driver(ctx)
	if !ok {
		utils.Fail(ctx, utils.KindAuth, "未登录")
		return
	}

	req, ok := bindAction(ctx)
	if !ok {
		return
	}

	if req.Action != "logOperation" {
		if _, ok := middleware.RequireAdmin(ctx); !ok {
			return
		}
	}

	switch req.Action {
	case "getTodayStats":
		a.getTodayStats(ctx)
	case "getDriverList":
		a.getDriverList(ctx, req.Data)
	case "getCallRecords":
		a.getCallRecords(ctx, req.Data)
	case "getSystemConfig":
		a.getSystemConfig(ctx)
	case "updateSystemConfig":
		a.updateSystemConfig(ctx, req.Data)
	case "exportData":
		a.exportData(ctx, req.Data)
	case "logOperation":
		a.logOperation(ctx, user, req.Data)
	case "addDriver":
		a.addDriver(ctx, req.Data)
	case "updateDriver":
		a.updateDriver(ctx, req.Data)
	case "deleteDriver":
		a.deleteDriver(ctx, req.Data)
	default:
		utils.Fail(ctx, utils.KindInvalidParameter, "未知操作")
	}
}

func (a *AdminController) getTodayStats(ctx *gin.Context) {
	today := time.Now().Format(models.DateLayout)

	var totalDrivers int64
	if err := a.db.Model(&models.Driver{}).
		Where("status = ?", models.StatusActive).
		Count(&totalDrivers).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "获取统计数据失败")
		return
	}

	var checkins []models.Checkin
	if err := a.db.Where("date = ?", today).Find(&checkins).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "获取统计数据失败")
		return
	}

	lateDrivers := 0
	checkedInIDs := make([]uint, 0, len(checkins))
	for _, record := range checkins {
		if record.Status == models.CheckinLate {
			lateDrivers++
		}
		checkedInIDs = append(checkedInIDs, record.DriverID)
	}

	unchecked := a.db.Where("status = ?", models.StatusActive)
	if len(checkedInIDs) > 0 {
		unchecked = unchecked.Where("id NOT IN ?", checkedInIDs)
	}
	var uncheckedDrivers []models.Driver
	if err := unchecked.Find(&uncheckedDrivers).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "获取统计数据失败")
		return
	}

	utils.Success(ctx, gin.H{
		"stats": gin.H{
			"totalDrivers": totalDrivers,
			"checkedIn":    len(checkins),
			"notCheckedIn": int(totalDrivers) - len(checkins),
			"lateDrivers":  lateDrivers,
		},
		"uncheckedDrivers": uncheckedDrivers,
	})
}

func (a *AdminController) getDriverList(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		Page   int    `json:"page"`
		Limit  int    `json:"limit"`
		Status string `json:"status"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}
	page, limit := normalizePage(req.Page, req.Limit)

	query := a.db.Model(&models.Driver{})
	if req.Status != "" && req.Status != "all" {
		query = query.Where("status = ?", req.Status)
	}

	var drivers []models.Driver
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&drivers).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "获取司机列表失败")
		return
	}

	utils.Success(ctx, drivers)
}

func (a *AdminController) getCallRecords(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		Page      int    `json:"page"`
		Limit     int    `json:"limit"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}
	page, limit := normalizePage(req.Page, req.Limit)

	query := a.db.Model(&models.CallRecord{})
	if req.StartDate != "" && req.EndDate != "" {
		start, end, ok := dayRange(req.StartDate, req.EndDate)
		if !ok {
			utils.Fail(ctx, utils.KindValidation, "日期格式不正确")
			return
		}
		query = query.Where("call_time >= ? AND call_time < ?", start, end)
	}

	var records []models.CallRecord
	if err := query.
		Order("call_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "获取外呼记录失败")
		return
	}

	utils.Success(ctx, records)
}

const configCacheKeyAll = "cache:config:all"

func (a *AdminController) getSystemConfig(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(configCacheKeyAll); ok {
		var cached map[string]json.RawMessage
		if err := json.Unmarshal(b, &cached); err == nil {
			utils.Success(ctx, cached)
			return
		}
	}

	var rows []models.SystemConfig
	if err := a.db.Find(&rows).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "获取系统配置失败")
		return
	}

	configMap := make(map[string]models.JSONValue, len(rows))
	for _, row := range rows {
		configMap[row.Key] = row.Value
	}

	utils.CacheSetJSON(configCacheKeyAll, configMap, time.Hour)
	utils.Success(ctx, configMap)
}

func (a *AdminController) updateSystemConfig(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		ConfigKey   string          `json:"configKey"`
		ConfigValue json.RawMessage `json:"configValue"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	if req.ConfigKey == "" || len(req.ConfigValue) == 0 {
		utils.Fail(ctx, utils.KindValidation, "配置键和值不能为空")
		return
	}

	// Upsert, last write wins. No versioning.
	var row models.SystemConfig
	err := a.db.Where("config_key = ?", req.ConfigKey).First(&row).Error
	switch {
	case err == nil:
		row.Value = models.JSONValue(req.ConfigValue)
		row.UpdatedAt = time.Now()
		err = a.db.Save(&row).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.SystemConfig{
			Key:   req.ConfigKey,
			Value: models.JSONValue(req.ConfigValue),
		}
		err = a.db.Create(&row).Error
	}
	if err != nil {
		utils.Fail(ctx, utils.KindDatabase, "更新系统配置失败")
		return
	}

	utils.CacheDelete(configCacheKeyAll)
	utils.CacheDelete("cache:config:" + req.ConfigKey)

	utils.SuccessMsg(ctx, nil, "配置更新成功")
}

func (a *AdminController) exportData(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		Type      string `json:"type"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	switch req.Type {
	case "checkins":
		query := a.db.Model(&models.Checkin{})
		if req.StartDate != "" && req.EndDate != "" {
			query = query.Where("date >= ? AND date <= ?", req.StartDate, req.EndDate)
		}
		var records []models.Checkin
		if err := query.Order("checkin_time DESC").Find(&records).Error; err != nil {
			utils.Fail(ctx, utils.KindDatabase, "导出数据失败")
			return
		}
		utils.SuccessMsg(ctx, records, "数据导出成功")

	case "drivers":
		var drivers []models.Driver
		if err := a.db.Order("created_at DESC").Find(&drivers).Error; err != nil {
			utils.Fail(ctx, utils.KindDatabase, "导出数据失败")
			return
		}
		utils.SuccessMsg(ctx, drivers, "数据导出成功")

	case "calls":
		query := a.db.Model(&models.CallRecord{})
		if req.StartDate != "" && req.EndDate != "" {
			start, end, ok := dayRange(req.StartDate, req.EndDate)
			if !ok {
				utils.Fail(ctx, utils.KindValidation, "日期格式不正确")
				return
			}
			query = query.Where("call_time >= ? AND call_time < ?", start, end)
		}
		var records []models.CallRecord
		if err := query.Order("call_time DESC").Find(&records).Error; err != nil {
			utils.Fail(ctx, utils.KindDatabase, "导出数据失败")
			return
		}
		utils.SuccessMsg(ctx, records, "数据导出成功")

	default:
		utils.Fail(ctx, utils.KindValidation, "不支持的导出类型")
	}
}

func (a *AdminController) logOperation(ctx *gin.Context, user *models.Driver, data json.RawMessage) {
	var req struct {
		LogData *struct {
			Operation string          `json:"operation"`
			Details   json.RawMessage `json:"details"`
			IP        string          `json:"ip"`
			Page      string          `json:"page"`
		} `json:"logData"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	if req.LogData == nil || req.LogData.Operation == "" {
		utils.Fail(ctx, utils.KindValidation, "日志数据不能为空")
		return
	}

	ip := req.LogData.IP
	if ip == "" {
		ip = ctx.ClientIP()
	}

	entry := models.OperationLog{
		LogID:     uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		UserRole:  user.Role,
		Operation: req.LogData.Operation,
		Details:   models.JSONValue(req.LogData.Details),
		IP:        ip,
		Page:      req.LogData.Page,
	}

	if err := a.db.Create(&entry).Error; err != nil {
		utils.Fail(ctx, utils.KindSystem, "记录日志失败")
		return
	}

	utils.Sugar.Infow("用户操作日志",
		"logId", entry.LogID,
		"userId", entry.UserID,
		"userName", entry.UserName,
		"userRole", entry.UserRole,
		"operation", entry.Operation,
		"ip", entry.IP,
		"page", entry.Page,
	)

	utils.SuccessMsg(ctx, gin.H{"logId": entry.LogID}, "日志记录成功")
}

func (a *AdminController) addDriver(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		DriverInfo *struct {
			Name       string `json:"name"`
			EmployeeID string `json:"employeeId"`
			Phone      string `json:"phone"`
		} `json:"driverInfo"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	if req.DriverInfo == nil || req.DriverInfo.Name == "" || req.DriverInfo.EmployeeID == "" || req.DriverInfo.Phone == "" {
		utils.Fail(ctx, utils.KindValidation, "司机信息不完整")
		return
	}
	if !utils.ValidPhone(req.DriverInfo.Phone) {
		utils.Fail(ctx, utils.KindValidation, "手机号格式不正确")
		return
	}
	if !utils.ValidEmployeeID(req.DriverInfo.EmployeeID) {
		utils.Fail(ctx, utils.KindValidation, "工号格式不正确")
		return
	}

	var count int64
	if err := a.db.Model(&models.Driver{}).
		Where("employee_id = ?", req.DriverInfo.EmployeeID).
		Count(&count).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "添加司机失败")
		return
	}
	if count > 0 {
		utils.Fail(ctx, utils.KindBusiness, "工号已存在")
		return
	}
	if err := a.db.Model(&models.Driver{}).
		Where("phone = ?", req.DriverInfo.Phone).
		Count(&count).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "添加司机失败")
		return
	}
	if count > 0 {
		utils.Fail(ctx, utils.KindBusiness, "手机号已被注册")
		return
	}

	driver := models.Driver{
		Name:       req.DriverInfo.Name,
		EmployeeID: req.DriverInfo.EmployeeID,
		Phone:      req.DriverInfo.Phone,
		Role:       models.RoleDriver,
		Status:     models.StatusActive,
	}

	if err := a.db.Create(&driver).Error; err != nil {
		if isDuplicateKeyErr(err) {
			utils.Fail(ctx, utils.KindBusiness, "工号或手机号已存在")
			return
		}
		utils.Fail(ctx, utils.KindDatabase, "添加司机失败")
		return
	}

	utils.SuccessMsg(ctx, driver, "司机添加成功")
}

func (a *AdminController) updateDriver(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		DriverID   uint `json:"driverId"`
		DriverInfo *struct {
			Name   string `json:"name"`
			Phone  string `json:"phone"`
			Status string `json:"status"`
		} `json:"driverInfo"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	if req.DriverID == 0 || req.DriverInfo == nil {
		utils.Fail(ctx, utils.KindValidation, "司机ID和信息不能为空")
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.DriverInfo.Name != "" {
		updates["name"] = req.DriverInfo.Name
	}
	if req.DriverInfo.Phone != "" {
		if !utils.ValidPhone(req.DriverInfo.Phone) {
			utils.Fail(ctx, utils.KindValidation, "手机号格式不正确")
			return
		}
		var count int64
		if err := a.db.Model(&models.Driver{}).
			Where("phone = ? AND id <> ?", req.DriverInfo.Phone, req.DriverID).
			Count(&count).Error; err != nil {
			utils.Fail(ctx, utils.KindDatabase, "更新司机信息失败")
			return
		}
		if count > 0 {
			utils.Fail(ctx, utils.KindBusiness, "手机号已被其他用户使用")
			return
		}
		updates["phone"] = req.DriverInfo.Phone
	}
	if req.DriverInfo.Status != "" {
		if req.DriverInfo.Status != models.StatusActive && req.DriverInfo.Status != models.StatusInactive {
			utils.Fail(ctx, utils.KindValidation, "状态取值不正确")
			return
		}
		updates["status"] = req.DriverInfo.Status
	}

	result := a.db.Model(&models.Driver{}).Where("id = ?", req.DriverID).Updates(updates)
	if result.Error != nil {
		if isDuplicateKeyErr(result.Error) {
			utils.Fail(ctx, utils.KindBusiness, "手机号已被其他用户使用")
			return
		}
		utils.Fail(ctx, utils.KindDatabase, "更新司机信息失败")
		return
	}
	if result.RowsAffected == 0 {
		utils.Fail(ctx, utils.KindBusiness, "司机不存在")
		return
	}

	utils.SuccessMsg(ctx, nil, "司机信息更新成功")
}

func (a *AdminController) deleteDriver(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		DriverID uint `json:"driverId"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	if req.DriverID == 0 {
		utils.Fail(ctx, utils.KindValidation, "司机ID不能为空")
		return
	}

	// Soft delete: flip status, keep the record
	now := time.Now()
	result := a.db.Model(&models.Driver{}).
		Where("id = ?", req.DriverID).
		Updates(map[string]interface{}{
			"status":     models.StatusInactive,
			"deleted_at": &now,
			"updated_at": now,
		})
	if result.Error != nil {
		utils.Fail(ctx, utils.KindDatabase, "删除司机失败")
		return
	}
	if result.RowsAffected == 0 {
		utils.Fail(ctx, utils.KindBusiness, "司机不存在")
		return
	}

	utils.SuccessMsg(ctx, nil, "司机删除成功")
}
