package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/fleetcheck/config"
	"github.com/cppla/fleetcheck/middleware"
	"github.com/cppla/fleetcheck/models"
	"github.com/cppla/fleetcheck/utils"
)

// AuthController handles the auth RPC endpoint: login, register and
// profile actions. login/register identify the caller by the platform
// openid; everything else requires a session token.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Handle dispatches an {action, data} request.
func (a *AuthController) Handle(ctx *gin.Context) {
	req, ok := bindAction(ctx)
	if !ok {
		return
	}

	switch req.Action {
	case "login":
		a.login(ctx, req.Data)
	case "register":
		a.register(ctx, req.Data)
	case "checkRole":
		a.checkRole(ctx)
	case "getUserInfo":
		a.getUserInfo(ctx)
	case "updateUserInfo":
		a.updateUserInfo(ctx, req.Data)
	default:
		utils.Fail(ctx, utils.KindInvalidParameter, "未知操作")
	}
}

type clientProfile struct {
	AvatarURL string `json:"avatarUrl"`
	NickName  string `json:"nickName"`
}

func (a *AuthController) login(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		OpenID   string        `json:"openid"`
		UserInfo clientProfile `json:"userInfo"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	openid := strings.TrimSpace(req.OpenID)
	if openid == "" {
		utils.Fail(ctx, utils.KindValidation, "用户信息不能为空")
		return
	}

	var user models.Driver
	err := a.db.Where("openid = ?", openid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Unknown identity: the client must complete registration first.
		utils.SuccessMsg(ctx, gin.H{
			"user":      nil,
			"isNewUser": true,
			"openid":    openid,
		}, "需要完成注册")
		return
	}
	if err != nil {
		utils.Fail(ctx, utils.KindDatabase, "登录失败")
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"last_login_time": now}
	if req.UserInfo.AvatarURL != "" {
		updates["avatar_url"] = req.UserInfo.AvatarURL
	}
	if req.UserInfo.NickName != "" {
		updates["nick_name"] = utils.SanitizeText(req.UserInfo.NickName)
	}
	if err := a.db.Model(&user).Updates(updates).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "登录失败")
		return
	}

	token, err := a.issueToken(&user)
	if err != nil {
		utils.Fail(ctx, utils.KindSystem, "生成登录凭证失败")
		return
	}

	utils.SuccessMsg(ctx, gin.H{
		"token":     token,
		"user":      user,
		"isNewUser": false,
	}, "登录成功")
}

func (a *AuthController) register(ctx *gin.Context, data json.RawMessage) {
	var req struct {
		OpenID     string `json:"openid"`
		DriverInfo struct {
			Name       string `json:"name"`
			EmployeeID string `json:"employeeId"`
			Phone      string `json:"phone"`
			AvatarURL  string `json:"avatarUrl"`
			NickName   string `json:"nickName"`
		} `json:"driverInfo"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	openid := strings.TrimSpace(req.OpenID)
	if openid == "" {
		utils.Fail(ctx, utils.KindValidation, "司机信息不能为空")
		return
	}

	info := req.DriverInfo
	info.Name = strings.TrimSpace(info.Name)
	info.EmployeeID = strings.TrimSpace(info.EmployeeID)

	if info.Name == "" || info.EmployeeID == "" || info.Phone == "" {
		utils.Fail(ctx, utils.KindValidation, "姓名、工号和手机号不能为空")
		return
	}
	if !utils.ValidPhone(info.Phone) {
		utils.Fail(ctx, utils.KindValidation, "手机号格式不正确")
		return
	}
	if !utils.ValidEmployeeID(info.EmployeeID) {
		utils.Fail(ctx, utils.KindValidation, "工号格式不正确")
		return
	}

	// Courtesy pre-checks for friendly messages. The unique indexes are
	// the real gate; a concurrent registration still surfaces below as a
	// duplicate-key error.
	var count int64
	if err := a.db.Model(&models.Driver{}).Where("openid = ?", openid).Count(&count).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "注册失败")
		return
	}
	if count > 0 {
		utils.Fail(ctx, utils.KindBusiness, "该账号已注册")
		return
	}
	if err := a.db.Model(&models.Driver{}).Where("employee_id = ?", info.EmployeeID).Count(&count).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "注册失败")
		return
	}
	if count > 0 {
		utils.Fail(ctx, utils.KindBusiness, "工号已存在")
		return
	}
	if err := a.db.Model(&models.Driver{}).Where("phone = ?", info.Phone).Count(&count).Error; err != nil {
		utils.Fail(ctx, utils.KindDatabase, "注册失败")
		return
	}
	if count > 0 {
		utils.Fail(ctx, utils.KindBusiness, "手机号已被注册")
		return
	}

	now := time.Now()
	user := models.Driver{
		OpenID:        openid,
		Name:          info.Name,
		EmployeeID:    info.EmployeeID,
		Phone:         info.Phone,
		Role:          models.RoleDriver,
		Status:        models.StatusActive,
		AvatarURL:     info.AvatarURL,
		NickName:      utils.SanitizeText(info.NickName),
		LastLoginTime: &now,
	}

	if err := a.db.Create(&user).Error; err != nil {
		if isDuplicateKeyErr(err) {
			utils.Fail(ctx, utils.KindBusiness, "工号或手机号已存在")
			return
		}
		utils.Fail(ctx, utils.KindDatabase, "注册失败")
		return
	}

	token, err := a.issueToken(&user)
	if err != nil {
		utils.Fail(ctx, utils.KindSystem, "生成登录凭证失败")
		return
	}

	utils.SuccessMsg(ctx, gin.H{
		"token": token,
		"user":  user,
	}, "注册成功")
}

func (a *AuthController) checkRole(ctx *gin.Context) {
	user, err := middleware.ResolveDriver(ctx, a.db)
	if errors.Is(err, middleware.ErrUserMissing) {
		utils.SuccessMsg(ctx, gin.H{
			"role":      nil,
			"user":      nil,
			"isNewUser": true,
		}, "用户不存在")
		return
	}
	if err != nil {
		middleware.FailResolve(ctx, err)
		return
	}

	utils.SuccessMsg(ctx, gin.H{
		"role":      user.Role,
		"user":      user,
		"isNewUser": false,
	}, "获取用户角色成功")
}

func (a *AuthController) getUserInfo(ctx *gin.Context) {
	user, err := middleware.ResolveDriver(ctx, a.db)
	if err != nil {
		middleware.FailResolve(ctx, err)
		return
	}
	utils.SuccessMsg(ctx, user, "获取用户信息成功")
}

func (a *AuthController) updateUserInfo(ctx *gin.Context, data json.RawMessage) {
	user, err := middleware.ResolveDriver(ctx, a.db)
	if err != nil {
		middleware.FailResolve(ctx, err)
		return
	}

	var req struct {
		UserInfo struct {
			Name      string `json:"name"`
			Phone     string `json:"phone"`
			AvatarURL string `json:"avatarUrl"`
			NickName  string `json:"nickName"`
		} `json:"userInfo"`
	}
	if !decodeData(ctx, data, &req) {
		return
	}

	info := req.UserInfo
	updates := map[string]interface{}{"updated_at": time.Now()}

	if name := strings.TrimSpace(info.Name); name != "" {
		updates["name"] = name
	}
	if info.Phone != "" {
		if !utils.ValidPhone(info.Phone) {
			utils.Fail(ctx, utils.KindValidation, "手机号格式不正确")
			return
		}
		var count int64
		if err := a.db.Model(&models.Driver{}).
			Where("phone = ? AND id <> ?", info.Phone, user.ID).
			Count(&count).Error; err != nil {
			utils.Fail(ctx, utils.KindDatabase, "更新用户信息失败")
			return
		}
		if count > 0 {
			utils.Fail(ctx, utils.KindBusiness, "手机号已被其他用户使用")
			return
		}
		updates["phone"] = info.Phone
	}
	if info.AvatarURL != "" {
		updates["avatar_url"] = info.AvatarURL
	}
	if info.NickName != "" {
		updates["nick_name"] = utils.SanitizeText(info.NickName)
	}

	if err := a.db.Model(user).Updates(updates).Error; err != nil {
		if isDuplicateKeyErr(err) {
			utils.Fail(ctx, utils.KindBusiness, "手机号已被其他用户使用")
			return
		}
		utils.Fail(ctx, utils.KindDatabase, "更新用户信息失败")
		return
	}

	utils.SuccessMsg(ctx, nil, "用户信息更新成功")
}

func (a *AuthController) issueToken(user *models.Driver) (string, error) {
	ttl := time.Duration(config.Get().TokenTTLHours) * time.Hour
	return utils.GenerateToken(user.ID, user.EmployeeID, ttl)
}
