package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/fleetcheck/models"
	"github.com/cppla/fleetcheck/utils"
)

// ContextDriverKey is the key used to store the resolved driver in Gin context.
const ContextDriverKey = "auth_driver"

// Guard failures. Handlers that dispatch mixed public/guarded actions
// branch on these instead of parsing messages.
var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrUserMissing  = errors.New("user missing")
	ErrUserDisabled = errors.New("user disabled")
)

// ResolveDriver re-reads the caller's driver row from the database using
// the bearer token's row ID. Role and status are never trusted from the
// token or from a previous call.
func ResolveDriver(ctx *gin.Context, db *gorm.DB) (*models.Driver, error) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return nil, ErrNotLoggedIn
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrNotLoggedIn
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, ErrNotLoggedIn
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return nil, ErrNotLoggedIn
	}

	var user models.Driver
	if err := db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserMissing
		}
		return nil, err
	}

	if !user.IsActive() {
		return nil, ErrUserDisabled
	}

	return &user, nil
}

// FailResolve writes the envelope matching a ResolveDriver error.
func FailResolve(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserDisabled):
		utils.Fail(ctx, utils.KindAuth, "账户已被停用")
	case errors.Is(err, ErrUserMissing):
		utils.Fail(ctx, utils.KindAuth, "用户不存在")
	case errors.Is(err, ErrNotLoggedIn):
		utils.Fail(ctx, utils.KindAuth, "未登录或登录已过期")
	default:
		utils.Fail(ctx, utils.KindDatabase, "获取用户信息失败")
	}
}

// AuthRequired ensures the request carries a valid session token and an
// active account, and stores the resolved driver in the context.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := ResolveDriver(ctx, db)
		if err != nil {
			FailResolve(ctx, err)
			ctx.Abort()
			return
		}
		ctx.Set(ContextDriverKey, user)
		ctx.Next()
	}
}

// Driver returns the driver resolved by AuthRequired.
func Driver(ctx *gin.Context) (*models.Driver, bool) {
	v, ok := ctx.Get(ContextDriverKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.Driver)
	return user, ok
}

// RequireAdmin asserts the resolved driver carries the admin role,
// writing the AUTH_ERROR envelope itself on failure. Admin is a strict
// superset of driver, so no inverse check exists.
func RequireAdmin(ctx *gin.Context) (*models.Driver, bool) {
	user, ok := Driver(ctx)
	if !ok {
		utils.Fail(ctx, utils.KindAuth, "未登录")
		return nil, false
	}
	if !user.IsAdmin() {
		utils.Fail(ctx, utils.KindAuth, "权限不足，需要管理员权限")
		return nil, false
	}
	return user, true
}
