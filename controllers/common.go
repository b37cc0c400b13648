package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/cppla/fleetcheck/config"
	"github.com/cppla/fleetcheck/models"
	"github.com/cppla/fleetcheck/utils"
)

// actionRequest is the uniform RPC body: an action name plus an opaque
// per-action payload.
type actionRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func bindAction(ctx *gin.Context) (*actionRequest, bool) {
	var req actionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Action) == "" {
		utils.Fail(ctx, utils.KindInvalidParameter, "无效的请求参数")
		return nil, false
	}
	return &req, true
}

// decodeData unmarshals the action payload. A missing payload leaves the
// target at its zero value so actions with all-optional fields still work.
func decodeData(ctx *gin.Context, raw json.RawMessage, out interface{}) bool {
	if len(raw) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, out); err != nil {
		utils.Fail(ctx, utils.KindValidation, "请求数据格式不正确")
		return false
	}
	return true
}

// isDuplicateKeyErr reports whether err is a unique-index violation.
// The index, not the handler's prior read, is what actually enforces
// uniqueness under concurrency, so this is the authoritative signal.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}

// normalizePage clamps caller-supplied pagination to configured bounds.
func normalizePage(page, limit int) (int, int) {
	cfg := config.Get()
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = cfg.DefaultPageSize
	}
	if limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}
	return page, limit
}

const timeDisplayLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.Format(timeDisplayLayout)
}

// dayRange converts an inclusive [startDate, endDate] pair of YYYY-MM-DD
// strings into a half-open timestamp interval.
func dayRange(startDate, endDate string) (time.Time, time.Time, bool) {
	start, err := time.ParseInLocation(models.DateLayout, startDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation(models.DateLayout, endDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end.Add(24 * time.Hour), true
}
