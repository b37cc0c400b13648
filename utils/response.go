package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds shared by every endpoint. Clients branch on the kind to
// pick a presentation style; the numeric codes are fixed and must not
// be renumbered.
const (
	KindBusiness         = "BUSINESS_ERROR"
	KindSystem           = "SYSTEM_ERROR"
	KindDatabase         = "DATABASE_ERROR"
	KindAuth             = "AUTH_ERROR"
	KindValidation       = "VALIDATION_ERROR"
	KindInvalidParameter = "INVALID_PARAMETER"
)

var errorCodes = map[string]int{
	KindBusiness:         1001,
	KindSystem:           2000,
	KindDatabase:         2001,
	KindAuth:             3001,
	KindValidation:       4001,
	KindInvalidParameter: 4004,
}

// HTTP status per kind. The envelope is what clients key off; the
// status just keeps proxies and access logs honest.
var errorStatus = map[string]int{
	KindBusiness:         http.StatusConflict,
	KindSystem:           http.StatusInternalServerError,
	KindDatabase:         http.StatusInternalServerError,
	KindAuth:             http.StatusForbidden,
	KindValidation:       http.StatusBadRequest,
	KindInvalidParameter: http.StatusBadRequest,
}

// Response is the uniform envelope returned by every action.
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Type    string      `json:"type,omitempty"`
}

// Success writes a success envelope with the default message.
func Success(ctx *gin.Context, data interface{}) {
	SuccessMsg(ctx, data, "操作成功")
}

// SuccessMsg writes a success envelope with an explicit message.
func SuccessMsg(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, Response{
		Success: true,
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Fail writes an error envelope for the given kind.
func Fail(ctx *gin.Context, kind, message string) {
	code, ok := errorCodes[kind]
	if !ok {
		code = 5000
	}
	status, ok := errorStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, Response{
		Success: false,
		Code:    code,
		Message: message,
		Type:    kind,
	})
}
