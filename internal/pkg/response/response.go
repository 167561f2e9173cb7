package response

import (
	"Vinelytics/internal/api/dto"
	"Vinelytics/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装，HTTP 状态码与业务码保持一致
func Fail(c *gin.Context, code int, errCode string) {
	c.JSON(code, dto.Response{
		Code:    code,
		Message: errCode,
		Error:   errCode,
		Data:    nil,
	})
}

// Error 处理错误，按 service.ErrorMap 映射状态码
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, service.BadRequest, "InvalidRequest")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	var syntaxError *json.SyntaxError
	if errors.As(err, &unmarshalTypeError) || errors.As(err, &syntaxError) {
		Fail(c, service.BadRequest, "InvalidRequest")
		return
	}

	code, ok := service.ErrorMap[err]
	if !ok {
		code = service.InternalServerError
		log.ErrorContext(c.Request.Context(), "unexpected error", "err", err)
		Fail(c, code, "InternalError")
		return
	}
	Fail(c, code, err.Error())
}
