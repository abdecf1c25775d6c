package response

import (
	log "log/slog"
	"net/http"

	"Upstat/internal/api/dto"
	"Upstat/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	Ok                  = 200
	BadRequest          = service.BadRequest
	NotFound            = service.NotFound
	InternalServerError = service.InternalServerError
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误，未登记的错误按 500 返回且不暴露细节
func Error(c *gin.Context, err error) {
	code, target := service.Code(err)
	if target == nil {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, code, "服务器内部错误")
		return
	}
	Fail(c, code, target.Error())
}
