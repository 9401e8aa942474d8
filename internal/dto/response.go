package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	res "terminal-terrace/blog/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SuccessResponse 200 + 统一响应包
func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

// EntityResponse 直接返回实体
func EntityResponse(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	if err.Code == res.Fail {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "err", err)
	}
	c.JSON(err.Code.HTTPStatus(), res.ErrorResponse(err.Code, err.Msg))
}

// HandleError 把 service 返回的错误映射为响应；未分类的错误一律 500
func HandleError(c *gin.Context, err error) {
	var be *res.BusinessError
	if errors.As(err, &be) {
		ErrorResponse(c, be)
		return
	}
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.Fail),
		res.WithErrorMessage("internal error"),
		res.WithError(err),
	))
}

// ValidationErrorResponse 处理验证错误，返回友好的JSON字段名
func ValidationErrorResponse(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := getJSONFieldName(firstErr)

		var message string
		switch firstErr.Tag() {
		case "required":
			message = fmt.Sprintf("field '%s' is required", jsonField)
		case "max":
			message = fmt.Sprintf("field '%s' must be at most %s characters", jsonField, firstErr.Param())
		case "min":
			message = fmt.Sprintf("field '%s' must be at least %s characters", jsonField, firstErr.Param())
		default:
			message = fmt.Sprintf("field '%s' failed validation: %s", jsonField, firstErr.Tag())
		}

		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage(message),
		))
		return
	}

	// 如果不是 validation 错误，返回原始错误消息
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("invalid request body: "+err.Error()),
	))
}

// getJSONFieldName 获取字段的JSON标签名称
func getJSONFieldName(fe validator.FieldError) string {
	field := fe.StructNamespace()

	if strings.Contains(field, ".") {
		parts := strings.Split(field, ".")
		if len(parts) > 1 {
			// 去掉结构体名称前缀，保留切片下标，如 tags[0].name
			return toSnakeCase(strings.Join(parts[1:], "."))
		}
	}

	return toSnakeCase(fe.Field())
}

// toSnakeCase 将PascalCase转换为snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	prev := '.'
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' && prev != '.' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
		prev = r
	}
	return strings.ToLower(result.String())
}
