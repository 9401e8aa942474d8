// Package response 统一响应包 {message, code, data} 与业务错误
package response

type ResponseCode int

// Success 成功时的业务代码，错误码见 errors.go
const Success ResponseCode = 100

// Response 确认类和错误类响应的外层结构；成功返回的实体不套这一层
type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
}

func SuccessResponse(data any) Response {
	return Response{Message: "success", Code: Success, Data: data}
}

// ErrorResponse data 恒为 null
func ErrorResponse(code ResponseCode, msg string) Response {
	return Response{Message: msg, Code: code}
}
