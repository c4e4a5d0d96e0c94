// Package errors 提供统一的错误定义
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	goopenai "github.com/meguminnnnnnnnn/go-openai"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeNotFound           ErrorCode = "1004"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"
	CodePaymentRequired    ErrorCode = "1009"

	// 配置错误 (2xxx)
	CodeConfigMissing ErrorCode = "2001"

	// 业务错误 (4xxx)
	CodeGenerationFailed ErrorCode = "4001"
	CodeLLMCallFailed    ErrorCode = "4005"
	CodeExportFailed     ErrorCode = "4007"

	// 外部服务错误 (5xxx)
	CodeCacheError       ErrorCode = "5002"
	CodeLLMProviderError ErrorCode = "5005"
)

// 对外暴露的固定文案
const (
	MsgRateLimited      = "Rate limit exceeded. Please try again later."
	MsgCreditsExhausted = "AI credits exhausted. Please add funds to continue."
	MsgStoryRequired    = "Story content is required"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodePaymentRequired:
		return http.StatusPaymentRequired
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误构造
// 注意：返回新实例，调用方可安全地 WithError/WithDetail

// ErrInvalidParam 参数错误
func ErrInvalidParam(message string) *AppError {
	return New(CodeInvalidParam, message)
}

// ErrRateLimited 上游限流
func ErrRateLimited() *AppError {
	return New(CodeTooManyRequests, MsgRateLimited)
}

// ErrCreditsExhausted 上游额度耗尽
func ErrCreditsExhausted() *AppError {
	return New(CodePaymentRequired, MsgCreditsExhausted)
}

// ErrConfigMissing 缺少必需配置
func ErrConfigMissing(name string) *AppError {
	return New(CodeConfigMissing, fmt.Sprintf("%s is not configured", name))
}

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

// UpstreamStatus 提取 OpenAI 兼容网关返回的 HTTP 状态码。
// JSON 错误体解析为 *openai.APIError，其余非 2xx 响应为 go-openai 的 *RequestError。
func UpstreamStatus(err error) (int, bool) {
	var apiErr *einoopenai.APIError
	if stderrors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return apiErr.HTTPStatusCode, true
	}
	var rawAPIErr *goopenai.APIError
	if stderrors.As(err, &rawAPIErr) && rawAPIErr.HTTPStatusCode > 0 {
		return rawAPIErr.HTTPStatusCode, true
	}
	var reqErr *goopenai.RequestError
	if stderrors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return reqErr.HTTPStatusCode, true
	}
	return 0, false
}

// FromLLMError 按上游状态码归类 LLM 调用错误：429 限流，402 额度耗尽，其余为网关错误
func FromLLMError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	if code, ok := UpstreamStatus(err); ok {
		switch code {
		case http.StatusTooManyRequests:
			return ErrRateLimited().WithError(err)
		case http.StatusPaymentRequired:
			return ErrCreditsExhausted().WithError(err)
		default:
			return Wrap(err, CodeLLMProviderError, fmt.Sprintf("AI gateway error: %d", code))
		}
	}
	return Wrap(err, CodeLLMCallFailed, err.Error())
}
