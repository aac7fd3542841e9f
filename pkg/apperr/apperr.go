// Package apperr 定义对外可展示的业务错误及其 HTTP 状态码
package apperr

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind 业务错误分类
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindInternal        Kind = "internal"
)

var kindStatus = map[Kind]int{
	KindInvalidArgument: http.StatusBadRequest,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindUnauthorized:    http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindInternal:        http.StatusInternalServerError,
}

// AppError 返回给调用方的业务错误，Message 可直接展示
type AppError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// New 按分类构造错误，状态码由分类决定
func New(kind Kind, message string) *AppError {
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &AppError{Kind: kind, Status: status, Message: message}
}

// Internal 未识别错误统一对外展示的内容
var Internal = New(KindInternal, "Something went wrong")

// As 提取 AppError；其他错误返回 Internal 和 false
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return Internal, false
}
