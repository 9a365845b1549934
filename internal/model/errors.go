package model

import (
	"errors"
	"fmt"
)

var (
	ErrGoogleDisabled   = errors.New("google integration disabled")
	ErrUserNotFound     = errors.New("chat user not found")
	ErrMissingRecordURL = errors.New("task created without url")
	ErrInvalidParams    = errors.New("invalid command params")
)

// Rejection 校验拒绝：原样回显给调用者，不记为错误日志
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

// Reject 构造校验拒绝
func Reject(format string, args ...any) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// ProviderError 外部服务返回的非 2xx 响应，保留原始 body 便于排查
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: http status %d, body: %s", e.Provider, e.StatusCode, e.Body)
}
