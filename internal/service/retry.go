package service

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
)

// LoadOptions 启动阶段只读加载（目录、成员）的重试参数；建任务从不重试
type LoadOptions struct {
	Attempts     int
	InitialDelay time.Duration
}

func (o LoadOptions) normalized() LoadOptions {
	if o.Attempts < 1 {
		o.Attempts = 1
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 500 * time.Millisecond
	}
	return o
}

// withRetry 对幂等读操作做有界指数退避重试
func withRetry[T any](ctx context.Context, opts LoadOptions, fn func(ctx context.Context) (T, error)) (T, error) {
	opts = opts.normalized()
	r := retry.New[T](retry.Config{
		MaxAttempts:   opts.Attempts,
		InitialDelay:  opts.InitialDelay,
		BackoffPolicy: retry.BackoffExponential,
	})
	return r.Do(ctx, fn)
}
