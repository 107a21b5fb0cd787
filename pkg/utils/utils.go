package utils

import (
	"context"
	"fmt"

	"golang-insider-scanner/pkg/logger"

	"go.uber.org/zap"
)

// GoSafe runs fn in a goroutine and logs a recovered panic with its stack.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic in goroutine",
					logger.StringField("panic", fmt.Sprint(r)),
					zap.Stack("stack"))
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether ctx is still live, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.WarnContext(ctx, "Context done, stopping", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}
