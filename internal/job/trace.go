package job

import (
	"context"

	"Upstat/internal/pkg/logger"

	"github.com/google/uuid"
)

// newJobContext 每次运行一个 job-<stage>-<uuid> 的 trace id
func newJobContext(stage string) context.Context {
	traceID := "job-" + stage + "-" + uuid.NewString()
	return context.WithValue(context.Background(), logger.TraceIDKey, traceID)
}
