package resp

import (
	"net/http"

	"github.com/xy-planning-network/signpost/logger"
)

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, data any) *logger.LogContext {
	if r == nil && err == nil && data == nil {
		return nil
	}

	ctx := &logger.LogContext{Error: err, Request: r}
	switch t := data.(type) {
	case nil:
	case map[string]any:
		ctx.Data = t
	default:
		ctx.Data = map[string]any{"data": t}
	}

	return ctx
}
