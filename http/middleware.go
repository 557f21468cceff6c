package http

import (
	"net/http"
	"time"

	"github.com/awantoch/kwanixflow/utils"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// requestLogger logs one line per request and carries the chi request id into
// the context used by utils.*Ctx.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := chimiddleware.GetReqID(r.Context())
		if reqID != "" {
			r = r.WithContext(utils.WithRequestID(r.Context(), reqID))
		}

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		utils.Logger().Info("HTTP Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", reqID),
			zap.String("remote_addr", r.RemoteAddr),
		)
	})
}
