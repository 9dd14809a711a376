package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"robots/internal/platform/config"
	"robots/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	SlowRequest time.Duration
}

// StackFromConf reads StackOptions from an api scoped view (CORS_ORIGINS, ACCESS_SLOW_MS)
func StackFromConf(c config.Conf) StackOptions {
	return StackOptions{
		CORSOrigins: c.MayCSV("CORS_ORIGINS", []string{"*"}),
		SlowRequest: time.Duration(c.MayInt("ACCESS_SLOW_MS", 500)) * time.Millisecond,
	}
}

// CommonStack returns the baseline middleware slice, outermost first
// mount it on the root router so /health, preflights and unmatched routes pass through it too
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation first so every later log line carries request_id
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),

		// safety
		middleware.RecoverJSON,

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
	}
}
