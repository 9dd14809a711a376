package module

import (
	"net/http"

	modkit "robots/internal/modkit"
	"robots/internal/modkit/httpkit"
	"robots/internal/platform/config"
)

// Options controls robots transport behavior
type Options struct {
	BodyMaxBytes int64 // cap on JSON request bodies
}

// FromConfig reads robots values from an api scoped view (BODY_MAX_BYTES)
func FromConfig(cfg config.Conf) Options {
	return Options{
		BodyMaxBytes: cfg.MayInt64("BODY_MAX_BYTES", 1<<20),
	}
}

// Option is a configuration option for the robots module
type Option = modkit.Option

// WithPrefix sets the route prefix for the module
func WithPrefix(prefix string) Option { return modkit.WithPrefix(prefix) }

// WithMiddlewares sets the middlewares for the module
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return modkit.WithMiddlewares(mw...)
}

// WithRegister sets the register function for the module
func WithRegister(fn func(httpkit.Router)) Option { return modkit.WithRegister(fn) }

// WithSubrouter sets the subrouter function for the module
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option { return modkit.WithSubrouter(fn) }
