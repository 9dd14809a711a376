// Package api provides the HTTP API for the application
package api

import (
	"errors"
	"fmt"

	"robots/internal/platform/config"
	"robots/internal/platform/logger"
	phttp "robots/internal/platform/net/http"
	"robots/internal/platform/net/middleware"
	"robots/internal/platform/store"
	"robots/internal/platform/store/pg"

	"robots/internal/modkit"
	"robots/internal/modkit/httpkit"
	"robots/internal/modkit/repokit"
	"robots/internal/modkit/swaggerkit"

	"robots/internal/services/api/docs"
	metamod "robots/internal/services/api/meta/module"
	robotsmod "robots/internal/services/robots/module"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Options are the API options
type Options struct {
	// Config is the api scoped view, e.g. ROBOTS_API_
	Config         config.Conf
	Store          *store.Store
	Logger         logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool

	// Registry receives the metrics collectors, nil means a fresh one
	Registry *prometheus.Registry
}

// Mount mounts the API service onto the root router
// it must run before any route is registered on r since it installs root middleware
func Mount(r phttp.Router, opt Options) error {
	if opt.Store == nil || opt.Store.PG == nil {
		return errors.New("api: postgres store is required")
	}

	deps := modkit.Deps{
		Log: opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	r.Use(httpkit.CommonStack(httpkit.StackFromConf(opt.Config))...)

	if opt.EnableMetrics {
		m, err := middleware.NewMetrics(opt.Registry,
			pg.NewPoolCollector(opt.Store.Pool),
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		if err != nil {
			return fmt.Errorf("api: metrics: %w", err)
		}
		r.Use(m.Middleware)
		r.Handle("/metrics", m.Handler())
	}

	swaggerkit.Mount(r, opt.EnableSwagger, docs.OpenAPI)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	var guard repokit.Guarder = opt.Store
	mods := []modkit.Module{
		metamod.New(guard),
		robotsmod.New(deps, robotsmod.FromConfig(opt.Config)),
	}
	for _, m := range mods {
		opt.Logger.Debug().Str("module", m.Name()).Msg("mounting module")
		m.MountRoutes(r)
	}
	return nil
}
