// Package module wires robots into the API using modkit
package module

import (
	"net/http"

	modkit "robots/internal/modkit"
	"robots/internal/modkit/httpkit"
	"robots/internal/modkit/repokit"
	str "robots/internal/platform/strings"
	robotshttp "robots/internal/services/robots/http"
	robotsrepo "robots/internal/services/robots/repo"
	robotssvc "robots/internal/services/robots/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc robotssvc.Service
}

// New constructs a robots module backed by postgres
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	return NewWithRepo(deps, o, robotsrepo.NewPG(), opts...)
}

// NewWithRepo constructs a robots module over any repo binder
func NewWithRepo(deps modkit.Deps, o Options, binder repokit.Binder[robotsrepo.Repo], opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("robots"), modkit.WithPrefix("/robots")}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       robotssvc.New(deps.PG, binder),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		robotshttp.Register(r, m.svc, robotshttp.Options{BodyMaxBytes: o.BodyMaxBytes})
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, func(rr httpkit.Router) {
		m.register(m.subrouter(rr))
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Service exposes the robots service for in-process callers
func (m *Module) Service() robotssvc.Service { return m.svc }
