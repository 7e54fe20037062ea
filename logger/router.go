package logger

import (
	"sync"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/core"
	"github.com/SavinRazvan/hydra-logger/handler"
)

// route binds one built destination handler to its effective level,
// resolved destination > layer > config default.
type route struct {
	h     handler.Handler
	level core.Level
}

// router maps layer names to their routes. Resolution policy: an exact
// match wins; an unknown name aliases to the layer literally named
// DEFAULT when one is configured; otherwise the name resolves to no
// routes and its records are accepted and dropped. A configured layer
// whose destinations all failed to build keeps its own empty route
// set. It never falls through to DEFAULT, so a broken layer stays
// distinct from a missing one.
type router struct {
	cfg     *config.Config
	factory *handler.Factory
	errh    func(error)

	once   sync.Once
	routes map[string][]route
}

// newRouter builds the route table, eagerly unless lazy is set. Lazy
// construction happens on the first resolve and runs exactly once even
// under concurrent first callers.
func newRouter(cfg *config.Config, f *handler.Factory, lazy bool, errh func(error)) *router {
	r := &router{cfg: cfg, factory: f, errh: errh}
	if !lazy {
		r.once.Do(r.build)
	}
	return r
}

// build constructs every destination handler. A creation failure is a
// warning: the destination is dropped and its siblings keep working.
func (r *router) build() {
	r.routes = make(map[string][]route, len(r.cfg.Layers))
	for name, layer := range r.cfg.Layers {
		routes := make([]route, 0, len(layer.Destinations))
		for _, d := range layer.Destinations {
			h, err := r.factory.Build(d)
			if err != nil {
				r.errh(err)
				continue
			}
			routes = append(routes, route{h: h, level: r.cfg.EffectiveLevel(layer, d)})
		}
		r.routes[name] = routes
	}
}

// resolve returns the routes records addressed to name dispatch
// through, applying the DEFAULT alias for unknown names.
func (r *router) resolve(name string) []route {
	r.once.Do(r.build)
	if routes, ok := r.routes[name]; ok {
		return routes
	}
	return r.routes[config.DefaultLayerName]
}

// threshold returns the lowest effective level among a layer's routes.
// The second return is false when the layer routes nowhere, which the
// bridges use to answer enabled checks before building a record.
func (r *router) threshold(name string) (core.Level, bool) {
	routes := r.resolve(name)
	if len(routes) == 0 {
		return 0, false
	}
	min := routes[0].level
	for _, rt := range routes[1:] {
		if rt.level < min {
			min = rt.level
		}
	}
	return min, true
}
