package router

import (
	"sort"

	"go-gin-portfolio/internal/transport/http/ez"
)

// Module mounts its endpoints on the access tiers.
type Module interface{ Mount(r ez.Routes) }

// Modules may implement prioritizer to control mount order (lower first, default 100).
type prioritizer interface{ Priority() int }

type Registry struct {
	mods []Module
}

func (r *Registry) Register(mods ...Module) {
	r.mods = append(r.mods, mods...)
}

func (r *Registry) MountAll(routes ez.Routes) {
	mods := append([]Module(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(routes)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
