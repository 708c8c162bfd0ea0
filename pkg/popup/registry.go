// ABOUTME: Panel registry: one global list plus one list per surface
// ABOUTME: Passes are generated priority-ordered id snapshots, re-resolved on each step

package popup

import (
	"iter"
	"slices"
	"sort"
)

// Registry owns every live panel. A panel is in exactly one list.
type Registry struct {
	global   []*Panel
	surfaces map[SurfaceID][]*Panel
	active   SurfaceID
}

// NewRegistry returns an empty registry with surface 1 active.
func NewRegistry() *Registry {
	return &Registry{
		surfaces: make(map[SurfaceID][]*Panel),
		active:   1,
	}
}

// AddGlobal appends p to the global list, so it paints above older global
// panels with the same z-index.
func (r *Registry) AddGlobal(p *Panel) {
	p.surface = SurfaceGlobal
	r.global = append(r.global, p)
}

// AddToSurface prepends p to the list of surface s.
func (r *Registry) AddToSurface(s SurfaceID, p *Panel) {
	p.surface = s
	r.surfaces[s] = append([]*Panel{p}, r.surfaces[s]...)
}

// Remove unlinks the panel with the given id. Unknown ids are a no-op.
func (r *Registry) Remove(id ID) (*Panel, bool) {
	if i := indexOf(r.global, id); i >= 0 {
		p := r.global[i]
		r.global = slices.Delete(r.global, i, i+1)
		return p, true
	}
	for s, list := range r.surfaces {
		if i := indexOf(list, id); i >= 0 {
			p := list[i]
			list = slices.Delete(list, i, i+1)
			if len(list) == 0 {
				delete(r.surfaces, s)
			} else {
				r.surfaces[s] = list
			}
			return p, true
		}
	}
	return nil, false
}

// Find returns the panel with the given id on any surface, or nil.
func (r *Registry) Find(id ID) *Panel {
	if i := indexOf(r.global, id); i >= 0 {
		return r.global[i]
	}
	for _, list := range r.surfaces {
		if i := indexOf(list, id); i >= 0 {
			return list[i]
		}
	}
	return nil
}

// All yields the global panels followed by the active surface's panels.
// The sequence holds no state and can be ranged over repeatedly.
func (r *Registry) All() iter.Seq[*Panel] {
	return func(yield func(*Panel) bool) {
		for _, p := range r.global {
			if !yield(p) {
				return
			}
		}
		for _, p := range r.surfaces[r.active] {
			if !yield(p) {
				return
			}
		}
	}
}

// Global returns a snapshot of the global list in paint order.
func (r *Registry) Global() []*Panel {
	return slices.Clone(r.global)
}

// OnSurface returns a snapshot of the list of surface s.
func (r *Registry) OnSurface(s SurfaceID) []*Panel {
	return slices.Clone(r.surfaces[s])
}

// Surfaces returns the ids of surfaces that own panels, ascending.
func (r *Registry) Surfaces() []SurfaceID {
	ids := make([]SurfaceID, 0, len(r.surfaces))
	for s := range r.surfaces {
		ids = append(ids, s)
	}
	slices.Sort(ids)
	return ids
}

// SetActive selects the surface whose panels are traversed with the globals.
func (r *Registry) SetActive(s SurfaceID) { r.active = s }

// Active returns the active surface.
func (r *Registry) Active() SurfaceID { return r.active }

// Len counts panels on every surface.
func (r *Registry) Len() int {
	n := len(r.global)
	for _, list := range r.surfaces {
		n += len(list)
	}
	return n
}

func indexOf(list []*Panel, id ID) int {
	return slices.IndexFunc(list, func(p *Panel) bool { return p.id == id })
}

// Pass walks the visible panels once in priority order. Equal z-indexes
// keep list order in both directions.
type Pass struct {
	reg *Registry
	ids []ID
	pos int
}

// NewPass snapshots the visible panels. With lowest set the lowest z-index
// comes first (painting); otherwise the highest comes first (input).
func (r *Registry) NewPass(lowest bool) *Pass {
	var panels []*Panel
	for p := range r.All() {
		if !p.hidden {
			panels = append(panels, p)
		}
	}
	sort.SliceStable(panels, func(i, j int) bool {
		if lowest {
			return panels[i].ZIndex < panels[j].ZIndex
		}
		return panels[i].ZIndex > panels[j].ZIndex
	})
	ids := make([]ID, len(panels))
	for i, p := range panels {
		ids[i] = p.id
	}
	return &Pass{reg: r, ids: ids}
}

// Next returns the next panel that is still alive and visible. Panels closed
// or hidden by a callback earlier in the pass are skipped.
func (ps *Pass) Next() (*Panel, bool) {
	for ps.pos < len(ps.ids) {
		id := ps.ids[ps.pos]
		ps.pos++
		if p := ps.reg.Find(id); p != nil && !p.hidden {
			return p, true
		}
	}
	return nil, false
}
