package ecs

import (
	"slices"

	"github.com/milk9111/fpsplayground/ecs/component"
)

// Query returns the live entities holding every kind, ordered by slot id.
// The smallest store drives the scan.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	slices.SortFunc(sets, func(a, b *SparseSet) int { return a.Len() - b.Len() })

	ids := sets[0].ids()
	slices.Sort(ids)
	out := make([]Entity, 0, len(ids))
next:
	for _, id := range ids {
		for _, s := range sets[1:] {
			if !s.Has(id) {
				continue next
			}
		}
		if e, ok := w.entities.entity(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the lowest live entity holding kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	res := w.Query(kind)
	if len(res) == 0 {
		return 0, false
	}
	return res[0], true
}
