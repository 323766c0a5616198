package depgraph

import (
	"maps"
	"slices"
)

// Map holds the dependency declarations: each unit maps to the units that
// must execute before it (its direct prerequisites, in declared order).
// A unit may appear only inside a prerequisite list; it then has no
// prerequisites of its own.
type Map map[string][]string

// Units returns every unit mentioned anywhere in the map - keys plus all
// referenced prerequisites - sorted by identifier.
func (m Map) Units() []string {
	set := make(map[string]struct{}, len(m))
	for unit, deps := range m {
		set[unit] = struct{}{}
		for _, dep := range deps {
			set[dep] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// Has reports whether unit appears in the map, either as a key or as a
// prerequisite of another unit.
func (m Map) Has(unit string) bool {
	if _, ok := m[unit]; ok {
		return true
	}
	for _, deps := range m {
		if slices.Contains(deps, unit) {
			return true
		}
	}
	return false
}

// Graph is a read-only view of a [Map] with edges directed from each
// prerequisite to its dependents. It is built once by [Build] and never
// mutated afterwards, so concurrent reads are safe.
type Graph struct {
	units      []string            // all units, sorted by identifier
	inDegree   map[string]int      // unit -> number of direct prerequisites
	dependents map[string][]string // unit -> units that list it as a prerequisite
}

// Build derives a Graph from the declared prerequisites. Every unit
// mentioned anywhere in m becomes a node; unknown prerequisite references
// become zero-prerequisite units. Build is a pure transform and cannot fail.
func Build(m Map) *Graph {
	units := m.Units()

	g := &Graph{
		units:      units,
		inDegree:   make(map[string]int, len(units)),
		dependents: make(map[string][]string, len(units)),
	}
	for _, unit := range units {
		g.inDegree[unit] = 0
	}
	for unit, deps := range m {
		for _, dep := range deps {
			g.dependents[dep] = append(g.dependents[dep], unit)
			g.inDegree[unit]++
		}
	}
	return g
}

// Units returns all units sorted by identifier. The returned slice is shared
// with the graph and must not be modified.
func (g *Graph) Units() []string { return g.units }

// UnitCount returns the number of units in the graph.
func (g *Graph) UnitCount() int { return len(g.units) }

// Has reports whether unit is part of the graph.
func (g *Graph) Has(unit string) bool {
	_, ok := g.inDegree[unit]
	return ok
}

// InDegree returns the number of direct prerequisites of unit, or 0 if the
// unit doesn't exist.
func (g *Graph) InDegree(unit string) int { return g.inDegree[unit] }

// Dependents returns the units that list unit as a direct prerequisite.
// Returns nil if the unit has no dependents or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (g *Graph) Dependents(unit string) []string { return g.dependents[unit] }
