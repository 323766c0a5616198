package depgraph

import "slices"

// Sort returns a dependency-safe total order over all units using Kahn's
// algorithm: every unit appears exactly once, and every direct prerequisite
// appears strictly before the units that declare it.
//
// Ties between simultaneously ready units are broken lexicographically, so
// the result is fully determined by the graph and reproducible across runs.
//
// If the graph contains a cycle no partial order is returned; Sort fails
// with a [*CycleError] naming every unit left unordered (the units inside
// cycles plus everything downstream of them).
func (g *Graph) Sort() ([]string, error) {
	remaining := make(map[string]int, len(g.units))
	for unit, deg := range g.inDegree {
		remaining[unit] = deg
	}

	// g.units is sorted, so the initial ready queue is too.
	var ready []string
	for _, unit := range g.units {
		if remaining[unit] == 0 {
			ready = append(ready, unit)
		}
	}

	order := make([]string, 0, len(g.units))
	for len(ready) > 0 {
		unit := ready[0]
		ready = ready[1:]
		order = append(order, unit)

		for _, dep := range g.dependents[unit] {
			remaining[dep]--
			if remaining[dep] == 0 {
				// Insert in sorted position to keep tie-breaking lexicographic.
				i, _ := slices.BinarySearch(ready, dep)
				ready = slices.Insert(ready, i, dep)
			}
		}
	}

	if len(order) != len(g.units) {
		ordered := make(map[string]struct{}, len(order))
		for _, unit := range order {
			ordered[unit] = struct{}{}
		}
		var stuck []string
		for _, unit := range g.units {
			if _, ok := ordered[unit]; !ok {
				stuck = append(stuck, unit)
			}
		}
		return nil, &CycleError{Units: stuck}
	}
	return order, nil
}
