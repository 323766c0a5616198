package depgraph

import "slices"

// Prerequisites returns every unit that must execute before target: its
// direct prerequisites plus everything reachable from them. The target
// itself is not part of the result.
//
// The walk is guarded by a visited set, so it terminates even when the
// declarations are cyclic; cycle detection is [Graph.Sort]'s job. The
// traversal uses an explicit stack, so arbitrarily deep chains are fine.
//
// Fails with a [*UnknownTargetError] when target appears nowhere in m.
func Prerequisites(m Map, target string) (map[string]bool, error) {
	if !m.Has(target) {
		return nil, &UnknownTargetError{Name: target}
	}

	visited := make(map[string]bool)
	stack := slices.Clone(m[target])
	for len(stack) > 0 {
		unit := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[unit] {
			continue
		}
		visited[unit] = true
		stack = append(stack, m[unit]...)
	}
	// A cyclic declaration can lead back to the target; it is never its
	// own prerequisite.
	delete(visited, target)
	return visited, nil
}
