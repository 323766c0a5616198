package depgraph

// Restrict filters order down to the units present in required, preserving
// relative order. Filtering a valid total order by a unit subset keeps every
// precedence constraint among the retained units, so the result is itself a
// valid order of the induced subgraph. An empty required set yields an
// empty order.
func Restrict(order []string, required map[string]bool) []string {
	restricted := make([]string, 0, len(required))
	for _, unit := range order {
		if required[unit] {
			restricted = append(restricted, unit)
		}
	}
	return restricted
}

// PlanFor returns the dependency-safe order for target and its transitive
// prerequisites only: the global order restricted to target plus everything
// [Prerequisites] collects for it.
//
// Fails with a [*UnknownTargetError] before any ordering work when target
// is not part of the unit set, and with a [*CycleError] when no global
// order exists.
func PlanFor(m Map, target string) ([]string, error) {
	required, err := Prerequisites(m, target)
	if err != nil {
		return nil, err
	}
	required[target] = true

	order, err := Build(m).Sort()
	if err != nil {
		return nil, err
	}
	return Restrict(order, required), nil
}
