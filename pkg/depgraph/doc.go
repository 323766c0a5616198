// Package depgraph implements the dependency graph engine behind runstack.
//
// The engine turns a flat dependency declaration (unit → direct prerequisites)
// into a directed graph, produces a deterministic dependency-safe execution
// order using Kahn's algorithm, and computes the minimal subset of units
// required to run a single target.
//
// # Data Model
//
// A [Map] declares direct prerequisites per unit. Units referenced only as
// prerequisites (never as keys) are valid and treated as having none of their
// own. [Build] derives a read-only [Graph] with edges pointing from each
// prerequisite to its dependents, so that walking edges forward follows
// execution order.
//
// # Usage
//
//	m := depgraph.Map{
//	    "b.txt": {"a.txt"},
//	    "c.txt": {"a.txt", "b.txt"},
//	}
//	order, err := depgraph.Build(m).Sort()
//	if err != nil {
//	    // errors.Is(err, depgraph.ErrCycle)
//	}
//	// order == ["a.txt", "b.txt", "c.txt"]
//
// For a single target, compose the same primitives via [PlanFor]:
//
//	order, err := depgraph.PlanFor(m, "b.txt")
//	// order == ["a.txt", "b.txt"]
//
// All derived structures are rebuilt per call and never mutated afterwards,
// so they are safe to read concurrently.
package depgraph
