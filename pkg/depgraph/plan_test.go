package depgraph

import (
	"errors"
	"slices"
	"testing"
)

func TestRestrict_PreservesRelativeOrder(t *testing.T) {
	order := []string{"a.txt", "b.txt", "c.txt", "d.txt"}
	required := map[string]bool{"d.txt": true, "b.txt": true}

	got := Restrict(order, required)

	want := []string{"b.txt", "d.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("Restrict() = %v, want %v", got, want)
	}
}

func TestRestrict_Idempotent(t *testing.T) {
	order := []string{"a.txt", "b.txt", "c.txt", "d.txt"}
	required := map[string]bool{"a.txt": true, "c.txt": true}

	once := Restrict(order, required)
	twice := Restrict(once, required)

	if !slices.Equal(once, twice) {
		t.Errorf("Restrict() twice = %v, want %v", twice, once)
	}
}

func TestRestrict_EmptyRequired(t *testing.T) {
	got := Restrict([]string{"a.txt", "b.txt"}, nil)
	if len(got) != 0 {
		t.Errorf("Restrict() = %v, want empty", got)
	}
}

func TestPlanFor_TargetSubset(t *testing.T) {
	m := Map{
		"a.txt": {},
		"b.txt": {"a.txt"},
		"c.txt": {"b.txt"},
		"d.txt": {},
	}

	order, err := PlanFor(m, "c.txt")
	if err != nil {
		t.Fatalf("PlanFor() error = %v", err)
	}

	want := []string{"a.txt", "b.txt", "c.txt"}
	if !slices.Equal(order, want) {
		t.Errorf("PlanFor() = %v, want %v", order, want)
	}
	if slices.Contains(order, "d.txt") {
		t.Error("PlanFor() includes d.txt, which c.txt does not need")
	}
}

func TestPlanFor_IndependentTarget(t *testing.T) {
	m := Map{
		"a.txt": {},
		"b.txt": {"a.txt"},
	}

	order, err := PlanFor(m, "a.txt")
	if err != nil {
		t.Fatalf("PlanFor() error = %v", err)
	}
	if !slices.Equal(order, []string{"a.txt"}) {
		t.Errorf("PlanFor() = %v, want [a.txt]", order)
	}
}

func TestPlanFor_UnknownTarget(t *testing.T) {
	m := Map{"b.txt": {"a.txt"}}

	_, err := PlanFor(m, "z.txt")
	if !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("PlanFor() error = %v, want ErrUnknownTarget", err)
	}
}

func TestPlanFor_CyclicMap(t *testing.T) {
	m := Map{
		"a.txt": {"b.txt"},
		"b.txt": {"a.txt"},
		"c.txt": {"a.txt"},
	}

	_, err := PlanFor(m, "c.txt")
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("PlanFor() error = %v, want ErrCycle", err)
	}
}
