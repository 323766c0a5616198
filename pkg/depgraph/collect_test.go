package depgraph

import (
	"errors"
	"testing"
)

func TestPrerequisites_Transitive(t *testing.T) {
	m := Map{
		"a.txt": {},
		"b.txt": {"a.txt"},
		"c.txt": {"b.txt"},
		"d.txt": {},
	}

	got, err := Prerequisites(m, "c.txt")
	if err != nil {
		t.Fatalf("Prerequisites() error = %v", err)
	}

	want := map[string]bool{"a.txt": true, "b.txt": true}
	if len(got) != len(want) {
		t.Fatalf("Prerequisites() = %v, want %v", got, want)
	}
	for unit := range want {
		if !got[unit] {
			t.Errorf("Prerequisites() missing %s", unit)
		}
	}
	if got["c.txt"] {
		t.Error("Prerequisites() contains the target itself")
	}
	if got["d.txt"] {
		t.Error("Prerequisites() contains unrelated unit d.txt")
	}
}

func TestPrerequisites_LeafTarget(t *testing.T) {
	m := Map{"b.txt": {"a.txt"}}

	// "a.txt" is only referenced as a prerequisite, never declared.
	got, err := Prerequisites(m, "a.txt")
	if err != nil {
		t.Fatalf("Prerequisites() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Prerequisites() = %v, want empty", got)
	}
}

func TestPrerequisites_UnknownTarget(t *testing.T) {
	m := Map{"b.txt": {"a.txt"}}

	_, err := Prerequisites(m, "z.txt")
	if !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("Prerequisites() error = %v, want ErrUnknownTarget", err)
	}

	var uerr *UnknownTargetError
	if !errors.As(err, &uerr) {
		t.Fatalf("Prerequisites() error = %T, want *UnknownTargetError", err)
	}
	if uerr.Name != "z.txt" {
		t.Errorf("UnknownTargetError.Name = %q, want %q", uerr.Name, "z.txt")
	}
}

func TestPrerequisites_SharedSubtreeVisitedOnce(t *testing.T) {
	m := Map{
		"b.txt": {"a.txt"},
		"c.txt": {"a.txt"},
		"d.txt": {"b.txt", "c.txt"},
	}

	got, err := Prerequisites(m, "d.txt")
	if err != nil {
		t.Fatalf("Prerequisites() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Prerequisites() = %v, want a.txt, b.txt, c.txt", got)
	}
}

func TestPrerequisites_TerminatesOnCycle(t *testing.T) {
	// Collection must terminate via the visited guard even though Sort
	// would reject this map, and the target stays out of its own set.
	m := Map{
		"a.txt": {"b.txt"},
		"b.txt": {"a.txt"},
	}

	got, err := Prerequisites(m, "a.txt")
	if err != nil {
		t.Fatalf("Prerequisites() error = %v", err)
	}
	if got["a.txt"] {
		t.Error("Prerequisites() contains the target itself")
	}
	if !got["b.txt"] {
		t.Error("Prerequisites() missing b.txt")
	}
}
