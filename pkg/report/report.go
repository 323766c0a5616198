// Package report classifies units by direct prerequisite fan-in for display
// and export. The classification is a pure projection over the declared
// dependency map; it has no effect on planning, which orders units by global
// reachability instead.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runstack/runstack/pkg/depgraph"
)

// Bucket identifies a direct-prerequisite fan-in class.
type Bucket int

// The three fan-in classes. Every unit falls in exactly one.
const (
	// BucketIndependent holds units with no direct prerequisites.
	BucketIndependent Bucket = iota + 1
	// BucketSingle holds units with exactly one direct prerequisite.
	BucketSingle
	// BucketMultiple holds units with more than one direct prerequisite.
	BucketMultiple
)

// String returns a short human-readable bucket description.
func (b Bucket) String() string {
	switch b {
	case BucketIndependent:
		return "no prerequisites"
	case BucketSingle:
		return "exactly 1 prerequisite"
	case BucketMultiple:
		return "more than 1 prerequisite"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

// For returns the bucket for a single unit. Units absent from the map
// (referenced only as prerequisites) have no direct prerequisites and are
// independent.
func For(unit string, deps depgraph.Map) Bucket {
	switch n := len(deps[unit]); {
	case n == 0:
		return BucketIndependent
	case n == 1:
		return BucketSingle
	default:
		return BucketMultiple
	}
}

// Groups holds units partitioned by fan-in class, each bucket in the order
// the input listed them.
type Groups struct {
	Independent []string // no direct prerequisites
	Single      []string // exactly one
	Multiple    []string // more than one
}

// ByFanIn partitions units into the three buckets using their direct
// prerequisite counts from deps. The input order is preserved within each
// bucket, so passing an execution order yields execution-ordered buckets.
func ByFanIn(units []string, deps depgraph.Map) Groups {
	var g Groups
	for _, unit := range units {
		switch For(unit, deps) {
		case BucketIndependent:
			g.Independent = append(g.Independent, unit)
		case BucketSingle:
			g.Single = append(g.Single, unit)
		case BucketMultiple:
			g.Multiple = append(g.Multiple, unit)
		}
	}
	return g
}

// bucketViews pairs each bucket with its members for iteration.
func (g Groups) bucketViews() []struct {
	Bucket Bucket
	Units  []string
} {
	return []struct {
		Bucket Bucket
		Units  []string
	}{
		{BucketIndependent, g.Independent},
		{BucketSingle, g.Single},
		{BucketMultiple, g.Multiple},
	}
}

// jsonGroup mirrors the export document schema.
type jsonGroup struct {
	GroupID     int        `json:"group_id"`
	Description string     `json:"description"`
	Units       []jsonUnit `json:"units"`
}

type jsonUnit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// WriteJSON writes the grouped view as an indented JSON document:
//
//	{
//	  "groups": [
//	    {"group_id": 1, "description": "units with no prerequisites",
//	     "units": [{"id": 1, "name": "a.txt"}]},
//	    ...
//	  ]
//	}
//
// Unit ids are 1-based positions within their group.
func (g Groups) WriteJSON(w io.Writer) error {
	doc := struct {
		Groups []jsonGroup `json:"groups"`
	}{}
	for _, view := range g.bucketViews() {
		jg := jsonGroup{
			GroupID:     int(view.Bucket),
			Description: "units with " + view.Bucket.String(),
			Units:       []jsonUnit{},
		}
		for i, name := range view.Units {
			jg.Units = append(jg.Units, jsonUnit{ID: i + 1, Name: name})
		}
		doc.Groups = append(doc.Groups, jg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

var (
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleUnit    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleEmpty   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render returns a styled terminal view of the grouped units.
func (g Groups) Render() string {
	var b strings.Builder
	for _, view := range g.bucketViews() {
		fmt.Fprintf(&b, "%s\n", styleHeading.Render(fmt.Sprintf("Group %d (%s)", int(view.Bucket), view.Bucket)))
		if len(view.Units) == 0 {
			fmt.Fprintf(&b, "  %s\n", styleEmpty.Render("none"))
			continue
		}
		for _, unit := range view.Units {
			fmt.Fprintf(&b, "  %s\n", styleUnit.Render(unit))
		}
	}
	return b.String()
}
