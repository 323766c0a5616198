package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runstack/runstack/pkg/depgraph"
	"github.com/runstack/runstack/pkg/manifest"
)

// defaultManifest is the manifest path when neither flag nor config set one.
const defaultManifest = "dependencies.json"

// inputOpts holds the manifest flags shared by every planning command.
type inputOpts struct {
	manifest string // manifest path
	format   string // explicit encoding: json or toml
	rename   string // suffix rewrite, "FROM=TO"
}

// register adds the shared manifest flags to cmd.
func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.manifest, "manifest", "m", "", "dependency manifest file (default: dependencies.json)")
	cmd.Flags().StringVar(&o.format, "manifest-format", "", "manifest encoding: json or toml (default: by extension)")
	cmd.Flags().StringVar(&o.rename, "rename", "", "suffix rewrite for unit names, FROM=TO (e.g. .sql=.txt)")
}

// loadMap loads the dependency map using flags, config defaults, and
// built-in defaults, in that order.
func (c *CLI) loadMap(o inputOpts) (depgraph.Map, error) {
	opts := manifest.Options{}

	switch o.format {
	case "":
	case "json":
		opts.Format = manifest.FormatJSON
	case "toml":
		opts.Format = manifest.FormatTOML
	default:
		return nil, fmt.Errorf("invalid manifest format: %q (must be json or toml)", o.format)
	}

	rename := value(o.rename, c.cfg.Rename, "")
	if rename != "" {
		from, to, ok := strings.Cut(rename, "=")
		if !ok || from == "" {
			return nil, fmt.Errorf("invalid rename %q (expected FROM=TO, e.g. .sql=.txt)", rename)
		}
		opts.Rewrite = manifest.Rewrite{From: from, To: to}
	}

	path := value(o.manifest, c.cfg.Manifest, defaultManifest)
	c.Logger.Debugf("Loading manifest %s", path)

	m, err := manifest.Load(path, opts)
	if err != nil {
		return nil, err
	}
	c.Logger.Debugf("Loaded %d declared units", len(m))
	return m, nil
}

// planFrom computes the execution order for the optional target argument:
// the global order with no target, the restricted one otherwise.
func planFrom(m depgraph.Map, args []string) ([]string, error) {
	if len(args) == 0 {
		return depgraph.Build(m).Sort()
	}
	return depgraph.PlanFor(m, args[0])
}
