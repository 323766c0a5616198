package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds defaults normally passed as flags. Flags always win over the
// config file; the file only fills in what the invocation left unset.
type Config struct {
	// Manifest is the dependency manifest path.
	Manifest string `toml:"manifest"`

	// Dir is the directory holding the unit script files.
	Dir string `toml:"dir"`

	// Rename is a suffix rewrite applied to manifest names, "FROM=TO"
	// (e.g. ".sql=.txt").
	Rename string `toml:"rename"`

	// ContinueOnFailure keeps a run going after a unit fails.
	ContinueOnFailure bool `toml:"continue_on_failure"`

	// Listen is the serve command's bind address.
	Listen string `toml:"listen"`
}

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = appName + ".toml"

// loadConfig decodes the TOML config at path. Unknown keys are rejected so
// typos surface instead of silently doing nothing.
func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// resolveConfig loads the explicit config file, or the default one when it
// exists. No config file at all is fine; flags and built-in defaults apply.
func resolveConfig(path string) (Config, error) {
	if path != "" {
		return loadConfig(path)
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return loadConfig(defaultConfigFile)
	}
	return Config{}, nil
}
