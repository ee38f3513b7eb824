package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"xmltree/dom"
)

// configFile is the optional per-directory formatter configuration.
const configFile = ".xmltree.toml"

// Config holds settings read from a .xmltree.toml file. Command-line
// flags override file values.
type Config struct {
	Format FormatConfig `toml:"format"`
}

// FormatConfig configures the fmt command.
type FormatConfig struct {
	// Indent is the pretty-print indent width in spaces.
	Indent int `toml:"indent"`
	// Compact selects compact output instead of pretty output.
	Compact bool `toml:"compact"`
}

func defaultConfig() Config {
	return Config{Format: FormatConfig{Indent: dom.DefaultIndent}}
}

// loadConfig reads path, or configFile in the working directory when path
// is empty. A missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = configFile
	}
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Format.Indent < 0 {
		return Config{}, fmt.Errorf("load config %s: indent must not be negative", path)
	}
	return cfg, nil
}
