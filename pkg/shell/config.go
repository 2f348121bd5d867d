package shell

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rcConfig is the schema of the rc file, read at the start of an interactive
// session.
type rcConfig struct {
	// Prompt overrides the default "$wd> " prompt.
	Prompt string `yaml:"prompt"`
	// HistoryDB overrides the default path of the command history database.
	HistoryDB string `yaml:"history-db"`
	// LenientVars makes undefined variables expand to the empty string
	// instead of raising errors.
	LenientVars bool `yaml:"lenient-vars"`
	// Startup lists commands to run before the first prompt.
	Startup []string `yaml:"startup"`
}

// readRC reads and decodes the rc file. A missing file is not an error; it
// yields the zero configuration.
func readRC(path string) (*rcConfig, error) {
	var cfg rcConfig
	if path == "" {
		return &cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return &cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return &cfg, fmt.Errorf("cannot parse %s: %v", path, err)
	}
	return &cfg, nil
}
