package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Defaults are applied to new tasks when the matching flag is not given.
// Zero values mean "no default".
type Defaults struct {
	ProjectID    string   `toml:"project_id"`
	SectionID    string   `toml:"section_id"`
	Labels       []string `toml:"labels"`
	Priority     uint8    `toml:"priority"`
	DueLang      string   `toml:"due_lang"`
	DurationUnit string   `toml:"duration_unit"`
}

type fileLayout struct {
	Defaults Defaults `toml:"defaults"`
}

// LoadDefaults reads the [defaults] table of config.toml. A missing file
// yields empty defaults.
func (c *Config) LoadDefaults() (Defaults, error) {
	data, err := os.ReadFile(c.DefaultsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults{}, nil
		}
		return Defaults{}, fmt.Errorf("failed to read %s: %w", DefaultsFile, err)
	}

	var f fileLayout
	if err := toml.Unmarshal(data, &f); err != nil {
		return Defaults{}, fmt.Errorf("invalid %s: %w", DefaultsFile, err)
	}
	return f.Defaults, nil
}
