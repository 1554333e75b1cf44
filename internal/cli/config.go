package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/duviz/duviz/pkg/errors"
)

// Config holds user preferences loaded from the config file. Zero
// values mean "not set"; command-line flags always win over the file,
// and the file wins over built-in defaults.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Render RenderConfig `toml:"render"`
	View   ViewConfig   `toml:"view"`
}

// ScanConfig holds defaults for the walk.
type ScanConfig struct {
	MaxFiles       int64 `toml:"max_files"`
	Depth          int   `toml:"depth"`
	FollowSymlinks bool  `toml:"follow_symlinks"`
}

// RenderConfig holds defaults for artifact generation.
type RenderConfig struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	Format       string  `toml:"format"`
	Labels       bool    `toml:"labels"`
	DepthShading bool    `toml:"depth_shading"`
	Padding      float64 `toml:"padding"`
	MaxDepth     int     `toml:"max_depth"`
}

// ViewConfig holds defaults for the interactive viewer.
type ViewConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// LoadConfig reads the TOML config at path. A missing file yields the
// zero Config; a malformed file is an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading config %q", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config %q", path)
	}
	return cfg, nil
}
