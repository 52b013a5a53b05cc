package cli

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
)

// Config is the optional TOML configuration file.
//
//	width = 120
//	interval = "50ms"
//	shell = "/bin/bash"
//	pause_on_error = true
type Config struct {
	Width        int           `toml:"width"`
	Height       int           `toml:"height"`
	Interval     time.Duration `toml:"interval"`
	Shell        string        `toml:"shell"`
	PTY          bool          `toml:"pty"`
	PauseOnError bool          `toml:"pause_on_error"`
	LogFile      string        `toml:"log_file"`
	Seed         int64         `toml:"seed"`
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, errs.New(errs.ErrCodeFileNotFound, "config file not found: %s", path)
			}
			return cfg, nil
		}
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errs.New(errs.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Interval < 0 {
		return cfg, errs.New(errs.ErrCodeInvalidConfig, "interval must be positive, got %s", cfg.Interval)
	}
	return cfg, nil
}
