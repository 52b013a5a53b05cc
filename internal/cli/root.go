package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/matrixrain/pkg/buildinfo"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	verbose    bool
	configPath string
	width      int
	height     int
	seed       int64
	logFile    string
}

func (f *rootFlags) register(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/matrixrain/config.toml)")
	pf.IntVar(&f.width, "width", 0, "viewport width in columns (default: terminal width)")
	pf.IntVar(&f.height, "height", 0, "viewport height in rows (default: terminal height)")
	pf.Int64Var(&f.seed, "seed", 0, "random seed for column placement (0 picks one)")
	pf.StringVar(&f.logFile, "log-file", "", "write logs here while the rain is on screen")
}

// persistentPreRun sets the log level, loads the config file and applies
// flag overrides. Flags win over file values only when given explicitly.
func (c *CLI) persistentPreRun(cmd *cobra.Command, _ []string) error {
	level := LogInfo
	if c.flags.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("matrixrain", "build", buildinfo.String())

	cfg, err := loadConfig(c.flags.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = c.flags.width
	}
	if flags.Changed("height") {
		cfg.Height = c.flags.height
	}
	if flags.Changed("seed") {
		cfg.Seed = c.flags.seed
	}
	if flags.Changed("log-file") {
		cfg.LogFile = c.flags.logFile
	}
	c.config = cfg

	c.Logger.Debug("configuration loaded",
		"width", cfg.Width,
		"height", cfg.Height,
		"interval", cfg.Interval,
		"seed", cfg.Seed)
	return nil
}
