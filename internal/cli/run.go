package cli

import (
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
	"github.com/matzehuels/matrixrain/pkg/pipeline"
	"github.com/matzehuels/matrixrain/pkg/source"
)

// runCommand creates the run command, which rains the output of a script.
func (c *CLI) runCommand() *cobra.Command {
	var (
		usePTY bool
		shell  string
		pause  bool
	)

	cmd := &cobra.Command{
		Use:   "run <script> [args...]",
		Short: "Run a script and rain its output",
		Long: `Run a script and rain every line it writes to stdout and stderr.

The script runs with its own directory as the working directory. Executable
files are started directly; anything else is handed to the shell. The
animation keeps going until the last line has fallen off the screen, and a
failing script's exit code becomes matrixrain's exit code.`,
		Example: `  matrixrain run ./deploy.sh
  matrixrain run --pty make.sh -j8
  matrixrain run --shell /bin/bash build.sh`,
		// A missing script is reported by RunE, where --pause applies.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config
			flags := cmd.Flags()
			if flags.Changed("pty") {
				cfg.PTY = usePTY
			}
			if flags.Changed("shell") {
				cfg.Shell = shell
			}
			if flags.Changed("pause") {
				cfg.PauseOnError = pause
			}

			ctx := cmd.Context()
			if len(args) == 0 {
				err := errs.New(errs.ErrCodeInvalidInput, "no script path given; usage: %s", cmd.UseLine())
				return c.finish(ctx, err, cfg.PauseOnError)
			}

			script := source.Script{
				Path:  args[0],
				Args:  args[1:],
				Shell: cfg.Shell,
				PTY:   cfg.PTY,
			}

			var err error
			// Check the path before the screen is cleared so the message
			// stays readable.
			if err = errs.ValidateScriptPath(script.Path); err == nil {
				err = c.rainSource(ctx, pipeline.FromScript(script))
			}
			return c.finish(ctx, err, cfg.PauseOnError)
		},
	}

	// Everything after the script path belongs to the script.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&usePTY, "pty", false, "run the script on a pseudo-terminal")
	cmd.Flags().StringVar(&shell, "shell", "", "shell for scripts without the executable bit (default /bin/sh)")
	cmd.Flags().BoolVar(&pause, "pause", false, "wait for a key press after an error")

	return cmd
}
