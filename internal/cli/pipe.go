package cli

import (
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
	"github.com/matzehuels/matrixrain/pkg/pipeline"
	"github.com/matzehuels/matrixrain/pkg/terminal"
)

// pipeCommand creates the pipe command, which rains standard input.
func (c *CLI) pipeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pipe",
		Short: "Rain lines read from standard input",
		Example: `  make 2>&1 | matrixrain pipe
  tail -f /var/log/syslog | matrixrain pipe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if terminal.IsTerminal(c.Stdin) {
				err := errs.New(errs.ErrCodeInvalidInput, "stdin is a terminal; pipe some output into matrixrain")
				return c.finish(ctx, err, false)
			}
			return c.finish(ctx, c.rainSource(ctx, pipeline.FromReader(c.Stdin)), false)
		},
	}
}
