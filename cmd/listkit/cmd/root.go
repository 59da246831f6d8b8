// Package cmd implements the listkit CLI commands.
//
// The root command resolves listkit.yaml from the --config directory and
// installs it before any subcommand runs.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/listkit/pkg/config"
	"github.com/go-drift/listkit/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

type rootOptions struct {
	configDir string
	resolved  *config.Resolved
}

// New returns the root command.
func New() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "listkit",
		Short:   "Inspect and exercise listkit collection models.",
		Version: Version + " (built " + BuildTime + ")",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.Resolve(opts.configDir)
			if err != nil {
				return err
			}
			logger, err := config.Apply(resolved, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.resolved = resolved
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configDir, "config", ".", "directory containing "+config.FileName)

	addDemo(cmd)
	addStress(cmd)
	addConfig(cmd, opts)
	return cmd
}
