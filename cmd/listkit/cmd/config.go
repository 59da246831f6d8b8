package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/listkit/pkg/config"
	"github.com/go-drift/listkit/pkg/layout"
)

// resolvedView is the printed form of config.Resolved.
type resolvedView struct {
	Root       string     `yaml:"root"`
	Module     string     `yaml:"module,omitempty"`
	Version    string     `yaml:"version"`
	Assertions string     `yaml:"assertions"`
	Log        logView    `yaml:"log"`
	Layout     layoutView `yaml:"layout"`
}

type logView struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

type layoutView struct {
	Default    string   `yaml:"default"`
	Registered []string `yaml:"registered"`
}

func addConfig(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "config [dir]",
		Short: "Print the resolved configuration.",
		Example: `
listkit config
listkit config ./app
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			resolved := opts.resolved
			if len(args) == 1 {
				r, err := config.Resolve(args[0])
				if err != nil {
					return err
				}
				resolved = r
			}

			view := resolvedView{
				Root:       resolved.Root,
				Module:     resolved.ModulePath,
				Version:    resolved.Version,
				Assertions: resolved.Policy.String(),
				Log: logView{
					Level:   resolved.LogLevel,
					Format:  resolved.LogFormat,
					Verbose: resolved.Verbose,
				},
				Layout: layoutView{
					Default:    resolved.DefaultLayout,
					Registered: layout.Registered(),
				},
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(view); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	topLevel.AddCommand(cmd)
}
