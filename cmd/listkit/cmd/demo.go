package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-drift/listkit/cmd/listkit/internal/feed"
	"github.com/go-drift/listkit/cmd/listkit/internal/outline"
	"github.com/go-drift/listkit/pkg/logging"
)

func addDemo(topLevel *cobra.Command) {
	var opts feed.Options

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build a sample feed, drive its lifecycle and print the tree.",
		Example: `
listkit demo
listkit demo --sections 3 --rows 4
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			log := logging.FromContext(cmd.Context())
			out := cmd.OutOrStdout()

			f := feed.Build(opts)
			f.Load()
			log.Debug("feed loaded", "sections", len(f.Sections), "rows", len(f.Rows()))

			rows := f.Rows()
			if len(rows) > 0 {
				target := rows[len(rows)/2]
				f.Select(target)
				if p := target.Parent(); p != nil {
					p.ScrollToSubmodel(target, true)
				}
				log.Debug("row selected", "tag", target.Tag())
			}
			f.Reload()
			f.Refresh()

			heading := color.New(color.Bold, color.Underline)
			if _, err := fmt.Fprintln(out, heading.Sprint("Feed")); err != nil {
				return err
			}
			if err := outline.Write(out, f.Root); err != nil {
				return err
			}

			stats := f.Root.Bus().Stats()
			_, err := fmt.Fprintf(out, "\nhost reloads: %d, scrolls: %v, root bus subscribers: %d\n",
				f.Host.Reloads(), f.Host.Scrolls(), stats.EventSubscribers+stats.DataSubscribers)
			return err
		},
	}
	cmd.Flags().IntVar(&opts.Sections, "sections", 2, "number of top-level sections")
	cmd.Flags().IntVar(&opts.Rows, "rows", 3, "rows per section")

	topLevel.AddCommand(cmd)
}
