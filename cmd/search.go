package cmd

import (
	"github.com/gopak/scoopx/internal/manager"
	"github.com/spf13/cobra"
)

func init() {
	var opts manager.SearchOptions
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the Scoop catalog by name, description and more",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, _, err := newConsole()
			if err != nil {
				return err
			}
			opts.Keyword = args[0]
			return ui.RunSearch(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.OfficialOnly, "offical-only", true, "only show packages from official buckets")
	cmd.Flags().BoolVar(&opts.DistinctOnly, "distinct-manifests-only", true, "hide manifests that duplicate another bucket")
	cmd.Flags().StringVarP(&opts.Page, "page", "p", "1", "result page (100 per page)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort by best-match, name or newest (default best-match)")
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "sort direction asc or desc (default depends on --sort)")
	rootCmd.AddCommand(cmd)
}
