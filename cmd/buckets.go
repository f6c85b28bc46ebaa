package cmd

import "github.com/spf13/cobra"

func init() {
	cmd := &cobra.Command{
		Use:   "buckets",
		Short: "List local buckets and when they were last synced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, _, err := newConsole()
			if err != nil {
				return err
			}
			return ui.RunBuckets(cmd.Context())
		},
	}
	rootCmd.AddCommand(cmd)
}
