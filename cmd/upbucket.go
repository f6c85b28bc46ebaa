package cmd

import "github.com/spf13/cobra"

func init() {
	cmd := &cobra.Command{
		Use:   "upbucket",
		Short: "Update every local bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, _, err := newConsole()
			if err != nil {
				return err
			}
			return ui.RunUpdateBuckets(cmd.Context())
		},
	}
	rootCmd.AddCommand(cmd)
}
