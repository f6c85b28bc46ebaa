package cmd

import (
	"github.com/gopak/scoopx/internal/manager"
	"github.com/spf13/cobra"
)

func init() {
	var opts manager.RemoveOptions
	cmd := &cobra.Command{
		Use:   "remove <name>...",
		Short: "Uninstall apps installed with scoop",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := newConsole()
			if err != nil {
				return err
			}
			opts.Names = args
			return m.Remove(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Global, "global", "g", false, "uninstall a globally installed app")
	cmd.Flags().BoolVarP(&opts.Purge, "purge", "p", false, "remove all persistent data")
	rootCmd.AddCommand(cmd)
}
