package cmd

import (
	"github.com/gopak/scoopx/internal/manager"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	rootCmd.AddCommand(newAddCmd())
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name|url|manifest>...",
		Short: "Install apps from your local buckets after updating them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := addOptions(cmd.Flags(), args)
			if err != nil {
				return err
			}
			_, m, err := newConsole()
			if err != nil {
				return err
			}
			return m.Add(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("global", "g", false, "install the app globally")
	cmd.Flags().BoolP("independent", "i", false, "don't install dependencies automatically")
	cmd.Flags().BoolP("no-cache", "k", false, "don't use the download cache")
	cmd.Flags().BoolP("skip-hash-check", "s", false, "skip hash validation (use with caution!)")
	// scoop gets --no-update-scoop unless this flag is given
	cmd.Flags().BoolP("no-update-scoop", "u", false, "let Scoop update itself before installing if it's outdated")
	cmd.Flags().StringP("arch", "a", "", "use the specified architecture (32bit, 64bit or arm64)")
	return cmd
}

// addOptions reads the parsed add flags. Passing -u/--no-update-scoop
// switches off the --no-update-scoop that is otherwise forwarded.
func addOptions(fs *pflag.FlagSet, names []string) (manager.AddOptions, error) {
	opts := manager.AddOptions{Names: names}
	var err error
	get := func(name string, dst *bool) {
		if err == nil {
			*dst, err = fs.GetBool(name)
		}
	}
	get("global", &opts.Global)
	get("independent", &opts.Independent)
	get("no-cache", &opts.NoCache)
	get("skip-hash-check", &opts.SkipHashCheck)
	var allowUpdate bool
	get("no-update-scoop", &allowUpdate)
	if err != nil {
		return manager.AddOptions{}, err
	}
	opts.NoUpdateScoop = !allowUpdate
	if opts.Arch, err = fs.GetString("arch"); err != nil {
		return manager.AddOptions{}, err
	}
	return opts, nil
}
