package cmd

import (
	"fmt"

	"github.com/gopak/scoopx/internal/config"
	"github.com/gopak/scoopx/internal/logging"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate merged configuration against the JSON Schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		// initConfig already exits on schema errors; check the durations too.
		cfg := config.Get()
		for key, v := range map[string]string{"buckets.timeout": cfg.Buckets.Timeout, "search.timeout": cfg.Search.Timeout} {
			if _, err := config.Duration(v); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		logging.Success("Configuration is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
