package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopak/scoopx/internal/assets"
	"github.com/gopak/scoopx/internal/bucket"
	"github.com/gopak/scoopx/internal/config"
	"github.com/gopak/scoopx/internal/executil"
	"github.com/gopak/scoopx/internal/logging"
	"github.com/gopak/scoopx/internal/manager"
	"github.com/gopak/scoopx/internal/scoop"
	"github.com/gopak/scoopx/internal/search"
	"github.com/gopak/scoopx/internal/state"
	"github.com/gopak/scoopx/internal/ui/console"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var cfgFile string
var cfgDir string
var verbose bool
var assumeYes bool
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "scoopx",
	Short:         "Search, install and remove Scoop packages",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(ctx context.Context) error { return rootCmd.ExecuteContext(ctx) }

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to any YAML file inside the config directory (default dir: ~/.config/scoopx); all *.yaml in that directory are merged")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show detailed steps and commands")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "install Scoop without asking when it is missing")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlag)
	rootCmd.Version = version
	cobra.OnInitialize(initConfig)
}

// normalizeFlag accepts the correctly spelled --official-only.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "official-only" {
		name = "offical-only"
	}
	return pflag.NormalizedName(name)
}

func initConfig() {
	if cfgFile != "" {
		cfgDir = filepath.Dir(cfgFile)
	} else {
		dir, err := os.UserHomeDir()
		if err != nil {
			logging.Error("cannot locate home directory: " + err.Error())
			os.Exit(1)
		}
		cfgDir = filepath.Join(dir, ".config", "scoopx")
	}
	// Ensure config directory and default config.yaml exist
	_ = os.MkdirAll(cfgDir, 0o755)
	_ = assets.WriteDefaultConfigIfMissing(cfgDir)

	env, err := config.LoadEnv()
	if err != nil {
		logging.Error(err.Error())
		os.Exit(1)
	}
	if err := logging.Init(cfgDir, env.LogLevel); err != nil {
		logging.Warn("file logging disabled: " + err.Error())
	}
	logging.SetVerbose(verbose)

	entries, _ := os.ReadDir(cfgDir)
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		low := strings.ToLower(name)
		if strings.HasSuffix(low, ".yaml") || strings.HasSuffix(low, ".yml") {
			files = append(files, filepath.Join(cfgDir, name))
		}
	}
	cfg, err := config.LoadDefaultsAndFiles(assets.DefaultConfig, files)
	if err != nil {
		logging.Error("config error: " + err.Error())
		os.Exit(1)
	}
	cfg = config.ApplyEnv(cfg, env)
	if err := config.ValidateAgainstSchema(cfg); err != nil {
		logging.Error("schema error: " + err.Error())
		os.Exit(1)
	}
	logging.Debug("config loaded from " + cfgDir)
}

// newConsole wires the manager for one invocation.
func newConsole() (*console.ConsoleUI, *manager.Manager, error) {
	cfg := config.Get()
	rep := console.NewSpinner(os.Stdout)
	shell := executil.NewShell(cfg.Shell)

	st, err := state.NewManager(cfgDir)
	if err != nil {
		return nil, nil, err
	}
	resolver := scoop.NewResolver(cfg.Scoop, shell, console.NewPrompt(),
		scoop.WithAssumeYes(assumeYes),
		scoop.WithReporter(rep))
	syncer, err := bucket.NewSynchronizer(cfg.Buckets, shell,
		bucket.WithReporter(rep),
		bucket.WithRecorder(st))
	if err != nil {
		return nil, nil, err
	}
	client, err := search.NewClient(cfg.Search)
	if err != nil {
		return nil, nil, err
	}
	m := manager.New(cfg, resolver, syncer, client, manager.NewShellRunner(shell),
		manager.WithReporter(rep),
		manager.WithState(st))
	return console.NewConsoleUI(m), m, nil
}
