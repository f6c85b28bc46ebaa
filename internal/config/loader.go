package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

var current Config

func Get() Config { return current }

// LoadDefaultsAndFiles merges the YAML files on top of defaultsYAML. Scalar
// settings from later files win; known buckets accumulate and must be unique.
func LoadDefaultsAndFiles(defaultsYAML []byte, files []string) (Config, error) {
	var base Config
	if len(defaultsYAML) > 0 {
		if err := yaml.Unmarshal(defaultsYAML, &base); err != nil {
			return Config{}, fmt.Errorf("defaults: %w", err)
		}
	}
	merged := base
	seen := map[string]string{}
	for _, kb := range base.Search.KnownBuckets {
		seen[kb.Name] = "defaults"
	}
	for _, f := range sortedYAML(files) {
		b, err := os.ReadFile(f)
		if err != nil {
			return Config{}, err
		}
		var part Config
		if err := yaml.Unmarshal(b, &part); err != nil {
			return Config{}, fmt.Errorf("%s: %w", f, err)
		}
		if err := checkBucketDuplicatesWithFiles(seen, part, f); err != nil {
			return Config{}, err
		}
		merged = mergeConfig(merged, part)
	}
	current = merged
	return merged, nil
}

// LoadEnv reads the environment overrides.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to load environment: %w", err)
	}
	return env, nil
}

// ApplyEnv overlays environment settings onto cfg and makes the result current.
func ApplyEnv(cfg Config, env Env) Config {
	if env.SearchEndpoint != "" {
		cfg.Search.Endpoint = strings.TrimRight(env.SearchEndpoint, "/")
	}
	current = cfg
	return cfg
}

func sortedYAML(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		lf := strings.ToLower(f)
		if strings.HasSuffix(lf, ".yaml") || strings.HasSuffix(lf, ".yml") {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

func mergeConfig(base, overlay Config) Config {
	out := base
	if overlay.Shell.Program != "" {
		out.Shell = overlay.Shell
	}
	out.Scoop = mergeScoop(out.Scoop, overlay.Scoop)
	out.Buckets = mergeBuckets(out.Buckets, overlay.Buckets)
	out.Search = mergeSearch(out.Search, overlay.Search)
	return out
}

func mergeScoop(a, b Scoop) Scoop {
	out := a
	out.Locate = mergeString(out.Locate, b.Locate)
	out.Policy = mergeString(out.Policy, b.Policy)
	out.Bootstrap = mergeString(out.Bootstrap, b.Bootstrap)
	out.Install = mergeString(out.Install, b.Install)
	out.Uninstall = mergeString(out.Uninstall, b.Uninstall)
	if b.MaxInstallAttempts != 0 {
		out.MaxInstallAttempts = b.MaxInstallAttempts
	}
	return out
}

func mergeBuckets(a, b Buckets) Buckets {
	out := a
	out.Pull = mergeString(out.Pull, b.Pull)
	out.Timeout = mergeString(out.Timeout, b.Timeout)
	if b.Parallel != 0 {
		out.Parallel = b.Parallel
	}
	return out
}

func mergeSearch(a, b Search) Search {
	out := a
	out.Endpoint = mergeString(out.Endpoint, b.Endpoint)
	out.APIVersion = mergeString(out.APIVersion, b.APIVersion)
	out.APIKey = mergeString(out.APIKey, b.APIKey)
	out.Origin = mergeString(out.Origin, b.Origin)
	out.UserAgent = mergeString(out.UserAgent, b.UserAgent)
	out.RegistryURL = mergeString(out.RegistryURL, b.RegistryURL)
	out.Timeout = mergeString(out.Timeout, b.Timeout)
	if b.Retries != 0 {
		out.Retries = b.Retries
	}
	known := make([]KnownBucket, 0, len(a.KnownBuckets)+len(b.KnownBuckets))
	known = append(known, a.KnownBuckets...)
	known = append(known, b.KnownBuckets...)
	out.KnownBuckets = known
	return out
}

func mergeString(a, b string) string {
	if b != "" {
		return b
	}
	return a
}

func checkBucketDuplicatesWithFiles(seen map[string]string, part Config, file string) error {
	local := map[string]struct{}{}
	for _, kb := range part.Search.KnownBuckets {
		if _, ok := local[kb.Name]; ok {
			return fmt.Errorf("duplicate known bucket '%s' found in %s", kb.Name, file)
		}
		local[kb.Name] = struct{}{}
	}
	for _, kb := range part.Search.KnownBuckets {
		if prev, ok := seen[kb.Name]; ok {
			return fmt.Errorf("duplicate known bucket '%s' found in %s and %s", kb.Name, prev, file)
		}
	}
	for _, kb := range part.Search.KnownBuckets {
		seen[kb.Name] = file
	}
	return nil
}
