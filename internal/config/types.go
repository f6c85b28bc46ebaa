package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Shell struct {
	Program string   `yaml:"program" json:"program"`
	Args    []string `yaml:"args" json:"args,omitempty"`
}

type Scoop struct {
	Locate             string `yaml:"locate" json:"locate"`
	Policy             string `yaml:"policy" json:"policy"`
	Bootstrap          string `yaml:"bootstrap" json:"bootstrap"`
	Install            string `yaml:"install" json:"install"`
	Uninstall          string `yaml:"uninstall" json:"uninstall"`
	MaxInstallAttempts int    `yaml:"max_install_attempts" json:"max_install_attempts"`
}

type Buckets struct {
	Pull     string `yaml:"pull" json:"pull"`
	Parallel int    `yaml:"parallel" json:"parallel"`
	Timeout  string `yaml:"timeout" json:"timeout,omitempty"`
}

type KnownBucket struct {
	Name       string `yaml:"name" json:"name"`
	Repository string `yaml:"repository" json:"repository"`
}

type Search struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint,omitempty"`
	APIVersion   string        `yaml:"api_version" json:"api_version"`
	APIKey       string        `yaml:"api_key" json:"api_key"`
	Origin       string        `yaml:"origin" json:"origin"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	RegistryURL  string        `yaml:"registry_url" json:"registry_url"`
	Timeout      string        `yaml:"timeout" json:"timeout,omitempty"`
	Retries      int           `yaml:"retries" json:"retries"`
	KnownBuckets []KnownBucket `yaml:"known_buckets" json:"known_buckets,omitempty"`
}

type Config struct {
	Shell   Shell   `yaml:"shell" json:"shell"`
	Scoop   Scoop   `yaml:"scoop" json:"scoop"`
	Buckets Buckets `yaml:"buckets" json:"buckets"`
	Search  Search  `yaml:"search" json:"search"`
}

// Env is read from the process environment and overrides file settings.
type Env struct {
	SearchEndpoint string `envconfig:"API_SEARCH"`
	LogLevel       string `envconfig:"SCOOPX_LOG_LEVEL" default:"info"`
}

// Duration parses a config duration. Empty and "0" mean no limit.
func Duration(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

// UnmarshalYAML accepts either a plain program name or a mapping.
func (s *Shell) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s.Program = value.Value
		s.Args = nil
		return nil
	case yaml.MappingNode:
		var aux struct {
			Program string   `yaml:"program"`
			Args    []string `yaml:"args"`
		}
		if err := value.Decode(&aux); err != nil {
			return err
		}
		s.Program = aux.Program
		s.Args = aux.Args
		return nil
	default:
		return fmt.Errorf("invalid shell node kind: %d", value.Kind)
	}
}
