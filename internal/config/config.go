package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/watchhub/envctl/pkg/log"
)

// Store names accepted by the secrets command.
const (
	StoreSupabase = "supabase"
	StoreAWS      = "aws"
)

type Supabase struct {
	Binary string `mapstructure:"binary"`
}

type AWS struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
	Prefix  string `mapstructure:"prefix"`
}

// Config holds envctl's own settings. It never holds WatchHub secrets; those
// live in the env files it manages.
type Config struct {
	Root             string     `mapstructure:"root"`
	EnvFile          string     `mapstructure:"env_file"`
	FunctionsEnvFile string     `mapstructure:"functions_env_file"`
	Store            string     `mapstructure:"store"`
	Supabase         Supabase   `mapstructure:"supabase"`
	AWS              AWS        `mapstructure:"aws"`
	Log              log.Config `mapstructure:"log"`
}

func Default() *Config {
	return &Config{
		Root:             ".",
		EnvFile:          ".env",
		FunctionsEnvFile: filepath.Join("supabase", ".env"),
		Store:            StoreSupabase,
		Supabase:         Supabase{Binary: "supabase"},
		AWS:              AWS{Prefix: "watchhub/"},
		Log:              log.Config{Level: "warn", Format: "text"},
	}
}

// EnvPath is the root configuration file.
func (c *Config) EnvPath() string {
	return c.resolve(c.EnvFile)
}

// FunctionsEnvPath is the nested file read by the edge functions.
func (c *Config) FunctionsEnvPath() string {
	return c.resolve(c.FunctionsEnvFile)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSupabase:
		if strings.TrimSpace(c.Supabase.Binary) == "" {
			return fmt.Errorf("supabase.binary must not be empty")
		}
	case StoreAWS:
	default:
		return fmt.Errorf("unknown store %q (expected %s or %s)", c.Store, StoreSupabase, StoreAWS)
	}
	if c.EnvFile == "" {
		return fmt.Errorf("env_file must not be empty")
	}
	return nil
}

// Load reads settings from path, or from envctl.yaml in the working
// directory or $HOME/.envctl when path is empty, then applies ENVCTL_*
// environment overrides. A missing auto-discovered file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("root", def.Root)
	v.SetDefault("env_file", def.EnvFile)
	v.SetDefault("functions_env_file", def.FunctionsEnvFile)
	v.SetDefault("store", def.Store)
	v.SetDefault("supabase.binary", def.Supabase.Binary)
	v.SetDefault("aws.region", def.AWS.Region)
	v.SetDefault("aws.profile", def.AWS.Profile)
	v.SetDefault("aws.prefix", def.AWS.Prefix)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("envctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.envctl")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("ENVCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
