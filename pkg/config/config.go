package config

// Package config loads the collective-engine's configuration surface:
// the HCCL_PRIM_COLLECTIVE_MASK overlay mask and a log level, from a YAML
// file plus environment overrides. Grounded on the teacher's
// pkg/config/config.go viper+godotenv loader, generalized to this
// package's config surface (§6: "one mask-typed configuration variable").

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/HabanaAI/HCL-sub006/pkg/utils"
)

// Config is the unified configuration for a process embedding the
// collective-operations graph engine.
type Config struct {
	PrimCollectiveMask uint64 `mapstructure:"prim_collective_mask" json:"prim_collective_mask"`
	LogLevel           string `mapstructure:"log_level" json:"log_level"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads the "default" config file from cmd/config or config, merges
// the override file named by env (if env is non-empty), and
// applies HCCL_-prefixed environment variables on top. The result is
// stored in AppConfig and returned.
func Load(env string) (*Config, error) {
	_ = godotenv.Load() // best-effort; absence of a .env file is not an error

	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	viper.SetDefault("prim_collective_mask", 0)
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, utils.Wrap(err, "load config")
		}
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.SetEnvPrefix("HCCL")
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the HCCL_ENV environment variable
// to select the override file.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("HCCL_ENV", ""))
}
