package config

// Package config provides a reusable loader for keri configuration files
// and environment variables. It is versioned so that applications can depend
// on a stable API contract.
//
// Version: v0.1.0

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"keri/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// TEMP_PREFIX values used when opening ephemeral db/keystore environments,
// per the on-disk layout's temp-instance convention.
const (
	TempPrefixDB = "keri_db_"
	TempPrefixKS = "keri_ks_"
)

// DefaultProto and DefaultVrsn are the viper defaults for proto.name and
// proto.vrsn when no config file sets them.
const (
	DefaultProto = "KERI"
	DefaultVrsn  = "10"
)

// Config is the unified configuration for a keri node or CLI invocation. It
// mirrors the structure of the YAML files Load reads.
type Config struct {
	Proto struct {
		Name string `mapstructure:"name" json:"name"`
		Vrsn string `mapstructure:"vrsn" json:"vrsn"`
		Kind string `mapstructure:"kind" json:"kind"`
	} `mapstructure:"proto" json:"proto"`

	Storage struct {
		// Head is the base directory under which the db and ks
		// environments are opened ("<HEAD>/keri/db", "<HEAD>/keri/ks").
		// An alt head of ".keri/..." is used when AltHead is true.
		Head       string `mapstructure:"head" json:"head"`
		AltHead    bool   `mapstructure:"alt_head" json:"alt_head"`
		Temp       bool   `mapstructure:"temp" json:"temp"`
		CreateOnly bool   `mapstructure:"create_only" json:"create_only"`
	} `mapstructure:"storage" json:"storage"`

	Keeper struct {
		Algo string `mapstructure:"algo" json:"algo"`
		Tier string `mapstructure:"tier" json:"tier"`
	} `mapstructure:"keeper" json:"keeper"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	viper.SetDefault("proto.name", DefaultProto)
	viper.SetDefault("proto.vrsn", DefaultVrsn)
	viper.SetDefault("proto.kind", "JSON")
	viper.SetDefault("storage.head", ".")
	if err := viper.ReadInConfig(); err != nil {
		// A missing default file is fine — the defaults above apply; only a
		// present-but-unreadable config is an error.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, utils.Wrap(err, "load config")
		}
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // picks up from .env

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the KERI_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("KERI_ENV", ""))
}

// DBPath returns the path the KEL environment should be opened at, given the
// configured storage head and alt-head setting.
func (c *Config) DBPath() string {
	return c.headPath("db")
}

// KSPath returns the path the key-store environment should be opened at.
func (c *Config) KSPath() string {
	return c.headPath("ks")
}

func (c *Config) headPath(sub string) string {
	dir := "keri"
	if c.Storage.AltHead {
		dir = ".keri"
	}
	head := c.Storage.Head
	if head == "" {
		head = "."
	}
	return fmt.Sprintf("%s/%s/%s", head, dir, sub)
}
