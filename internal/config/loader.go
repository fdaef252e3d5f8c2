package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/quantmind-br/extbuild-go/internal/utils"
)

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings.
func Load() (*Config, error) {
	v := viper.GetViper()
	return loadWith(v)
}

// LoadWithViper loads configuration from a fresh viper instance.
// Useful in tests that must not observe global flag bindings.
func LoadWithViper() (*Config, *viper.Viper, error) {
	v := viper.New()
	cfg, err := loadWith(v)
	return cfg, v, err
}

func loadWith(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (EXTBUILD_*)
	v.SetEnvPrefix("EXTBUILD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The sysroot variable predates this tool and is shared with other
	// wasm tooling, so it is bound under its established name too.
	_ = v.BindEnv("toolchain.wasi_sysroot", "WASI_LIBC_PATH", "EXTBUILD_TOOLCHAIN_WASI_SYSROOT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.CacheDir = utils.ExpandPath(cfg.CacheDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
