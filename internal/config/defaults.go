package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default values
const (
	// Toolchain defaults
	DefaultCargo = "cargo"
	DefaultClang = "clang"

	// Cache defaults
	DefaultCacheDir = "~/.extbuild/cache"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the directory that holds the config file
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".extbuild")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache_dir", DefaultCacheDir)
	v.SetDefault("toolchain.cargo", DefaultCargo)
	v.SetDefault("toolchain.clang", DefaultClang)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
