package config

// Config represents the application configuration
type Config struct {
	CacheDir  string          `mapstructure:"cache_dir" yaml:"cache_dir"`
	Toolchain ToolchainConfig `mapstructure:"toolchain" yaml:"toolchain"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// ToolchainConfig contains the external toolchains the build pipeline invokes
type ToolchainConfig struct {
	// Cargo is the command used to compile the extension's Rust crate.
	Cargo string `mapstructure:"cargo" yaml:"cargo"`

	// Clang is the command used to compile grammar parsers.
	Clang string `mapstructure:"clang" yaml:"clang"`

	// WasiSysroot is the wasi-libc sysroot handed to clang. Sourced from
	// WASI_LIBC_PATH; grammar compilation refuses to run without it.
	WasiSysroot string `mapstructure:"wasi_sysroot" yaml:"wasi_sysroot"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for empty values
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.Toolchain.Cargo == "" {
		c.Toolchain.Cargo = DefaultCargo
	}
	if c.Toolchain.Clang == "" {
		c.Toolchain.Clang = DefaultClang
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
