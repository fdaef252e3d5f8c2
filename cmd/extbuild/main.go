package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/extbuild-go/internal/builder"
	"github.com/quantmind-br/extbuild-go/internal/config"
	"github.com/quantmind-br/extbuild-go/internal/manifest"
	"github.com/quantmind-br/extbuild-go/internal/utils"
	"github.com/quantmind-br/extbuild-go/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger

	// Dependencies for testing
	execLookPath = exec.LookPath
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "extbuild [extension-dir...]",
	Short: "Compile editor extensions into portable wasm artifacts",
	Long: `extbuild compiles a source extension project into two kinds of portable
binary artifacts: a wasm component exposing the extension's exported
capabilities (extension.wasm), and one compiled parser module per grammar
the extension declares (grammars/<name>.wasm).

It drives cargo for the extension's own crate, clang for grammar parsers,
and fetches grammar sources from their declared repositories.`,
	Version: version.Short(),
	Args:    cobra.ArbitraryArgs,
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.extbuild/config.yaml)")
	rootCmd.PersistentFlags().Bool("release", false, "Compile the extension library with the release profile")
	rootCmd.PersistentFlags().String("cache-dir", "", "Directory for shared build state")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))

	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 0 {
		return cmd.Help()
	}

	release, _ := cmd.Flags().GetBool("release")

	// Handle graceful shutdown; cancellation may leave toolchain
	// subprocesses and partial artifacts behind.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	b, err := builder.NewBuilder(builder.Options{
		Config: cfg,
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("failed to create builder: %w", err)
	}

	loader := manifest.NewLoader()

	showProgress := len(args) > 1 && !verbose
	var bar *progressbar.ProgressBar
	if showProgress {
		bar = utils.NewProgressBar(len(args), utils.DescBuilding)
	}

	for _, arg := range args {
		extensionDir, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("failed to resolve extension dir %s: %w", arg, err)
		}

		m, err := loader.LoadFromDir(extensionDir)
		if err != nil {
			return fmt.Errorf("failed to load manifest for %s: %w", extensionDir, err)
		}

		opts := builder.CompileOptions{Release: release}
		if err := b.CompileExtension(ctx, extensionDir, m, opts); err != nil {
			return fmt.Errorf("failed to compile extension %s: %w", m.ID, err)
		}

		if m.Lib.Version != nil {
			log.Info().
				Str("extension", m.ID).
				Str("api_version", m.Lib.Version.String()).
				Msg("Extension compiled")
		}
		if showProgress {
			_ = bar.Add(1)
		}
	}
	if showProgress {
		_ = bar.Finish()
	}

	return nil
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  "Verifies that the toolchains and configuration the build pipeline needs are present.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking system dependencies...")
		allPassed := true

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("  Config file: WARN (%v)\n", err)
			cfg = &config.Config{}
			_ = cfg.Validate()
		} else {
			fmt.Println("  Config file: OK")
		}

		fmt.Print("  cargo: ")
		if path, err := execLookPath(cfg.Toolchain.Cargo); err == nil {
			fmt.Printf("OK (%s)\n", path)
		} else {
			fmt.Println("NOT FOUND (native library compilation will fail)")
			allPassed = false
		}

		fmt.Print("  clang: ")
		if path, err := execLookPath(cfg.Toolchain.Clang); err == nil {
			fmt.Printf("OK (%s)\n", path)
		} else {
			fmt.Println("NOT FOUND (grammar compilation will fail)")
			allPassed = false
		}

		fmt.Print("  wasi-libc sysroot: ")
		if cfg.Toolchain.WasiSysroot != "" {
			fmt.Printf("OK (%s)\n", cfg.Toolchain.WasiSysroot)
		} else {
			fmt.Println("NOT SET (set WASI_LIBC_PATH; grammar compilation will fail)")
			allPassed = false
		}

		fmt.Print("  Cache directory: ")
		if err := utils.EnsureDir(cfg.CacheDir); err == nil {
			fmt.Printf("OK (%s)\n", cfg.CacheDir)
		} else {
			fmt.Printf("FAILED (%v)\n", err)
			allPassed = false
		}

		fmt.Println()
		if allPassed {
			fmt.Println("All checks passed.")
			return nil
		}
		fmt.Println("Some checks failed.")
		os.Exit(1)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
