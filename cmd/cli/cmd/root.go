// Package cmd provides the CLI commands for dimensional.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dimensional/core/catalog"
	"dimensional/core/conversion"
	"dimensional/core/naming"
	"dimensional/core/parse"
	"dimensional/internal/config"
	"dimensional/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile      string
	verbose      bool
	catalogFiles []string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dimensional",
	Short: "Compose, name and convert units of measure",
	Long: `dimensional works with units built from the seven ISQ base dimensions.

Units are written as expressions over catalog symbols or names, with
products (*, ⋅ or ·), division (/) and exponents (m², s^-1, m^(1/2)).

Examples:
  dimensional name "kg*m^2/s^2"
  dimensional compose m/s s
  dimensional compose --op div m s
  dimensional convert 100 °C K
  dimensional catalog --format yaml`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dimensional.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringSliceVar(&catalogFiles, "catalog", nil, "extra HCL catalog files merged over the built-in catalog")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Catalog.Extra = append(cfg.Catalog.Extra, catalogFiles...)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// environment is what every command needs: a catalog, its conversion
// table, a parser over it, and rendering options
type environment struct {
	catalog *catalog.Catalog
	table   *conversion.Table
	parser  *parse.Parser
	render  naming.Options
}

func loadEnvironment() (*environment, error) {
	cfg := config.Get()
	env := &environment{
		render: naming.Options{
			Product: cfg.Display.ProductGlyph,
			ASCII:   cfg.Display.ASCII,
		},
	}

	if len(cfg.Catalog.Extra) == 0 {
		env.catalog = catalog.Default()
		env.table = catalog.DefaultTable()
	} else {
		c, err := catalog.LoadFiles(cfg.Catalog.Extra...)
		if err != nil {
			return nil, err
		}
		table, err := c.Table()
		if err != nil {
			return nil, err
		}
		env.catalog, env.table = c, table
		logging.Debug("loaded catalog", zap.Strings("files", cfg.Catalog.Extra))
	}

	env.parser = parse.New(env.catalog)
	return env, nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dimensional version %s\n", Version)
	},
}
