// Package main provides the publist CLI entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ikodrasi/publist/internal/bib"
	"github.com/ikodrasi/publist/internal/config"
	"github.com/ikodrasi/publist/internal/dataset"
	"github.com/ikodrasi/publist/internal/printer"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// configPath overrides the config search order.
	configPath string
	// datasetPath replaces the embedded tables.
	datasetPath string
	// jsonOutput switches report operations to JSON.
	jsonOutput bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "publist",
	Short: "Publication list generator",
	Long: `publist renders a researcher's publication list from a fixed dataset.

It emits a BibTeX bibliography with a LaTeX wrapper, HAML fragments for
a static web site (papers, articles, news, invited talks), paper
thumbnails and map markers for conference venues. Fragments are written
to stdout; progress and warnings go to stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $PUBLIST_CONFIG, ./publist.yml, then the user config)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "YAML dataset to use instead of the built-in one")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Use JSON output for report operations")
	rootCmd.Version = Version
}

// env is everything an operation runs against. It is built once per
// invocation and never mutated.
type env struct {
	ctx     context.Context
	cfg     *config.Config
	catalog *bib.Catalog
	out     io.Writer
	json    bool
}

// mustLoadConfig loads the configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		printer.Error("Configuration error", err.Error(), []string{
			"Fix the file or point --config at a valid one",
		})
		os.Exit(ExitConfigError)
	}
	return cfg
}

// mustLoadCatalog resolves the dataset, exits before any output on error.
func mustLoadCatalog(cfg *config.Config) *bib.Catalog {
	path := datasetPath
	if path == "" {
		path = cfg.Dataset
	}
	c, err := dataset.Catalog(path)
	if err != nil {
		printer.Error("Dataset error", err.Error(), nil)
		os.Exit(ExitDataError)
	}
	return c
}

// newEnv loads configuration and catalog for a command.
func newEnv(cmd *cobra.Command) *env {
	cfg := mustLoadConfig()
	return &env{
		ctx:     cmd.Context(),
		cfg:     cfg,
		catalog: mustLoadCatalog(cfg),
		out:     cmd.OutOrStdout(),
		json:    jsonOutput,
	}
}
