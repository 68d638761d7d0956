package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/napolitain/homebound/internal/config"
	"github.com/napolitain/homebound/internal/loader"
	"github.com/napolitain/homebound/internal/models"
)

var (
	configFile string
	dataDir    string
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "homebound",
		Short: "Colony builder simulation",
		Long: `A deterministic tick-based simulation of a planetary colony: buildings on a
7x7 grid extract, refine and manufacture resources while workers build and train.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Path to catalog data directory (default: embedded)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(newServeCmd(), newSimulateCmd(), newWatchCmd(), newCatalogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config and applies command-line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Simulation.DataDir = dataDir
	}
	return cfg, nil
}

func loadCatalog(dir string) (*models.Catalog, error) {
	if dir == "" {
		return loader.DefaultCatalog()
	}
	return loader.LoadCatalog(dir)
}
