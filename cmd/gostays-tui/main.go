// Command gostays-tui searches listings from the terminal.
package main

import (
	"fmt"
	"os"

	"gostays/config"
	"gostays/models"
	"gostays/tui"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

func main() {
	var (
		cfgPath string
		dbPath  string
		memory  bool
		noSeed  bool
	)

	rootCmd := &cobra.Command{
		Use:   "gostays-tui",
		Short: "Search GoStays listings from the terminal",
		Long: `Browse listings and narrow them with the filter overlay.

Press f to open filters, enter to apply, esc to cancel and q to quit.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				if err := os.Setenv("GOSTAYS_CONFIG", cfgPath); err != nil {
					return serr.Wrap(err, "failed to set config path")
				}
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.Database.Path = dbPath
			}
			if memory {
				cfg.Database.Path = ""
			}
			if noSeed {
				cfg.Seed.Enabled = false
			}
			return run(cfg)
		},
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./configs/gostays.toml)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "DuckDB file to search")
	rootCmd.Flags().BoolVar(&memory, "memory", false, "run from an in-memory database")
	rootCmd.Flags().BoolVar(&noSeed, "no-seed", false, "skip loading the demo listings")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	// Keep log output from drawing over the alt screen
	logger.SetLogLevel("error")
	if cfg.Log.Level == "debug" {
		logger.SetLogLevel(cfg.Log.Level)
	}

	if err := models.InitDB(cfg.Database.Path); err != nil {
		return serr.Wrap(err, "failed to initialize database")
	}
	defer models.CloseDB()

	if cfg.Seed.Enabled {
		if err := models.SeedListings(); err != nil {
			logger.LogErr(err, "failed to seed demo listings")
		}
	}

	sess := models.Sessions.Get("")
	return tui.Run(sess, models.SearchListings)
}
