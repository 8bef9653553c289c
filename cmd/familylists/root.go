// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/familylists/familylists-go/internal/client"
	"github.com/familylists/familylists-go/internal/config"
	"github.com/familylists/familylists-go/internal/logger"
)

var (
	flagServerURL  string
	flagTokenFile  string
	flagDBPath     string
	flagConfigPath string
	flagTimeout    time.Duration
	flagVersion    bool
)

var rootCmd = &cobra.Command{
	Use:   "familylists",
	Short: "Offline-first terminal client for shared household lists",
	Long: `familylists is a terminal client for shared household lists (groceries,
packing, tasks) that keeps working without a network connection.

Mutations made offline are stored in a local queue and replayed in order when
connectivity returns. Open lists receive live updates from other household
members over a server-sent event stream.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagVersion {
			printBuildInfo()
			return nil
		}

		cfg, log, err := setup()
		if err != nil {
			return err
		}

		app, err := client.NewApp(cfg, log)
		if err != nil {
			return fmt.Errorf("init client app: %w", err)
		}
		return app.Run()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagServerURL, "server", "s", "", "backend base URL")
	pf.StringVarP(&flagTokenFile, "token-file", "t", "", "path of the bearer-token file")
	pf.StringVarP(&flagDBPath, "db", "d", "", "path of the local SQLite database")
	pf.StringVarP(&flagConfigPath, "config", "c", "", "path of a JSON config file")
	pf.DurationVar(&flagTimeout, "timeout", 0, "request timeout (e.g. 15s)")
	rootCmd.Flags().BoolVar(&flagVersion, "version", false, "print build info and exit")

	rootCmd.AddCommand(syncCmd, queueCmd)
}

// flagsOverlay maps the CLI flags onto the config structure. Zero values are
// skipped by the merge, so unset flags never mask env or file values.
func flagsOverlay() *config.StructuredConfig {
	return &config.StructuredConfig{
		Server: config.Server{
			BaseURL:        flagServerURL,
			RequestTimeout: flagTimeout,
		},
		Auth: config.Auth{
			TokenFile: flagTokenFile,
		},
		Storage: config.Storage{
			DB: config.DB{DSN: flagDBPath},
		},
		JSONFilePath: flagConfigPath,
	}
}

func setup() (*config.ClientConfig, *logger.Logger, error) {
	log := logger.NewClientLogger("familylists")

	cfg, err := config.GetClientConfig(flagsOverlay())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, log, nil
}
