package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"reviewdash/reviewdash/config"
	"reviewdash/reviewdash/sources/psql"
	"reviewdash/reviewdash/utils/jsonutils"
	"reviewdash/reviewdash/utils/logging"

	"github.com/spf13/cobra"
)

var (
	cfg        config.Config
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "reviewdash-cli",
	Short: "Import code review data and inspect dashboard aggregates",
	Long: `reviewdash-cli loads code review exports into the dashboard database
and prints the same aggregates the dashboard serves.

EXAMPLES:

  reviewdash-cli import attached_assets/consolidated_with_llm_openai.csv
  reviewdash-cli import --kind intents                 # use the configured path
  reviewdash-cli import --kind training --server http://localhost:8000 --token $TOKEN
  reviewdash-cli token --ttl 1h
  reviewdash-cli report
  reviewdash-cli duplicates
  reviewdash-cli history -n 5

Configuration comes from .env, reviewdash.yaml and the environment
(DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, JWT_SECRET, ...).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadConfig()
		logging.InitLogger(cfg.LogDir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// openDatabase connects with a bounded timeout; the caller closes it.
func openDatabase(ctx context.Context) (*psql.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func printJSON(v any) {
	fmt.Fprintln(os.Stdout, jsonutils.ToJSON(v))
}
