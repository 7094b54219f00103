package main

import (
	"fmt"
	"os"

	"reviewdash/reviewdash/controllers"
	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/utils/color"

	"github.com/spf13/cobra"
)

var historyLimit int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print headline metrics and the category distribution",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		ctrl := controllers.NewAnalysisController(db.DB, cfg.InsightsPath)
		metrics, err := ctrl.Metrics(cmd.Context())
		if err != nil {
			return err
		}
		categories, err := ctrl.Categories(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]any{"metrics": metrics, "categories": categories.Distribution})
			return nil
		}

		fmt.Println(color.ColorHeading("Metrics"))
		if err := printMetricsTable(os.Stdout, metrics); err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(color.ColorHeading("Categories"))
		return printCategoryTable(os.Stdout, categories.Distribution)
	},
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "List filenames stored on more than one review row",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		dups, err := controllers.NewAnalysisController(db.DB, cfg.InsightsPath).Duplicates(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(dups)
			return nil
		}
		if len(dups) == 0 {
			fmt.Println(color.ColorInfo("No duplicate filenames."))
			return nil
		}
		return printDuplicateTable(os.Stdout, dups)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent import runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := dao.NewImportRunDAO(db.DB).ListRecentImportRuns(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(runs)
			return nil
		}
		if len(runs) == 0 {
			fmt.Println(color.ColorInfo("No imports yet."))
			return nil
		}
		return printHistoryTable(os.Stdout, runs)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", controllers.DefaultImportHistory, "number of runs to show")
	rootCmd.AddCommand(reportCmd, duplicatesCmd, historyCmd)
}
