package main

import (
	"context"
	"fmt"
	"os"

	"reviewdash/reviewdash/routes"
	"reviewdash/reviewdash/services/importer"
	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/storage"
	"reviewdash/reviewdash/utils/color"
	httputils "reviewdash/reviewdash/utils/http"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	importKind    string
	importServer  string
	importToken   string
	importReplace bool
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a review CSV or lookup JSON file",
	Long: `Import a file into the dashboard database.

Without --kind the target table is inferred from the file name:

  *intent_broader_categories*      intents (snapshot)
  *work_area_broader_categories*   work areas (snapshot)
  *capabilit*                      user capabilities (snapshot)
  *training_recommendation*        training recommendations (snapshot)
  any other .csv                   reviews (appended)

Snapshot tables are cleared before loading. Reviews are appended unless
--replace clears them first. With --kind and no path the configured
server-side path for that kind is used.

With --server the import is triggered on a running server instead, which
reads its own configured path. Pass an admin token from 'reviewdash-cli token'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind importer.Kind
		if importKind != "" {
			k, err := importer.ParseKind(importKind)
			if err != nil {
				return err
			}
			kind = k
		}

		var res *importer.Result
		var err error
		if importServer != "" {
			if len(args) > 0 {
				return fmt.Errorf("remote imports read the server's configured path, drop %q", args[0])
			}
			if importReplace {
				return fmt.Errorf("--replace only works on local imports")
			}
			res, err = remoteImport(cmd, kind)
		} else {
			res, err = localImport(cmd, kind, args)
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(res)
			return nil
		}
		fmt.Println(color.ColorSuccess(fmt.Sprintf("✓ imported %d %s records", res.Count, res.Kind)))
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, color.ColorWarning("  "+e))
		}
		if res.ArchiveKey != "" {
			fmt.Println(color.ColorInfo("  archived as " + res.ArchiveKey))
		}
		return nil
	},
}

func localImport(cmd *cobra.Command, kind importer.Kind, args []string) (*importer.Result, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if kind != "" {
		path = configuredPath(kind)
	}
	if path == "" {
		return nil, fmt.Errorf("need a path or --kind")
	}

	ctx := cmd.Context()
	db, err := openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var opts []importer.Option
	minioClient, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if minioClient != nil {
		opts = append(opts, importer.WithArchiver(minioClient))
	}
	if importReplace {
		if err := clearReviews(ctx, db.DB, kind, path); err != nil {
			return nil, err
		}
	}
	imp := importer.NewImporter(db.DB, opts...)
	if kind == "" {
		return imp.Import(ctx, path)
	}
	return imp.ImportKind(ctx, kind, path)
}

// clearReviews empties the review tables ahead of a --replace import. The
// source must be an existing reviews file.
func clearReviews(ctx context.Context, db *gorm.DB, kind importer.Kind, path string) error {
	if kind == "" {
		k, err := importer.DetectKind(path)
		if err != nil {
			return err
		}
		kind = k
	}
	if kind != importer.KindReviews {
		return fmt.Errorf("--replace applies to reviews only, %s imports always replace", kind)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", importer.ErrFileNotFound, path)
	}
	if err := dao.NewReviewDAO(db).DeleteAllReviews(ctx); err != nil {
		return fmt.Errorf("clear reviews: %w", err)
	}
	return nil
}

func remoteImport(cmd *cobra.Command, kind importer.Kind) (*importer.Result, error) {
	if kind == "" {
		return nil, fmt.Errorf("--server needs --kind")
	}
	url, ok := routes.ImportURL(importServer, kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", importer.ErrUnknownKind, kind)
	}
	var res importer.Result
	if err := httputils.PostJSON(cmd.Context(), url, importToken, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func configuredPath(kind importer.Kind) string {
	switch kind {
	case importer.KindReviews:
		return cfg.ReviewsPath
	case importer.KindIntents:
		return cfg.IntentsPath
	case importer.KindWorkAreas:
		return cfg.WorkAreasPath
	case importer.KindCapabilities:
		return cfg.CapabilitiesPath
	case importer.KindTraining:
		return cfg.TrainingPath
	}
	return ""
}

func init() {
	importCmd.Flags().StringVarP(&importKind, "kind", "k", "", "target table: reviews, intents, work_areas, capabilities, training")
	importCmd.Flags().StringVar(&importServer, "server", "", "trigger the import on a running server, e.g. http://localhost:8000")
	importCmd.Flags().StringVar(&importToken, "token", os.Getenv("REVIEWDASH_TOKEN"), "admin token for --server")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "clear all reviews before importing a reviews file")
	rootCmd.AddCommand(importCmd)
}
