package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewdash/reviewdash/config"
	"reviewdash/reviewdash/controllers"
	"reviewdash/reviewdash/routes"
	"reviewdash/reviewdash/services/events"
	"reviewdash/reviewdash/services/importer"
	"reviewdash/reviewdash/services/llm"
	"reviewdash/reviewdash/sources/psql"
	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/storage"
	"reviewdash/reviewdash/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logging.InitLogger(cfg.LogDir)
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	hub := events.NewHub()
	opts := []importer.Option{importer.WithPublisher(hub)}
	var archive controllers.ArchiveReader

	minioClient, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("minio connection error", zap.Error(err))
		os.Exit(1)
	}
	if minioClient != nil {
		opts = append(opts, importer.WithArchiver(minioClient))
		archive = minioClient
		logging.AppLogger.Info("archiving imports to minio", zap.String("bucket", cfg.MinIOBucket))
	}

	var completer llm.Completer
	if cfg.OpenAIAPIKey != "" {
		completer = llm.NewGPTClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		logging.AppLogger.Info("model analysis enabled", zap.String("model", cfg.OpenAIModel))
	} else {
		logging.AppLogger.Warn("OPENAI_API_KEY not set, model analysis disabled")
	}

	imp := importer.NewImporter(db.DB, opts...)
	handler := routes.NewRouter(cfg, routes.Controllers{
		Analysis: controllers.NewAnalysisController(db.DB, cfg.InsightsPath),
		Import:   controllers.NewImportController(imp, dao.NewImportRunDAO(db.DB), archive, cfg),
		Health:   controllers.NewHealthController(db),
		LLM:      controllers.NewLLMController(completer, db.DB),
		Hub:      hub,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			os.Exit(1)
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
