package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/finbot/internal/config"
	"github.com/sandevgo/finbot/internal/providers/dataset"
	"github.com/sandevgo/finbot/internal/providers/plot"
	"github.com/sandevgo/finbot/internal/service/chatbot"
	"github.com/sandevgo/finbot/internal/service/nlu"
	"github.com/sandevgo/finbot/internal/storage/memstore"
	"github.com/sandevgo/finbot/internal/transport/cli"
	"github.com/sandevgo/finbot/internal/transport/httpd"
	"github.com/sandevgo/finbot/pkg/log"
	"github.com/sandevgo/finbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Metric synonym dictionary
	dict := nlu.DefaultDictionary()
	if appCfg.SynonymsPath != "" {
		var err error
		dict, err = nlu.LoadDictionary(appCfg.SynonymsPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load synonym dictionary")
		}
	}

	// 3. Dataset, fatal on failure: the bot must not serve without data
	ds, err := dataset.Load(ctx, appCfg.DatasetPath, dict)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load dataset")
	}

	// 4. Chart renderer
	renderer, err := plot.NewRenderer(appCfg.PlotsDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize chart renderer")
	}

	// 5. Session store + engine
	sessions := memstore.New(appCfg.HistoryLimit)
	engine := chatbot.NewEngine(
		appCfg,
		ds,
		nlu.NewExtractor(dict, ds.Companies()),
		sessions,
		renderer,
	)

	// 6. Transports
	if appCfg.EnableHTTP {
		services = append(services, httpd.NewServer(appCfg, engine))
	}
	if appCfg.EnableCLI {
		rl, err := cli.NewReadLine(engine, appCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize CLI transport")
		}
		services = append(services, rl)
	}

	if len(services) == 0 {
		logger.Fatal().Msg("no transports enabled, set ENABLE_HTTP or ENABLE_CLI")
	}

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
