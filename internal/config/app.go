package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/finbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"FINBOT_RUNTIME_PATH" envDefault:".finbot"`

	// Dataset file and optional metric synonym override
	DatasetPath  string `env:"FINBOT_DATASET" envDefault:"data/financials.csv"`
	SynonymsPath string `env:"FINBOT_SYNONYMS"`

	// Where rendered charts land on disk
	PlotsDir string `env:"FINBOT_PLOTS_DIR" envDefault:"static/plots"`

	// Transport Flags
	EnableHTTP bool   `env:"ENABLE_HTTP" envDefault:"true"`
	EnableCLI  bool   `env:"ENABLE_CLI" envDefault:"false"`
	ListenAddr string `env:"FINBOT_LISTEN_ADDR" envDefault:":5000"`

	// Conversation Management
	HistoryLimit  int `env:"HISTORY_LIMIT" envDefault:"20"`
	MaxMessageLen int `env:"MAX_MESSAGE_LEN" envDefault:"1000"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetInputHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}
