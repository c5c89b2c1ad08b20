package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/finbot/internal/config"
	"github.com/sandevgo/finbot/internal/core"
	"github.com/sandevgo/finbot/pkg/log"
)

const defaultSessionID = "cli-local"

// ChatEngine mirrors the transport-facing engine contract.
type ChatEngine interface {
	HandleTurn(ctx context.Context, sessionID, message string) core.Reply
}

type ReadLine struct {
	cfg    *config.AppConfig
	engine ChatEngine
	rl     *readline.Instance
}

func NewReadLine(engine ChatEngine, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     cfg.GetInputHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:    cfg,
		engine: engine,
		rl:     rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		reply := r.engine.HandleTurn(ctx, defaultSessionID, line)
		fmt.Fprintf(r.rl.Stdout(), "%s\n", reply.Text)
		if reply.Image != "" {
			fmt.Fprintf(r.rl.Stdout(), "[chart] %s\n", reply.Image)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
