package chatbot

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sandevgo/finbot/internal/config"
	"github.com/sandevgo/finbot/internal/core"
	"github.com/sandevgo/finbot/internal/providers/dataset"
	"github.com/sandevgo/finbot/internal/service/nlu"
	"github.com/sandevgo/finbot/pkg/log"
)

const rejectReply = "Sorry, I could not understand that. Try a short question like 'revenue in 2023'."

// Renderer draws a chart for a series result. The engine only calls it
// with two or more points.
type Renderer interface {
	RenderSeries(ctx context.Context, company, metric string, points []core.Point) (string, error)
}

// Engine is the rule-based dispatch core: extract entities, match an
// intent, execute it against the dataset, format a reply and record the
// turn. One call per message, synchronous end to end.
type Engine struct {
	cfg       *config.AppConfig
	ds        *dataset.Dataset
	extractor *nlu.Extractor
	sessions  core.SessionRepository
	renderer  Renderer
}

func NewEngine(
	cfg *config.AppConfig,
	ds *dataset.Dataset,
	extractor *nlu.Extractor,
	sessions core.SessionRepository,
	renderer Renderer,
) *Engine {
	return &Engine{
		cfg:       cfg,
		ds:        ds,
		extractor: extractor,
		sessions:  sessions,
		renderer:  renderer,
	}
}

// HandleTurn answers one message. It never fails: malformed, oversized
// or unanswerable input all come back as a reply string. An empty or
// unknown session id starts a fresh session whose id is returned with
// the reply.
func (e *Engine) HandleTurn(ctx context.Context, sessionID, message string) core.Reply {
	logger := log.FromCtx(ctx)

	if sessionID == "" {
		sessionID = uuid.NewString()
		logger.Debug().Str("session", sessionID).Msg("new session")
	}

	message = strings.TrimSpace(message)
	if message == "" || len(message) > e.cfg.MaxMessageLen {
		logger.Debug().Int("len", len(message)).Msg("rejecting empty or oversized message")
		return core.Reply{SessionID: sessionID, Text: rejectReply}
	}

	prev, err := e.sessions.LastTurn(ctx, sessionID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load previous turn")
	}
	var prevEntities *core.Entities
	if prev != nil {
		prevEntities = &prev.Entities
	}

	entities := e.extractor.Extract(message, prevEntities)
	intent := nlu.MatchIntent(message, entities)
	result := execute(e.ds, intent, entities)
	text := formatResult(result)

	logger.Info().
		Str("session", sessionID).
		Stringer("intent", intent).
		Str("metric", entities.Metric).
		Ints("years", entities.Years).
		Msg("turn handled")

	reply := core.Reply{SessionID: sessionID, Text: text}
	if result.Kind == core.ResultSeries && len(result.Points) >= 2 && e.renderer != nil {
		ref, err := e.renderer.RenderSeries(ctx, result.Company, result.Metric, result.Points)
		if err != nil {
			logger.Warn().Err(err).Msg("chart render failed, replying text-only")
		} else {
			reply.Image = ref
		}
	}

	turn := core.Turn{
		Message:  message,
		Intent:   intent,
		Entities: entities,
		Reply:    text,
	}
	if err := e.sessions.Append(ctx, sessionID, turn); err != nil {
		logger.Error().Err(err).Msg("failed to record turn")
	}

	return reply
}
