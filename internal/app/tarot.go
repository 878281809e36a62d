package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/randomtoy/tarotteller/internal/catalog"
	"github.com/randomtoy/tarotteller/internal/deck"
	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/ports"
	"github.com/randomtoy/tarotteller/internal/random"
	"github.com/randomtoy/tarotteller/internal/reading"
	"github.com/randomtoy/tarotteller/internal/spread"
	"github.com/randomtoy/tarotteller/internal/tracing"
)

// ReadSpreadRequest is the application-level input (no HTTP types).
type ReadSpreadRequest struct {
	Question string
	// Spread is a registry key or a positive card count.
	Spread          string
	DeckID          string
	Shuffle         bool
	Seed            *int64
	OrientationSeed *int64
	AllowReversed   bool
	Interpret       bool
}

// ReadSpreadResponse is the application-level output.
type ReadSpreadResponse struct {
	DeckID  string
	Reading domain.Reading
	// Seed is the shuffle seed actually used, so any reading can be replayed.
	// Nil when the deck was not shuffled.
	Seed           *int64
	Interpretation *ports.InterpretOutput
	Model          string
	LatencyMS      int64
}

// TarotService wires card sets, decks, the reading orchestrator and the
// optional interpreter. Each reading gets its own deck; the orchestrator's
// orientation stream is shared and guarded by mu.
type TarotService struct {
	catalog     *catalog.Catalog
	cardSets    ports.CardSetStore
	registry    *spread.Registry
	interpreter ports.Interpreter
	model       string
	logger      *slog.Logger

	mu           sync.Mutex
	orchestrator *reading.Orchestrator
}

// NewTarotService builds the service. interp may be nil, in which case
// interpretation requests fail with ErrInterpreterUnavailable.
func NewTarotService(cat *catalog.Catalog, sets ports.CardSetStore, registry *spread.Registry, orch *reading.Orchestrator, interp ports.Interpreter, model string, logger *slog.Logger) *TarotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TarotService{
		catalog:      cat,
		cardSets:     sets,
		registry:     registry,
		orchestrator: orch,
		interpreter:  interp,
		model:        model,
		logger:       logger,
	}
}

func (s *TarotService) ReadSpread(ctx context.Context, req ReadSpreadRequest) (resp ReadSpreadResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "TarotService.ReadSpread")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("tarot.spread", req.Spread),
		attribute.String("tarot.deck", req.DeckID),
		attribute.Bool("tarot.interpret", req.Interpret),
	)

	if req.Interpret {
		if s.interpreter == nil {
			return ReadSpreadResponse{}, domain.ErrInterpreterUnavailable
		}
		if strings.TrimSpace(req.Question) == "" {
			return ReadSpreadResponse{}, domain.ErrQuestionRequired
		}
	}

	if req.Seed != nil && !req.Shuffle {
		return ReadSpreadResponse{}, domain.ErrSeedWithoutShuffle
	}

	sel, err := spread.ParseSelector(req.Spread)
	if err != nil {
		return ReadSpreadResponse{}, fmt.Errorf("parse spread: %w", err)
	}

	set, err := s.cardSets.GetCardSet(ctx, req.DeckID)
	if err != nil {
		return ReadSpreadResponse{}, fmt.Errorf("get card set: %w", err)
	}

	d, err := deck.New(set.Cards)
	if err != nil {
		return ReadSpreadResponse{}, fmt.Errorf("build deck: %w", err)
	}

	var usedSeed *int64
	if req.Shuffle {
		seed := random.MustSeed()
		if req.Seed != nil {
			seed = *req.Seed
		}
		d.ResetWithSeed(seed)
		usedSeed = &seed
	}

	opts := []reading.Option{reading.WithReversed(req.AllowReversed)}
	if req.OrientationSeed != nil {
		opts = append(opts, reading.WithOrientationSeed(*req.OrientationSeed))
	}

	s.mu.Lock()
	rd, err := s.orchestrator.DrawSpread(d, sel, opts...)
	s.mu.Unlock()
	if err != nil {
		return ReadSpreadResponse{}, fmt.Errorf("draw spread: %w", err)
	}
	span.SetAttributes(attribute.Int("tarot.cards", rd.Len()))

	resp = ReadSpreadResponse{
		DeckID:  set.ID,
		Reading: rd,
		Seed:    usedSeed,
	}
	if !req.Interpret {
		return resp, nil
	}

	start := time.Now()
	interpretation, err := s.interpreter.Interpret(ctx, toInterpretInput(req.Question, rd))
	resp.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		return ReadSpreadResponse{}, fmt.Errorf("interpret: %w", err)
	}

	resp.Interpretation = &interpretation
	resp.Model = interpretationModel(interpretation.Model, s.model)
	s.logger.DebugContext(ctx, "reading interpreted", "spread", rd.Spread.Key, "model", resp.Model, "latency_ms", resp.LatencyMS)
	return resp, nil
}

// ListCards returns cards from a card set, optionally filtered by arcana and
// suit. A non-positive limit means no limit.
func (s *TarotService) ListCards(ctx context.Context, deckID string, arcana domain.Arcana, suit domain.Suit, limit int) ([]domain.Card, error) {
	set, err := s.cardSets.GetCardSet(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("get card set: %w", err)
	}
	return domain.FilterCards(set.Cards, arcana, suit, limit), nil
}

// Card looks a card up by canonical ID or display name.
func (s *TarotService) Card(idOrName string) (domain.Card, error) {
	return s.catalog.Lookup(idOrName)
}

// Spreads lists the registered spreads.
func (s *TarotService) Spreads() []domain.Spread {
	return s.registry.Spreads()
}

// CardSets lists the card-set IDs readings can draw from.
func (s *TarotService) CardSets(ctx context.Context) []string {
	return s.cardSets.ListCardSets(ctx)
}

func interpretationModel(fromLLM, fallback string) string {
	if fromLLM != "" {
		return fromLLM
	}
	return fallback
}

func toInterpretInput(question string, r domain.Reading) ports.InterpretInput {
	cards := make([]ports.CardInput, len(r.Placements))
	for i, p := range r.Placements {
		cards[i] = ports.CardInput{
			Position:    p.Position.Title,
			Prompt:      p.Position.Prompt,
			Name:        p.Card.Name,
			Orientation: string(p.Orientation),
			Keywords:    p.Card.Keywords,
			Meaning:     p.Meaning(),
		}
	}
	return ports.InterpretInput{
		Question:          question,
		SpreadName:        r.Spread.Name,
		SpreadDescription: r.Spread.Description,
		Cards:             cards,
	}
}
