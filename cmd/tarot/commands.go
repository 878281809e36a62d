package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randomtoy/tarotteller/internal/adapters/decks"
	"github.com/randomtoy/tarotteller/internal/adapters/llm/openrouter"
	"github.com/randomtoy/tarotteller/internal/app"
	"github.com/randomtoy/tarotteller/internal/catalog"
	"github.com/randomtoy/tarotteller/internal/config"
	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/orientation"
	"github.com/randomtoy/tarotteller/internal/ports"
	"github.com/randomtoy/tarotteller/internal/reading"
	"github.com/randomtoy/tarotteller/internal/render"
	"github.com/randomtoy/tarotteller/internal/spread"
)

type rootOptions struct {
	format  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "tarot",
		Short:         "Draw tarot readings and browse the card catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.format, "format", "text", "output format: text, json or yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newListCmd(opts),
		newInfoCmd(opts),
		newSpreadsCmd(opts),
		newDrawCmd(opts),
	)
	return root
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// service wires an in-process TarotService. interp may be nil.
func (o *rootOptions) service(cmd *cobra.Command, interp ports.Interpreter) (*app.TarotService, error) {
	cat, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger := o.logger(cmd)
	registry := spread.NewRegistry()
	orch := reading.New(registry, orientation.New(), logger)
	return app.NewTarotService(cat, decks.NewStore(cat), registry, orch, interp, "", logger), nil
}

// emit writes v as JSON/YAML, or calls text for the text format.
func (o *rootOptions) emit(w io.Writer, v any, text func() error) error {
	f, err := render.ParseFormat(o.format)
	if err != nil {
		return err
	}
	switch f {
	case render.FormatJSON:
		return render.JSON(w, v)
	case render.FormatYAML:
		return render.YAML(w, v)
	default:
		return text()
	}
}

func newListCmd(root *rootOptions) *cobra.Command {
	var (
		deckID string
		arcana string
		suit   string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards in a deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := domain.Arcana(strings.ToLower(arcana))
			if a != "" && a != domain.Major && a != domain.Minor {
				return fmt.Errorf("--arcana must be major or minor")
			}
			s := domain.Suit(strings.ToLower(suit))
			if s != "" && !slices.Contains(domain.Suits, s) {
				return fmt.Errorf("--suit must be one of wands, cups, swords or pentacles")
			}
			svc, err := root.service(cmd, nil)
			if err != nil {
				return err
			}
			cards, err := svc.ListCards(cmd.Context(), deckID, a, s, limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			return root.emit(w, cards, func() error { return render.CardList(w, deckID, cards) })
		},
	}
	cmd.Flags().StringVar(&deckID, "deck", decks.DefaultID, "card set to list")
	cmd.Flags().StringVar(&arcana, "arcana", "", "filter by arcana: major or minor")
	cmd.Flags().StringVar(&suit, "suit", "", "filter by suit")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of cards (0 lists all)")
	return cmd
}

func newInfoCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <name or id>",
		Short: "Show one card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := root.service(cmd, nil)
			if err != nil {
				return err
			}
			card, err := svc.Card(strings.Join(args, " "))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			return root.emit(w, card, func() error { return render.CardInfo(w, card) })
		},
	}
}

func newSpreadsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "spreads",
		Short: "List the available spreads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := root.service(cmd, nil)
			if err != nil {
				return err
			}
			spreads := svc.Spreads()
			w := cmd.OutOrStdout()
			return root.emit(w, spreads, func() error { return render.Spreads(w, spreads) })
		},
	}
}

type drawOptions struct {
	spread          string
	cards           int
	seed            int64
	orientationSeed int64
	noReversed      bool
	noShuffle       bool
	deckID          string
	question        string
	interpret       bool
}

type drawResult struct {
	Deck           string                 `json:"deck" yaml:"deck"`
	Seed           *int64                 `json:"seed,omitempty" yaml:"seed,omitempty"`
	Question       string                 `json:"question,omitempty" yaml:"question,omitempty"`
	Reading        domain.Reading         `json:"reading" yaml:"reading"`
	Interpretation *ports.InterpretOutput `json:"interpretation,omitempty" yaml:"interpretation,omitempty"`
}

func newDrawCmd(root *rootOptions) *cobra.Command {
	opts := &drawOptions{}
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw a reading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraw(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.spread, "spread", spread.ThreeCard.Key(), "spread to draw")
	f.IntVar(&opts.cards, "cards", 0, "draw N cards without a fixed layout")
	f.Int64Var(&opts.seed, "seed", 0, "shuffle seed, for a reproducible card order")
	f.Int64Var(&opts.orientationSeed, "orientation-seed", 0, "seed for upright/reversed outcomes")
	f.BoolVar(&opts.noReversed, "no-reversed", false, "draw every card upright")
	f.BoolVar(&opts.noShuffle, "no-shuffle", false, "draw from the unshuffled deck")
	f.StringVar(&opts.deckID, "deck", decks.DefaultID, "card set to draw from")
	f.StringVarP(&opts.question, "question", "q", "", "question to ask the cards")
	f.BoolVar(&opts.interpret, "interpret", false, "ask the configured LLM to interpret the reading")
	cmd.MarkFlagsMutuallyExclusive("spread", "cards")
	return cmd
}

func runDraw(cmd *cobra.Command, root *rootOptions, opts *drawOptions) error {
	var interp ports.Interpreter
	if opts.interpret {
		var err error
		if interp, err = interpreterFromEnv(root.logger(cmd)); err != nil {
			return err
		}
	}
	svc, err := root.service(cmd, interp)
	if err != nil {
		return err
	}

	req := app.ReadSpreadRequest{
		Question:      opts.question,
		Spread:        opts.spread,
		DeckID:        opts.deckID,
		Shuffle:       !opts.noShuffle,
		AllowReversed: !opts.noReversed,
		Interpret:     opts.interpret,
	}
	if cmd.Flags().Changed("cards") {
		req.Spread = fmt.Sprint(opts.cards)
	}
	if cmd.Flags().Changed("seed") {
		req.Seed = &opts.seed
	}
	if cmd.Flags().Changed("orientation-seed") {
		req.OrientationSeed = &opts.orientationSeed
	}

	resp, err := svc.ReadSpread(cmd.Context(), req)
	if err != nil {
		return err
	}

	res := drawResult{
		Deck:           resp.DeckID,
		Seed:           resp.Seed,
		Question:       opts.question,
		Reading:        resp.Reading,
		Interpretation: resp.Interpretation,
	}
	w := cmd.OutOrStdout()
	return root.emit(w, res, func() error { return drawText(w, res) })
}

func drawText(w io.Writer, res drawResult) error {
	if res.Question != "" {
		if _, err := fmt.Fprintf(w, "Question: %s\n\n", res.Question); err != nil {
			return err
		}
	}
	if err := render.Text(w, res.Reading); err != nil {
		return err
	}
	if res.Interpretation != nil {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := render.Interpretation(w, *res.Interpretation); err != nil {
			return err
		}
	}
	if res.Seed != nil {
		_, err := fmt.Fprintf(w, "\nseed: %d\n", *res.Seed)
		return err
	}
	return nil
}

// interpreterFromEnv returns nil when no provider is configured; the service
// then reports ErrInterpreterUnavailable.
func interpreterFromEnv(logger *slog.Logger) (ports.Interpreter, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !cfg.InterpretationEnabled() {
		return nil, nil
	}
	return openrouter.NewClient(
		&http.Client{Timeout: cfg.LLMTimeout},
		cfg.OpenRouterAPIKey,
		cfg.OpenRouterBaseURL,
		cfg.LLMModel,
		cfg.LLMFallbackModels,
		logger,
	), nil
}
