package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/tarotteller/internal/app"
	"github.com/randomtoy/tarotteller/internal/domain"
)

const (
	defaultSpread     = "three_card"
	maxQuestionLength = 800
)

// Defaults are applied to reading requests that leave a parameter unset.
type Defaults struct {
	DeckID        string
	AllowReversed bool
	Shuffle       bool
}

type Handler struct {
	svc      *app.TarotService
	defaults Defaults
	logger   *slog.Logger
}

func NewHandler(svc *app.TarotService, defaults Defaults, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, defaults: defaults, logger: logger}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	v1 := e.Group("/v1")
	v1.GET("/cards", h.ListCards)
	v1.GET("/cards/:id", h.GetCard)
	v1.GET("/spreads", h.ListSpreads)
	v1.GET("/readings", h.ReadSpread)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListCards(c echo.Context) error {
	arcana := domain.Arcana(c.QueryParam("arcana"))
	if arcana != "" && arcana != domain.Major && arcana != domain.Minor {
		return badRequest(c, "arcana must be major or minor")
	}
	suit := domain.Suit(c.QueryParam("suit"))
	if suit != "" && !slices.Contains(domain.Suits, suit) {
		return badRequest(c, "suit must be one of wands, cups, swords, pentacles")
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return badRequest(c, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	deckID := c.QueryParam("deck")
	if deckID == "" {
		deckID = h.defaults.DeckID
	}

	cards, err := h.svc.ListCards(c.Request().Context(), deckID, arcana, suit, limit)
	if err != nil {
		return h.mapError(c, err)
	}

	out := CardListResponse{Deck: deckID, Count: len(cards), Cards: make([]CardResponse, len(cards))}
	for i, card := range cards {
		out.Cards[i] = toCardResponse(card)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCard(c echo.Context) error {
	card, err := h.svc.Card(c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toCardResponse(card))
}

func (h *Handler) ListSpreads(c echo.Context) error {
	spreads := h.svc.Spreads()
	out := make([]SpreadResponse, len(spreads))
	for i, s := range spreads {
		out[i] = toSpreadResponse(s, true)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ReadSpread(c echo.Context) error {
	q := c.QueryParam("q")
	if utf8.RuneCountInString(q) > maxQuestionLength {
		return badRequest(c, fmt.Sprintf("q must be at most %d characters", maxQuestionLength))
	}

	req := app.ReadSpreadRequest{
		Question:      q,
		Spread:        c.QueryParam("spread"),
		DeckID:        c.QueryParam("deck"),
		Shuffle:       h.defaults.Shuffle,
		AllowReversed: h.defaults.AllowReversed,
	}
	if req.Spread == "" {
		req.Spread = defaultSpread
	}
	if req.DeckID == "" {
		req.DeckID = h.defaults.DeckID
	}

	var err error
	if req.Seed, err = int64Param(c, "seed"); err != nil {
		return badRequest(c, err.Error())
	}
	if req.OrientationSeed, err = int64Param(c, "orientation_seed"); err != nil {
		return badRequest(c, err.Error())
	}
	if err = boolParam(c, "reversed", &req.AllowReversed); err != nil {
		return badRequest(c, err.Error())
	}
	if err = boolParam(c, "shuffle", &req.Shuffle); err != nil {
		return badRequest(c, err.Error())
	}
	if err = boolParam(c, "interpret", &req.Interpret); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.svc.ReadSpread(c.Request().Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}

	requestID, _ := c.Get("request_id").(string)

	return c.JSON(http.StatusOK, toResponse(resp, requestID))
}

func int64Param(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

// boolParam overwrites *dst only when the parameter is present.
func boolParam(c echo.Context, name string, dst *bool) error {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s must be a boolean", name)
	}
	*dst = v
	return nil
}

func toResponse(r app.ReadSpreadResponse, requestID string) ReadingResponse {
	placements := make([]PlacementResponse, len(r.Reading.Placements))
	for i, p := range r.Reading.Placements {
		placements[i] = PlacementResponse{
			Position:    p.Position.Index,
			Title:       p.Position.Title,
			Prompt:      p.Position.Prompt,
			ID:          p.Card.ID,
			Name:        p.Card.Name,
			Orientation: p.Orientation,
			Keywords:    p.Card.Keywords,
			Meaning:     p.Meaning(),
		}
	}
	out := ReadingResponse{
		Spread:     toSpreadResponse(r.Reading.Spread, false),
		Deck:       r.DeckID,
		Seed:       r.Seed,
		Placements: placements,
		Meta: MetaResp{
			Model:     r.Model,
			RequestID: requestID,
			LatencyMS: r.LatencyMS,
		},
	}
	if r.Interpretation != nil {
		out.Interpretation = &InterpretationResp{
			Summary:      r.Interpretation.Summary,
			Tone:         r.Interpretation.Tone,
			CardInsights: r.Interpretation.CardInsights,
		}
	}
	return out
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func (h *Handler) mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrDeckNotFound),
		errors.Is(err, domain.ErrUnknownSpread),
		errors.Is(err, domain.ErrCardNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCardCount),
		errors.Is(err, domain.ErrInsufficientCards),
		errors.Is(err, domain.ErrQuestionRequired),
		errors.Is(err, domain.ErrSeedWithoutShuffle):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInterpreterUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstreamLLM), errors.Is(err, domain.ErrInvalidLLMJSON):
		h.logger.ErrorContext(c.Request().Context(), "upstream LLM failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream LLM failure"})
	default:
		h.logger.ErrorContext(c.Request().Context(), "internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
