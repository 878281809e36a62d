package http

import (
	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/ports"
)

// ReadingResponse is the JSON shape returned by GET /v1/readings.
type ReadingResponse struct {
	Spread         SpreadResponse      `json:"spread"`
	Deck           string              `json:"deck"`
	Seed           *int64              `json:"seed,omitempty"`
	Placements     []PlacementResponse `json:"placements"`
	Interpretation *InterpretationResp `json:"interpretation,omitempty"`
	Meta           MetaResp            `json:"meta"`
}

type SpreadResponse struct {
	Key         string             `json:"key"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Positions   []PositionResponse `json:"positions,omitempty"`
}

type PositionResponse struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

type PlacementResponse struct {
	Position    int                `json:"position"`
	Title       string             `json:"title"`
	Prompt      string             `json:"prompt"`
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Orientation domain.Orientation `json:"orientation"`
	Keywords    []string           `json:"keywords"`
	Meaning     string             `json:"meaning"`
}

type CardResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Arcana   string   `json:"arcana"`
	Suit     string   `json:"suit,omitempty"`
	Number   int      `json:"number"`
	Keywords []string `json:"keywords"`
	Upright  string   `json:"upright"`
	Reversed string   `json:"reversed"`
}

type CardListResponse struct {
	Deck  string         `json:"deck"`
	Count int            `json:"count"`
	Cards []CardResponse `json:"cards"`
}

type InterpretationResp struct {
	Summary      string              `json:"summary"`
	Tone         string              `json:"tone"`
	CardInsights []ports.CardInsight `json:"card_insights"`
}

type MetaResp struct {
	Model     string `json:"model,omitempty"`
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toCardResponse(c domain.Card) CardResponse {
	return CardResponse{
		ID:       c.ID,
		Name:     c.Name,
		Arcana:   string(c.Arcana),
		Suit:     string(c.Suit),
		Number:   c.Number,
		Keywords: c.Keywords,
		Upright:  c.Upright,
		Reversed: c.Reversed,
	}
}

func toSpreadResponse(s domain.Spread, withPositions bool) SpreadResponse {
	out := SpreadResponse{Key: s.Key, Name: s.Name, Description: s.Description}
	if !withPositions {
		return out
	}
	out.Positions = make([]PositionResponse, len(s.Positions))
	for i, p := range s.Positions {
		out.Positions[i] = PositionResponse{Index: p.Index, Title: p.Title, Prompt: p.Prompt}
	}
	return out
}
