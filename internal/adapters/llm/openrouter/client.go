package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/ports"
)

const (
	defaultTone       = "balanced"
	maxQuestionLength = 800
)

// Client implements ports.Interpreter via the OpenRouter API.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Interpret(ctx context.Context, in ports.InterpretInput) (ports.InterpretOutput, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	in.Question = sanitize(in.Question)

	var lastErr error
	for _, model := range models {
		out, err := c.interpretWithModel(ctx, in, model)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}

	return ports.InterpretOutput{}, lastErr
}

func (c *Client) interpretWithModel(ctx context.Context, in ports.InterpretInput, model string) (ports.InterpretOutput, error) {
	userPrompt := buildUserPrompt(in)

	content, err := c.callLLM(ctx, model, systemPrompt, userPrompt)
	if err != nil {
		return ports.InterpretOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	out, err := parseOutput(content)
	if err != nil {
		c.logger.WarnContext(ctx, "LLM returned unusable JSON, retrying", "model", model, "error", err)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content))
		if err != nil {
			return ports.InterpretOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
		}
		if out, err = parseOutput(content); err != nil {
			return ports.InterpretOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
		}
	}
	out.Model = model

	return out, nil
}

// parseOutput decodes and validates the model's JSON. Missing positions and
// orientations are filled in the way the prompt numbered them.
func parseOutput(content string) (ports.InterpretOutput, error) {
	var out ports.InterpretOutput
	if err := json.Unmarshal([]byte(stripFences(content)), &out); err != nil {
		return ports.InterpretOutput{}, err
	}

	out.Summary = strings.TrimSpace(out.Summary)
	if out.Summary == "" {
		return ports.InterpretOutput{}, errors.New("missing summary")
	}
	out.Tone = strings.TrimSpace(out.Tone)
	if out.Tone == "" {
		out.Tone = defaultTone
	}
	if len(out.CardInsights) == 0 {
		return ports.InterpretOutput{}, errors.New("missing card_insights")
	}

	for i := range out.CardInsights {
		ci := &out.CardInsights[i]
		ci.Card = strings.TrimSpace(ci.Card)
		ci.Message = strings.TrimSpace(ci.Message)
		if ci.Card == "" {
			return ports.InterpretOutput{}, fmt.Errorf("card insight %d missing card name", i+1)
		}
		if ci.Message == "" {
			return ports.InterpretOutput{}, fmt.Errorf("card insight %d missing message", i+1)
		}
		if ci.Position == "" {
			ci.Position = fmt.Sprintf("Card %d", i+1)
		}
		if ci.Orientation = strings.TrimSpace(ci.Orientation); ci.Orientation == "" {
			ci.Orientation = string(domain.Upright)
		}
	}
	return out, nil
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeRunes   = regexp.MustCompile("[<>`]+")
)

// sanitize collapses whitespace, drops markup characters and caps the length
// of free text that ends up in a prompt.
func sanitize(s string) string {
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	s = unsafeRunes.ReplaceAllString(s, "")
	if r := []rune(s); len(r) > maxQuestionLength {
		s = string(r[:maxQuestionLength])
	}
	return s
}

// stripFences removes a ```json ... ``` wrapper some models add despite
// being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

const outputSchema = `{
  "summary": "<overall narrative>",
  "tone": "balanced",
  "card_insights": [
    {"card": "<card name>", "position": "<position title>", "orientation": "upright|reversed", "message": "<guidance>"}
  ]
}`

var systemPrompt = `You are Tarot Teller, an expert tarot reader who writes grounded, compassionate interpretations that align with the supplied card meanings.

Rules:
- Weave the querent's question together with every card drawn.
- Give one card insight per position, in the order given.
- Each card insight must focus on actionable guidance.
- Never provide medical, legal, or financial advice.
- Never predict specific outcomes or guarantee results.

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
` + outputSchema

func buildUserPrompt(in ports.InterpretInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", in.Question)
	fmt.Fprintf(&b, "Spread: %s\n", strings.TrimSpace(in.SpreadName+" - "+in.SpreadDescription))
	b.WriteString("\nCards and positions:\n")

	for _, card := range in.Cards {
		fmt.Fprintf(&b, "- %s: %s (%s) | prompt: %s | keywords: %s\n",
			card.Position, card.Name, card.Orientation, sanitize(card.Prompt), strings.Join(card.Keywords, ", "))
		fmt.Fprintf(&b, "    Meaning: %s\n", card.Meaning)
	}

	b.WriteString("\nProvide the interpretation as a single JSON object.")
	return b.String()
}

func retryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not usable. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
%s`, badJSON, outputSchema)
}
