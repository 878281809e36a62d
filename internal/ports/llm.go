package ports

import "context"

// InterpretInput holds everything the narrative model needs for one reading.
type InterpretInput struct {
	Question          string
	SpreadName        string
	SpreadDescription string
	Cards             []CardInput
}

// CardInput is a simplified placement for the prompt.
type CardInput struct {
	Position    string
	Prompt      string
	Name        string
	Orientation string
	Keywords    []string
	Meaning     string
}

// CardInsight is the model's message for one placement.
type CardInsight struct {
	Card        string `json:"card" yaml:"card"`
	Position    string `json:"position" yaml:"position"`
	Orientation string `json:"orientation" yaml:"orientation"`
	Message     string `json:"message" yaml:"message"`
}

// InterpretOutput is the structured interpretation returned by the model.
type InterpretOutput struct {
	Summary      string        `json:"summary" yaml:"summary"`
	Tone         string        `json:"tone" yaml:"tone"`
	CardInsights []CardInsight `json:"card_insights" yaml:"card_insights"`
	Model        string        `json:"-" yaml:"-"`
}

// Interpreter turns a reading into narrative text.
type Interpreter interface {
	Interpret(ctx context.Context, in InterpretInput) (InterpretOutput, error)
}
