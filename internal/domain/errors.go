package domain

import "errors"

// Sentinel errors. Check with errors.Is; callers wrap them with context.
var (
	ErrUnknownSpread      = errors.New("tarot: unknown spread")
	ErrInsufficientCards  = errors.New("tarot: not enough cards remaining in deck")
	ErrInvalidCardCount   = errors.New("tarot: invalid card count")
	ErrCardNotFound       = errors.New("tarot: card not found")
	ErrDuplicateCard      = errors.New("tarot: duplicate card in deck")
	ErrDuplicateSpread    = errors.New("tarot: spread already registered")
	ErrInvalidSpread      = errors.New("tarot: invalid spread definition")
	ErrDeckNotFound       = errors.New("tarot: deck not found")
	ErrSeedWithoutShuffle = errors.New("tarot: seed given for an unshuffled deck")

	ErrUpstreamLLM            = errors.New("tarot: upstream LLM failure")
	ErrInvalidLLMJSON         = errors.New("tarot: LLM returned invalid JSON after retry")
	ErrInterpreterUnavailable = errors.New("tarot: no interpreter configured")
	ErrQuestionRequired       = errors.New("tarot: interpretation requires a question")
)
