package veolink

import (
	"context"
	"errors"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/adforge/adforge/internal/veolink/driver"
)

// Fixed fallback values for the advisory operations. These paths degrade
// silently instead of interrupting the user.
const (
	DefaultActionSuggestion = "Entra na cena sorrindo."
	extraPromptEmptyReply   = "Erro na geração."
	extraPromptTransport    = "Erro de conexão."
)

// GenerationFailedMessage is the single user-facing failure message of a
// full generation. Raw backend errors are never surfaced.
const GenerationFailedMessage = "FALHA NA SINCRONIZAÇÃO DOS LOCKS. TENTE REDUZIR O TEXTO DAS ESPECIFICAÇÕES."

// Temperatures per operation; passed through to the driver unchanged.
const (
	fullGenerationTemperature   = 0.7
	actionSuggestionTemperature = 0.7
	extraPromptTemperature      = 0.8
)

const (
	defaultTimeout = 60 * time.Second
	maxTimeout     = 5 * time.Minute
)

// GenerationFailedError is the only error GeneratePrompts returns. It
// carries a fixed guidance message; the wrapped cause is for logs only.
type GenerationFailedError struct {
	Err error
}

func (e *GenerationFailedError) Error() string { return GenerationFailedMessage }

func (e *GenerationFailedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Service composes the prompt compiler, a completion driver, and the
// reconciler into the three public generation operations. It holds no
// mutable state between calls and is safe for concurrent use; callers that
// need serialization (e.g. a submit button) provide it themselves.
type Service struct {
	Driver  driver.Driver
	Model   string
	Timeout time.Duration
	Logger  *logging.Logger
}

// NewService wires a façade over the given driver and model.
func NewService(drv driver.Driver, model string, logger *logging.Logger) *Service {
	return &Service{Driver: drv, Model: model, Logger: logger}
}

// GeneratePrompts runs a full generation: compile, one driver call,
// reconcile. Any internal failure — transport, empty reply, malformed or
// schema-violating payload — is normalized into a GenerationFailedError;
// callers never need to distinguish the stages.
func (s *Service) GeneratePrompts(ctx context.Context, cfg ProductConfig) (*PromptResponse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	instruction, schema := CompileFullInstruction(cfg)
	raw, err := s.complete(ctx, &driver.Request{
		Model:  s.Model,
		System: instruction,
		User:   CompileUserPrompt(cfg),
		ResponseFormat: &driver.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: &driver.JSONSchema{Name: "prompt_strategies", Strict: true, Schema: schema},
		},
		Temperature: temperature(fullGenerationTemperature),
	})
	if err != nil {
		s.logFailure("full generation failed", cfg.ProductName, err)
		return nil, &GenerationFailedError{Err: err}
	}

	resp, err := ReconcileStrategies(raw)
	if err != nil {
		s.logFailure("full generation reply rejected", cfg.ProductName, err)
		return nil, &GenerationFailedError{Err: err}
	}
	return resp, nil
}

// GenerateActionSuggestion produces a short action description for the
// product. It always returns a usable string: any failure yields the fixed
// default suggestion.
func (s *Service) GenerateActionSuggestion(ctx context.Context, productName, productType, features string) string {
	raw, err := s.complete(ctx, &driver.Request{
		Model:       s.Model,
		System:      CompileActionSuggestionInstruction(productName, productType, features),
		Temperature: temperature(actionSuggestionTemperature),
	})
	if err != nil {
		s.logFailure("action suggestion failed", productName, err)
		return DefaultActionSuggestion
	}
	return ReconcileText(raw, DefaultActionSuggestion)
}

// GenerateExtraPrompt produces a single ad-hoc prompt block from a free-form
// user request. It always returns a string; transport failures and empty
// replies map to fixed placeholders.
func (s *Service) GenerateExtraPrompt(ctx context.Context, productName, features, userRequest string) string {
	raw, err := s.complete(ctx, &driver.Request{
		Model:       s.Model,
		System:      CompileExtraPromptInstruction(productName, features, userRequest),
		Temperature: temperature(extraPromptTemperature),
	})
	if err != nil {
		s.logFailure("extra prompt failed", productName, err)
		if errors.Is(err, ErrEmptyReply) {
			return extraPromptEmptyReply
		}
		return extraPromptTransport
	}
	return ReconcileText(raw, extraPromptEmptyReply)
}

// complete performs the single driver call of an operation. Empty reply
// text is a failure here so every operation sees one uniform error path.
func (s *Service) complete(ctx context.Context, req *driver.Request) (string, error) {
	if s == nil || s.Driver == nil {
		return "", errors.New("completion driver not configured")
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if timeout > maxTimeout {
		timeout = maxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.Driver.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Text == "" {
		return "", ErrEmptyReply
	}
	return resp.Text, nil
}

func (s *Service) logFailure(msg, productName string, err error) {
	if s == nil || s.Logger == nil {
		return
	}
	s.Logger.Warn(msg,
		zap.String("product", productName),
		zap.String("driver", s.driverName()),
		zap.Error(err))
}

func (s *Service) driverName() string {
	if s.Driver == nil {
		return ""
	}
	return s.Driver.Name()
}

func temperature(v float64) *float64 { return &v }
