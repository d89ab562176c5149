// Package planner converts free-form operator text into one validated
// tool invocation.
//
// The pipeline is deliberately unforgiving: one outbound generation call,
// no retries, no repair of malformed output. A plan drives a real cluster
// operation, so a response that fails decoding or validation surfaces as
// a typed error for the caller to handle.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clusterpilot/internal/llm"
	"github.com/fyrsmithlabs/clusterpilot/internal/schema"
	"github.com/fyrsmithlabs/clusterpilot/internal/tools"
)

const instrumentationName = "github.com/fyrsmithlabs/clusterpilot/internal/planner"

// Confidence levels the model may report.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Decision is one validated tool invocation. It is advisory: nothing is
// executed until an external executor accepts it.
type Decision struct {
	// ID identifies the decision in logs and traces.
	ID string `json:"id"`

	// Tool is a registry name, verified to resolve.
	Tool string `json:"tool"`

	// Arguments satisfy the tool's argument contract, with declared
	// defaults filled in.
	Arguments map[string]any `json:"arguments"`

	// PresentationHint is how the executor's result should render.
	PresentationHint string `json:"presentation_hint"`

	// NeedsExplanation is set when the operator asked a question rather
	// than issuing a command.
	NeedsExplanation bool `json:"needs_explanation"`

	// Confidence is the model's self-reported certainty.
	Confidence string `json:"confidence"`
}

// decisionShape is the outer contract every plan response must satisfy
// before the chosen tool's own argument shape is checked.
var decisionShape = schema.Shape{Fields: []schema.Field{
	{Name: "tool", Kind: schema.KindString, Required: true},
	{Name: "arguments", Kind: schema.KindObject, Required: true},
	{Name: "presentation_hint", Kind: schema.KindEnum, Required: true,
		Enum: tools.PresentationHints},
	{Name: "needs_explanation", Kind: schema.KindBool, Required: true},
	{Name: "confidence", Kind: schema.KindEnum, Required: true,
		Enum: []string{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}},
}}

// Service plans tool invocations from natural-language requests.
type Service interface {
	// Plan converts one free-text request into one Decision.
	Plan(ctx context.Context, input string) (*Decision, error)

	// Registry exposes the tool catalog for introspection surfaces.
	Registry() *tools.Registry
}

type service struct {
	registry  *tools.Registry
	generator llm.Generator
	logger    *zap.Logger

	tracer      trace.Tracer
	meter       metric.Meter
	planCounter metric.Int64Counter
}

// NewService creates a planning service.
func NewService(registry *tools.Registry, generator llm.Generator, logger *zap.Logger) (Service, error) {
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}
	if generator == nil {
		return nil, errors.New("generator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		registry:  registry,
		generator: generator,
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		meter:     otel.Meter(instrumentationName),
	}

	s.initMetrics()

	return s, nil
}

func (s *service) initMetrics() {
	var err error

	s.planCounter, err = s.meter.Int64Counter(
		"clusterpilot.planner.plans_total",
		metric.WithDescription("Total number of plan requests"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		s.logger.Warn("failed to create plan counter", zap.Error(err))
	}
}

func (s *service) Registry() *tools.Registry {
	return s.registry
}

// Plan runs the full pipeline: prompt, generate, decode, validate,
// resolve. Exactly one outbound call is made and no state survives the
// return.
func (s *service) Plan(ctx context.Context, input string) (*Decision, error) {
	ctx, span := s.tracer.Start(ctx, "planner.plan")
	defer span.End()

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}
	span.SetAttributes(attribute.Int("input_length", len(input)))

	raw, err := s.generator.Generate(ctx, buildPrompt(s.registry, input))
	if err != nil {
		s.recordOutcome(ctx, span, "upstream_error", err)
		return nil, fmt.Errorf("planning request: %w", err)
	}

	cleaned := llm.StripFences(raw)

	var decoded map[string]any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		merr := &MalformedResponseError{Raw: raw, Err: err}
		s.recordOutcome(ctx, span, "malformed_response", merr)
		return nil, merr
	}

	if err := schema.Validate(decoded, decisionShape); err != nil {
		s.recordOutcome(ctx, span, "invalid_decision", err)
		return nil, err
	}

	toolName := decoded["tool"].(string)
	descriptor, err := s.registry.Lookup(toolName)
	if err != nil {
		s.recordOutcome(ctx, span, "unknown_tool", err)
		return nil, err
	}

	args := decoded["arguments"].(map[string]any)
	if err := schema.Validate(args, descriptor.Arguments); err != nil {
		s.recordOutcome(ctx, span, "invalid_arguments", err)
		return nil, fmt.Errorf("arguments for %s: %w", toolName, err)
	}
	args = schema.ApplyDefaults(args, descriptor.Arguments)

	decision := &Decision{
		ID:               uuid.New().String(),
		Tool:             toolName,
		Arguments:        args,
		PresentationHint: decoded["presentation_hint"].(string),
		NeedsExplanation: decoded["needs_explanation"].(bool),
		Confidence:       decoded["confidence"].(string),
	}

	span.SetAttributes(
		attribute.String("tool", decision.Tool),
		attribute.String("confidence", decision.Confidence),
	)
	if s.planCounter != nil {
		s.planCounter.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("outcome", "planned"),
				attribute.String("tool", decision.Tool),
			))
	}

	s.logger.Info("plan decided",
		zap.String("decision_id", decision.ID),
		zap.String("tool", decision.Tool),
		zap.String("confidence", decision.Confidence),
	)

	return decision, nil
}

// recordOutcome marks the span failed and counts the terminal outcome.
func (s *service) recordOutcome(ctx context.Context, span trace.Span, outcome string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.planCounter != nil {
		s.planCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("outcome", outcome)))
	}
	s.logger.Warn("plan rejected",
		zap.String("outcome", outcome),
		zap.Error(err),
	)
}
