package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rohan/saarthi/internal/observability"
	"github.com/rohan/saarthi/internal/plan"
	"github.com/tmc/langchaingo/llms"
)

// InterpretationError means the model produced no usable plan: a refusal,
// malformed output, an empty step list, or an unrecognized step kind.
// It is never retried here; retry policy belongs to the caller.
type InterpretationError struct {
	Reason string
	Raw    string
}

func (e *InterpretationError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("interpretation failed: %s (model output: %.200s)", e.Reason, e.Raw)
	}
	return fmt.Sprintf("interpretation failed: %s", e.Reason)
}

// Planner turns an instruction into a validated plan.
type Planner interface {
	Interpret(ctx context.Context, instruction string, persona Persona) (*plan.Plan, error)
}

// Interpreter asks a language model to translate an instruction into an
// ordered action plan via a propose_plan function call.
type Interpreter struct {
	Model  llms.Model
	Logger *observability.Logger
}

func New(model llms.Model, logger *observability.Logger) *Interpreter {
	return &Interpreter{Model: model, Logger: logger}
}

func (i *Interpreter) Interpret(ctx context.Context, instruction string, persona Persona) (*plan.Plan, error) {
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(persona.PromptPrefix() + "\n\n" + stepCatalogPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(instruction),
			},
		},
	}

	tools := []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "propose_plan",
				Description: "Submit the ordered plan of web actions for the instruction.",
				Parameters:  proposePlanParameters(),
			},
		},
	}

	resp, err := i.Model.GenerateContent(ctx, messages, llms.WithTools(tools))
	if err != nil {
		return nil, fmt.Errorf("language model request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, &InterpretationError{Reason: "model returned no choices"}
	}

	choice := resp.Choices[0]
	i.Logger.LogLLM("interpreter", "", instruction, choice.Content, choice.ToolCalls)

	steps, raw, err := extractSteps(choice)
	if err != nil {
		return nil, err
	}

	p, err := plan.New(instruction, string(persona), steps)
	if err != nil {
		return nil, &InterpretationError{Reason: err.Error(), Raw: raw}
	}
	return p, nil
}

type proposedPlan struct {
	Steps []plan.Step `json:"steps"`
}

func extractSteps(choice *llms.ContentChoice) ([]plan.Step, string, error) {
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil || tc.FunctionCall.Name != "propose_plan" {
			continue
		}
		var pp proposedPlan
		if err := json.Unmarshal([]byte(tc.FunctionCall.Arguments), &pp); err != nil {
			return nil, tc.FunctionCall.Arguments, &InterpretationError{
				Reason: fmt.Sprintf("failed to parse propose_plan arguments: %v", err),
				Raw:    tc.FunctionCall.Arguments,
			}
		}
		return pp.Steps, tc.FunctionCall.Arguments, nil
	}

	// Some models answer with a bare JSON object instead of calling the
	// function. Accept that; anything else is a refusal.
	content := strings.TrimSpace(choice.Content)
	if body, ok := findJSONObject(content); ok {
		var pp proposedPlan
		if err := json.Unmarshal([]byte(body), &pp); err == nil {
			return pp.Steps, content, nil
		}
	}

	return nil, content, &InterpretationError{
		Reason: "model returned no plan",
		Raw:    content,
	}
}

// findJSONObject strips markdown fences and returns the outermost {...}
// span, if any.
func findJSONObject(s string) (string, bool) {
	s = strings.TrimPrefix(s, "```json")
	s = strings.Trim(s, "` \n")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
