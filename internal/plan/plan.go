package plan

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies one of the recognized browser action types.
// The set is closed: a step with any other kind fails validation.
type Kind string

const (
	KindNavigate Kind = "navigate"
	KindClick    Kind = "click"
	KindType     Kind = "type"
	KindWait     Kind = "wait"
	KindScroll   Kind = "scroll"
	KindExtract  Kind = "extract"
)

// ParseKind maps a raw kind string (as produced by a model) to a Kind.
// Common aliases are accepted; anything else is rejected.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "navigate", "goto", "open":
		return KindNavigate, nil
	case "click":
		return KindClick, nil
	case "type", "type-text", "type_text", "fill":
		return KindType, nil
	case "wait":
		return KindWait, nil
	case "scroll", "scroll_down", "scroll-down":
		return KindScroll, nil
	case "extract", "read", "content":
		return KindExtract, nil
	}
	return "", fmt.Errorf("unrecognized step kind %q", s)
}

// Step is a single unit of planned work. Target is a descriptive locator
// (visible text, role, or placeholder), not a CSS selector; the browser
// session resolves it against the live page at execution time.
type Step struct {
	Kind   Kind   `json:"kind"`
	Target string `json:"target,omitempty"`
	Value  string `json:"value,omitempty"`
	Order  int    `json:"order"`
}

// URL returns the navigation target for a navigate step. Models put the
// URL in either field, so both are accepted.
func (s Step) URL() string {
	if s.Value != "" {
		return s.Value
	}
	return s.Target
}

// Plan is the ordered, immutable result of interpreting an instruction.
type Plan struct {
	Instruction string
	Persona     string
	Steps       []Step
}

// New validates and normalizes a proposed step sequence into a Plan.
// Steps are sorted by their given order and re-numbered 0..n-1. Any
// unrecognized kind fails the whole plan rather than dropping the step.
func New(instruction, persona string, steps []Step) (*Plan, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("plan has no steps")
	}

	normalized := make([]Step, len(steps))
	copy(normalized, steps)
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Order < normalized[j].Order
	})

	for i := range normalized {
		k, err := ParseKind(string(normalized[i].Kind))
		if err != nil {
			return nil, fmt.Errorf("step %d: %v", i, err)
		}
		normalized[i].Kind = k
		normalized[i].Order = i

		if err := validateStep(normalized[i]); err != nil {
			return nil, fmt.Errorf("step %d: %v", i, err)
		}
	}

	return &Plan{
		Instruction: instruction,
		Persona:     persona,
		Steps:       normalized,
	}, nil
}

func validateStep(s Step) error {
	switch s.Kind {
	case KindNavigate:
		if s.URL() == "" {
			return fmt.Errorf("navigate step has no url")
		}
	case KindClick:
		if s.Target == "" {
			return fmt.Errorf("click step has no target")
		}
	case KindType:
		if s.Target == "" {
			return fmt.Errorf("type step has no target")
		}
		if s.Value == "" {
			return fmt.Errorf("type step has no text value")
		}
	case KindWait, KindScroll, KindExtract:
		// Target and value are optional: a bare wait pauses for a fixed
		// duration, a bare scroll goes to the page bottom, a bare extract
		// reads the whole page.
	}
	return nil
}
