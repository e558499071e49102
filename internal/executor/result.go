package executor

import (
	"fmt"
	"strings"
	"time"

	"github.com/rohan/saarthi/internal/plan"
)

// Outcome classifies what happened to a single attempted step.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeElementNotFound Outcome = "element_not_found"
	OutcomeTimeout         Outcome = "timeout"
	OutcomeActionFailure   Outcome = "action_failure"
	OutcomeBlocked         Outcome = "blocked"
)

// Status is the overall verdict for a plan execution.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partially_completed"
	StatusAborted   Status = "aborted"
)

// StepResult records the outcome of one attempted step. Steps that were
// never attempted do not appear in the result at all.
type StepResult struct {
	Order    int           `json:"order"`
	Kind     plan.Kind     `json:"kind"`
	Target   string        `json:"target,omitempty"`
	Outcome  Outcome       `json:"outcome"`
	Detail   string        `json:"detail,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Result summarizes a full plan execution.
type Result struct {
	Instruction string       `json:"instruction"`
	Persona     string       `json:"persona"`
	Status      Status       `json:"status"`
	Reason      string       `json:"reason,omitempty"` // set when aborted before a step
	Steps       []StepResult `json:"steps"`
	TotalSteps  int          `json:"total_steps"`
	StartedAt   time.Time    `json:"started_at"`
	FinishedAt  time.Time    `json:"finished_at"`
}

// Succeeded counts steps that completed successfully.
func (r *Result) Succeeded() int {
	n := 0
	for _, s := range r.Steps {
		if s.Outcome == OutcomeSuccess {
			n++
		}
	}
	return n
}

// Summary renders a short human-readable report, suitable for a chat reply.
func (r *Result) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Status: %s (%d/%d steps)\n", r.Status, r.Succeeded(), r.TotalSteps)
	for _, s := range r.Steps {
		line := fmt.Sprintf("  %d. %s", s.Order, s.Kind)
		if s.Target != "" {
			line += fmt.Sprintf(" %q", s.Target)
		}
		line += fmt.Sprintf(" -> %s", s.Outcome)
		if s.Detail != "" && s.Outcome != OutcomeSuccess {
			line += fmt.Sprintf(" (%s)", s.Detail)
		}
		sb.WriteString(line + "\n")
	}
	if r.Reason != "" {
		fmt.Fprintf(&sb, "  %s\n", r.Reason)
	}
	return strings.TrimRight(sb.String(), "\n")
}
