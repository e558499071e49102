package agent

import (
	"context"
	"log"

	"github.com/rohan/saarthi/internal/executor"
	"github.com/rohan/saarthi/internal/governance"
	"github.com/rohan/saarthi/internal/interpreter"
	"github.com/rohan/saarthi/internal/observability"
	"github.com/rohan/saarthi/internal/plan"
)

// Runner wires interpretation and execution into the single caller-facing
// operation: instruction in, execution result out. It holds no state
// across invocations beyond the shared browser session; only one plan
// executes against that session at a time.
type Runner struct {
	Planner interpreter.Planner
	Session executor.Session
	Policy  governance.PolicyEngine
	History RunHistory
	Logger  *observability.Logger
	Source  string
}

// RunHistory records finished runs. Persistence is best-effort; a failed
// write never fails the run.
type RunHistory interface {
	SaveRun(res *executor.Result) (int64, error)
}

func NewRunner(planner interpreter.Planner, session executor.Session, policy governance.PolicyEngine, history RunHistory, logger *observability.Logger, source string) *Runner {
	return &Runner{
		Planner: planner,
		Session: session,
		Policy:  policy,
		History: history,
		Logger:  logger,
		Source:  source,
	}
}

// Run interprets the instruction under the given persona tag and replays
// the resulting plan against the browser session. Interpretation failures
// surface as errors; execution failures surface inside the result.
func (r *Runner) Run(ctx context.Context, instruction, personaTag string) (*executor.Result, error) {
	persona, err := interpreter.ParsePersona(personaTag)
	if err != nil {
		return nil, err
	}

	observability.SetStatus(observability.PhaseInterpreting, instruction)
	defer observability.SetStatus(observability.PhaseIdle, "")

	p, err := r.Planner.Interpret(ctx, instruction, persona)
	if err != nil {
		return nil, err
	}
	r.Logger.LogPlan(r.Source, "", len(p.Steps), instruction)
	logPlan(p)

	observability.SetStatus(observability.PhaseExecuting, instruction)

	exec := executor.New(r.Session, r.Policy, r.Logger, r.Source)
	res := exec.Run(ctx, p)

	if r.History != nil {
		if _, err := r.History.SaveRun(res); err != nil {
			log.Printf("Warning: failed to persist run: %v", err)
		}
	}
	return res, nil
}

func logPlan(p *plan.Plan) {
	for _, s := range p.Steps {
		if s.Value != "" {
			log.Printf("[Plan] step %d: %s %q value=%q", s.Order, s.Kind, s.Target, s.Value)
		} else {
			log.Printf("[Plan] step %d: %s %q", s.Order, s.Kind, s.Target)
		}
	}
}
