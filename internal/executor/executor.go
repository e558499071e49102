package executor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rohan/saarthi/internal/governance"
	"github.com/rohan/saarthi/internal/observability"
	"github.com/rohan/saarthi/internal/plan"
)

// Sentinel errors a Session uses to classify step failures. Anything else
// returned from a session method is treated as an action failure.
var (
	ErrElementNotFound = errors.New("element not found")
	ErrTimeout         = errors.New("timed out waiting for page")
)

// Session is the live browser a plan executes against. Implementations
// resolve descriptive targets against the current DOM; they do not manage
// credentials or session startup policy.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, target string) error
	Type(ctx context.Context, target, text string) error
	WaitFor(ctx context.Context, target string) error
	Scroll(ctx context.Context, target string) error
	Extract(ctx context.Context) (string, error)
}

const defaultWaitPause = 2 * time.Second

// Executor replays a validated plan against a browser session, one step
// at a time, in strict order.
type Executor struct {
	session Session
	policy  governance.PolicyEngine
	logger  *observability.Logger
	source  string
}

// New builds an Executor. policy and logger may be nil.
func New(session Session, policy governance.PolicyEngine, logger *observability.Logger, source string) *Executor {
	return &Executor{
		session: session,
		policy:  policy,
		logger:  logger,
		source:  source,
	}
}

// Run executes the plan's steps in ascending order. A non-success outcome
// aborts the remainder of the plan: later steps may depend on page state
// produced by earlier ones, so skipping ahead is never safe. Cancellation
// is checked before each step, never mid-step. Steps are not retried.
func (e *Executor) Run(ctx context.Context, p *plan.Plan) *Result {
	res := &Result{
		Instruction: p.Instruction,
		Persona:     p.Persona,
		TotalSteps:  len(p.Steps),
		StartedAt:   time.Now(),
	}

	for _, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			res.Status = StatusAborted
			res.Reason = fmt.Sprintf("cancelled before step %d: %v", step.Order, err)
			res.FinishedAt = time.Now()
			e.logger.LogRun(e.source, "", string(res.Status), len(res.Steps), res.TotalSteps)
			return res
		}

		if blocked, reason := e.checkPolicy(ctx, step); blocked {
			res.Steps = append(res.Steps, StepResult{
				Order:   step.Order,
				Kind:    step.Kind,
				Target:  step.Target,
				Outcome: OutcomeBlocked,
				Detail:  reason,
			})
			break
		}

		start := time.Now()
		outcome, detail := e.execute(ctx, step)
		e.logger.LogStep(e.source, "", step.Order, string(step.Kind), step.Target, string(outcome), detail)

		res.Steps = append(res.Steps, StepResult{
			Order:    step.Order,
			Kind:     step.Kind,
			Target:   step.Target,
			Outcome:  outcome,
			Detail:   detail,
			Duration: time.Since(start),
		})

		if outcome != OutcomeSuccess {
			break
		}
	}

	res.FinishedAt = time.Now()
	res.Status = overallStatus(res)
	e.logger.LogRun(e.source, "", string(res.Status), len(res.Steps), res.TotalSteps)
	return res
}

func overallStatus(res *Result) Status {
	succeeded := res.Succeeded()
	switch {
	case res.Reason != "":
		return StatusAborted
	case succeeded == res.TotalSteps:
		return StatusCompleted
	case succeeded > 0:
		return StatusPartial
	default:
		return StatusAborted
	}
}

func (e *Executor) checkPolicy(ctx context.Context, step plan.Step) (bool, string) {
	if e.policy == nil {
		return false, ""
	}
	verdict, err := e.policy.Evaluate(ctx, governance.Request{
		Kind:   step.Kind,
		Target: step.Target,
		Value:  step.Value,
	})
	if err != nil {
		return true, fmt.Sprintf("policy evaluation failed: %v", err)
	}
	e.logger.LogPolicyCheck(e.source, "", step.Order, string(verdict.Effect), verdict.Reason)
	if verdict.Effect == governance.EffectDeny {
		return true, verdict.Reason
	}
	return false, ""
}

// execute dispatches one step. The switch is exhaustive over plan.Kind;
// validation upstream guarantees no other kind reaches here.
func (e *Executor) execute(ctx context.Context, step plan.Step) (Outcome, string) {
	var err error
	detail := ""

	switch step.Kind {
	case plan.KindNavigate:
		err = e.session.Navigate(ctx, step.URL())
	case plan.KindClick:
		err = e.session.Click(ctx, step.Target)
	case plan.KindType:
		err = e.session.Type(ctx, step.Target, step.Value)
	case plan.KindWait:
		if step.Target != "" {
			err = e.session.WaitFor(ctx, step.Target)
		} else {
			e.pause(ctx, waitDuration(step.Value))
		}
	case plan.KindScroll:
		err = e.session.Scroll(ctx, step.Target)
	case plan.KindExtract:
		var text string
		text, err = e.session.Extract(ctx)
		if err == nil {
			if len(text) > 2000 {
				text = text[:2000] + "..."
			}
			detail = text
		}
	default:
		err = fmt.Errorf("unrecognized step kind %q", step.Kind)
	}

	if err != nil {
		return classify(err), err.Error()
	}
	return OutcomeSuccess, detail
}

// pause sleeps for a bare wait step. A cancelled context just ends the
// pause early; the cancellation itself is handled before the next step.
func (e *Executor) pause(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func waitDuration(value string) time.Duration {
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultWaitPause
}

func classify(err error) Outcome {
	switch {
	case errors.Is(err, ErrElementNotFound):
		return OutcomeElementNotFound
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeActionFailure
	}
}
