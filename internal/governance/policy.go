package governance

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rohan/saarthi/internal/plan"
)

// Effect defines the result of a policy evaluation.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Request contains the context of a planned browser step to be evaluated.
type Request struct {
	Kind   plan.Kind
	Target string
	Value  string
}

// Result contains the outcome of a policy evaluation.
type Result struct {
	Effect Effect
	Reason string
}

// PolicyEngine evaluates planned steps against a set of rules before the
// executor performs them.
type PolicyEngine interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
}

// DefaultPolicyEngine is a basic implementation of PolicyEngine.
type DefaultPolicyEngine struct {
	DeniedKinds   map[plan.Kind]bool
	DeniedURLs    []*regexp.Regexp
	DeniedTargets []*regexp.Regexp
}

func NewDefaultPolicyEngine() *DefaultPolicyEngine {
	return &DefaultPolicyEngine{
		DeniedKinds:   make(map[plan.Kind]bool),
		DeniedURLs:    make([]*regexp.Regexp, 0),
		DeniedTargets: make([]*regexp.Regexp, 0),
	}
}

func (e *DefaultPolicyEngine) DenyKind(k plan.Kind) {
	e.DeniedKinds[k] = true
}

// DenyURL blocks navigate steps whose URL matches the pattern.
func (e *DefaultPolicyEngine) DenyURL(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	e.DeniedURLs = append(e.DeniedURLs, re)
	return nil
}

// DenyTarget blocks steps whose target or value matches the pattern.
// Used to keep the agent out of checkout, payment, and deletion flows.
func (e *DefaultPolicyEngine) DenyTarget(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	e.DeniedTargets = append(e.DeniedTargets, re)
	return nil
}

func (e *DefaultPolicyEngine) Evaluate(ctx context.Context, req Request) (Result, error) {
	if e.DeniedKinds[req.Kind] {
		return Result{
			Effect: EffectDeny,
			Reason: fmt.Sprintf("Step kind '%s' is restricted by system policy", req.Kind),
		}, nil
	}

	if req.Kind == plan.KindNavigate {
		for _, re := range e.DeniedURLs {
			if re.MatchString(req.Target) || re.MatchString(req.Value) {
				return Result{
					Effect: EffectDeny,
					Reason: fmt.Sprintf("URL matches restricted pattern: %s", re.String()),
				}, nil
			}
		}
	}

	for _, re := range e.DeniedTargets {
		if re.MatchString(req.Target) || re.MatchString(req.Value) {
			return Result{
				Effect: EffectDeny,
				Reason: fmt.Sprintf("Step matches restricted pattern: %s", re.String()),
			}, nil
		}
	}

	return Result{
		Effect: EffectAllow,
		Reason: "Approved by default policy",
	}, nil
}
