package interpreter

import (
	"context"
	"regexp"
	"strings"

	"github.com/rohan/saarthi/internal/plan"
)

// RulePlanner builds plans without a language model. It covers the common
// instruction shapes (open a site, search, add to cart, read a page) with
// keyword heuristics and fails closed on anything it does not recognize.
// Used only when no provider is configured.
type RulePlanner struct{}

var (
	urlRe       = regexp.MustCompile(`https?://[^\s"']+`)
	searchRe    = regexp.MustCompile(`(?i)\bsearch\s+(?:for\s+)?["']?([^"'.,]+?)["']?(?:\s+(?:and|then|on)\b|[.,]|$)`)
	addToCartRe = regexp.MustCompile(`(?i)\badd\b.*\b(?:cart|bag|basket)\b`)
	readRe      = regexp.MustCompile(`(?i)\b(?:read|summarize|extract)\b`)
)

func (r *RulePlanner) Interpret(ctx context.Context, instruction string, persona Persona) (*plan.Plan, error) {
	var steps []plan.Step
	order := 0
	next := func(s plan.Step) {
		s.Order = order
		order++
		steps = append(steps, s)
	}

	if url := urlRe.FindString(instruction); url != "" {
		next(plan.Step{Kind: plan.KindNavigate, Value: strings.TrimRight(url, ".,)")})
	}

	if m := searchRe.FindStringSubmatch(instruction); m != nil {
		term := strings.TrimSpace(m[1])
		if persona == PersonaBudgetShopper && !strings.HasPrefix(strings.ToLower(term), "affordable") {
			term = "affordable " + term
		}
		next(plan.Step{Kind: plan.KindType, Target: "search box", Value: term})
		next(plan.Step{Kind: plan.KindClick, Target: "search button"})
	}

	if addToCartRe.MatchString(instruction) {
		next(plan.Step{Kind: plan.KindClick, Target: "add to cart"})
	}

	if readRe.MatchString(instruction) {
		next(plan.Step{Kind: plan.KindExtract})
	}

	if len(steps) == 0 {
		return nil, &InterpretationError{
			Reason: "instruction not recognized by the rule planner; configure a language model provider",
		}
	}

	return plan.New(instruction, string(persona), steps)
}
