package interpreter

import (
	"context"
	"errors"
	"testing"

	"github.com/rohan/saarthi/internal/plan"
)

func TestRulePlanner_SearchAndAddToCart(t *testing.T) {
	rp := &RulePlanner{}
	p, err := rp.Interpret(context.Background(),
		"go to https://shop.example and search for matte lipstick, then add it to my cart",
		PersonaShopper)
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}

	wantKinds := []plan.Kind{plan.KindNavigate, plan.KindType, plan.KindClick, plan.KindClick}
	if len(p.Steps) != len(wantKinds) {
		t.Fatalf("Expected %d steps, got %d: %+v", len(wantKinds), len(p.Steps), p.Steps)
	}
	for i, k := range wantKinds {
		if p.Steps[i].Kind != k {
			t.Errorf("Step %d kind = %s, want %s", i, p.Steps[i].Kind, k)
		}
	}
	if p.Steps[0].URL() != "https://shop.example" {
		t.Errorf("Navigate URL = %q", p.Steps[0].URL())
	}
	if p.Steps[1].Value != "matte lipstick" {
		t.Errorf("Search term = %q, want %q", p.Steps[1].Value, "matte lipstick")
	}
	if p.Steps[3].Target != "add to cart" {
		t.Errorf("Final target = %q", p.Steps[3].Target)
	}
}

func TestRulePlanner_BudgetShopperBiasesSearchTerm(t *testing.T) {
	rp := &RulePlanner{}
	p, err := rp.Interpret(context.Background(),
		"search for wireless earbuds on https://shop.example",
		PersonaBudgetShopper)
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}

	for _, s := range p.Steps {
		if s.Kind == plan.KindType {
			if s.Value != "affordable wireless earbuds" {
				t.Errorf("Search term = %q, want budget bias applied", s.Value)
			}
			return
		}
	}
	t.Fatal("No type step produced")
}

func TestRulePlanner_ReadInstruction(t *testing.T) {
	rp := &RulePlanner{}
	p, err := rp.Interpret(context.Background(),
		"read https://news.example/story and summarize it",
		PersonaResearcher)
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	last := p.Steps[len(p.Steps)-1]
	if last.Kind != plan.KindExtract {
		t.Errorf("Last step = %s, want extract", last.Kind)
	}
}

func TestRulePlanner_UnrecognizedInstruction(t *testing.T) {
	rp := &RulePlanner{}
	_, err := rp.Interpret(context.Background(), "make me a sandwich", PersonaDefault)

	var ierr *InterpretationError
	if !errors.As(err, &ierr) {
		t.Fatalf("Expected InterpretationError, got %v", err)
	}
}
