package plan

import (
	"testing"
)

func TestNew_NormalizesOrder(t *testing.T) {
	steps := []Step{
		{Kind: "click", Target: "search button", Order: 7},
		{Kind: "type", Target: "search box", Value: "matte lipstick", Order: 2},
		{Kind: "click", Target: "add to cart", Order: 9},
	}

	p, err := New("search and add", "shopper", steps)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if len(p.Steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(p.Steps))
	}
	for i, s := range p.Steps {
		if s.Order != i {
			t.Errorf("Step %d has order %d, want %d", i, s.Order, i)
		}
	}
	if p.Steps[0].Kind != KindType {
		t.Errorf("Expected type step first after sorting, got %s", p.Steps[0].Kind)
	}
	if p.Steps[2].Target != "add to cart" {
		t.Errorf("Expected 'add to cart' last, got %q", p.Steps[2].Target)
	}
}

func TestNew_EmptyPlanFails(t *testing.T) {
	if _, err := New("do something", "", nil); err == nil {
		t.Fatal("Expected error for empty step list")
	}
}

func TestNew_UnrecognizedKindFailsClosed(t *testing.T) {
	steps := []Step{
		{Kind: "navigate", Value: "https://example.com", Order: 0},
		{Kind: "hover", Target: "menu", Order: 1},
	}

	if _, err := New("open and hover", "", steps); err == nil {
		t.Fatal("Expected error for unrecognized kind, got a plan with the step dropped")
	}
}

func TestNew_KindAliases(t *testing.T) {
	cases := []struct {
		raw  string
		want Kind
	}{
		{"type-text", KindType},
		{"Type_Text", KindType},
		{"goto", KindNavigate},
		{"CLICK", KindClick},
		{"scroll_down", KindScroll},
		{"read", KindExtract},
	}

	for _, tc := range cases {
		got, err := ParseKind(tc.raw)
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestValidateStep_MissingFields(t *testing.T) {
	cases := []struct {
		name  string
		steps []Step
	}{
		{"navigate without url", []Step{{Kind: "navigate"}}},
		{"click without target", []Step{{Kind: "click"}}},
		{"type without value", []Step{{Kind: "type", Target: "search box"}}},
	}

	for _, tc := range cases {
		if _, err := New("x", "", tc.steps); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestStep_URL(t *testing.T) {
	s := Step{Kind: KindNavigate, Value: "https://example.com"}
	if s.URL() != "https://example.com" {
		t.Errorf("URL from value failed: %q", s.URL())
	}

	s = Step{Kind: KindNavigate, Target: "https://example.org"}
	if s.URL() != "https://example.org" {
		t.Errorf("URL from target failed: %q", s.URL())
	}
}

func TestNew_BareStepsAreValid(t *testing.T) {
	steps := []Step{
		{Kind: "wait", Value: "3"},
		{Kind: "scroll", Order: 1},
		{Kind: "extract", Order: 2},
	}
	p, err := New("wait, scroll, read", "", steps)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.Steps[0].Kind != KindWait || p.Steps[1].Kind != KindScroll || p.Steps[2].Kind != KindExtract {
		t.Errorf("Unexpected kinds: %+v", p.Steps)
	}
}
