package interpreter

import (
	"fmt"
	"strings"
)

// Persona is a named behavioral directive that shapes how an instruction
// is phrased to the model. The set is closed: each tag maps to a fixed
// prompt prefix, so there is no ad hoc string dispatch at call sites.
type Persona string

const (
	PersonaDefault       Persona = "default"
	PersonaShopper       Persona = "shopper"
	PersonaBudgetShopper Persona = "budget-shopper"
	PersonaResearcher    Persona = "researcher"
	PersonaQA            Persona = "qa"
)

var personaPrefixes = map[Persona]string{
	PersonaDefault: "You plan web automation for a general user. " +
		"Favor the most direct path to the goal.",
	PersonaShopper: "You plan web automation for an eager shopper. " +
		"Favor search boxes and product listings; head straight for the item the user wants.",
	PersonaBudgetShopper: "You plan web automation for a price-conscious shopper. " +
		"Prefer search terms that surface affordable options and check prices before selecting anything.",
	PersonaResearcher: "You plan web automation for a careful researcher. " +
		"Prefer reading page content (extract steps) before committing to clicks.",
	PersonaQA: "You plan web automation for a QA engineer probing a site. " +
		"Exercise the exact elements named in the instruction, in the exact order given.",
}

// ParsePersona resolves a raw tag to a Persona. An empty tag means
// default; an unknown tag is an error rather than a silent fallback.
func ParsePersona(tag string) (Persona, error) {
	if strings.TrimSpace(tag) == "" {
		return PersonaDefault, nil
	}
	p := Persona(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := personaPrefixes[p]; !ok {
		return "", fmt.Errorf("unknown persona %q (known: %s)", tag, strings.Join(PersonaTags(), ", "))
	}
	return p, nil
}

// PromptPrefix returns the fixed directive for this persona.
func (p Persona) PromptPrefix() string {
	if prefix, ok := personaPrefixes[p]; ok {
		return prefix
	}
	return personaPrefixes[PersonaDefault]
}

// PersonaTags lists the known persona tags in a stable order.
func PersonaTags() []string {
	return []string{
		string(PersonaDefault),
		string(PersonaShopper),
		string(PersonaBudgetShopper),
		string(PersonaResearcher),
		string(PersonaQA),
	}
}
