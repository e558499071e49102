package interpreter

import "testing"

func TestParsePersona(t *testing.T) {
	cases := []struct {
		tag     string
		want    Persona
		wantErr bool
	}{
		{"", PersonaDefault, false},
		{"  ", PersonaDefault, false},
		{"shopper", PersonaShopper, false},
		{"Budget-Shopper", PersonaBudgetShopper, false},
		{"QA", PersonaQA, false},
		{"pirate", "", true},
	}

	for _, tc := range cases {
		got, err := ParsePersona(tc.tag)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePersona(%q) expected error", tc.tag)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePersona(%q) failed: %v", tc.tag, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePersona(%q) = %s, want %s", tc.tag, got, tc.want)
		}
	}
}

func TestPromptPrefix_EveryPersonaHasOne(t *testing.T) {
	seen := make(map[string]bool)
	for _, tag := range PersonaTags() {
		p, err := ParsePersona(tag)
		if err != nil {
			t.Fatalf("Listed tag %q does not parse: %v", tag, err)
		}
		prefix := p.PromptPrefix()
		if prefix == "" {
			t.Errorf("Persona %s has an empty prompt prefix", p)
		}
		if seen[prefix] {
			t.Errorf("Persona %s shares a prefix with another persona", p)
		}
		seen[prefix] = true
	}
}
