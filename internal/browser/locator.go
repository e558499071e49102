package browser

import (
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"

	"github.com/rohan/saarthi/internal/executor"
)

// candidate is one visible interactive element collected from the page.
type candidate struct {
	Selector    string `json:"selector"`
	Tag         string `json:"tag"`
	Role        string `json:"role"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

// collectScript tags every visible interactive element with a stable
// data-saarthi-id attribute and reports its descriptive features. The
// selector returned for each candidate addresses that attribute, so it
// stays valid until the next collection pass rewrites the tags.
const collectScript = `(() => {
	let idCounter = 1;
	const out = [];
	const interactiveTags = new Set(['a', 'button', 'input', 'textarea', 'select', 'summary']);
	const interactiveRoles = new Set(['button', 'link', 'checkbox', 'menuitem', 'tab', 'textbox', 'searchbox', 'combobox', 'option']);

	document.querySelectorAll('[data-saarthi-id]').forEach(el => el.removeAttribute('data-saarthi-id'));

	function clean(text) {
		if (!text) return '';
		let res = text.replace(/\s+/g, ' ').trim();
		if (res.length > 120) {
			res = res.slice(0, 120);
		}
		return res;
	}

	function isVisible(el) {
		if (!el.getBoundingClientRect) return false;
		if (el.getAttribute('aria-hidden') === 'true') return false;
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);
		return rect.width > 0 && rect.height > 0 &&
			style.visibility !== 'hidden' &&
			style.display !== 'none' &&
			style.opacity !== '0';
	}

	function isInteractive(el) {
		const tag = el.tagName.toLowerCase();
		const role = (el.getAttribute('role') || '').toLowerCase();
		return interactiveTags.has(tag) || interactiveRoles.has(role) || el.onclick != null;
	}

	for (const el of document.querySelectorAll('*')) {
		if (!isInteractive(el) || !isVisible(el)) continue;

		const tag = el.tagName.toLowerCase();
		let label = clean(el.innerText || el.textContent || '');
		if (!label) label = clean(el.getAttribute('aria-label') || '');
		if (!label) label = clean(el.getAttribute('title') || '');

		el.setAttribute('data-saarthi-id', String(idCounter));
		out.push({
			selector: '[data-saarthi-id="' + idCounter + '"]',
			tag: tag,
			role: (el.getAttribute('role') || '').toLowerCase(),
			type: (el.getAttribute('type') || '').toLowerCase(),
			name: (el.getAttribute('name') || '').toLowerCase(),
			label: label,
			placeholder: clean(el.getAttribute('placeholder') || ''),
		});
		idCounter++;
	}
	return out;
})()`

// resolve maps a descriptive locator to a concrete selector on the live
// page. An element with no textual description (an icon-only button, say)
// is simply not resolvable; there is no screenshot fallback.
func (s *Session) resolve(target string) (string, error) {
	var cands []candidate
	if err := s.run(s.cfg.ActionTimeout, chromedp.Evaluate(collectScript, &cands)); err != nil {
		return "", err
	}

	best := matchTarget(target, cands)
	if best == nil {
		return "", fmt.Errorf("no element on page matches %q: %w", target, executor.ErrElementNotFound)
	}
	return best.Selector, nil
}

// Generic words in a target describe the element class, not its text.
var descriptorWords = map[string]string{
	"button":   "button",
	"link":     "link",
	"box":      "field",
	"field":    "field",
	"input":    "field",
	"bar":      "field",
	"checkbox": "checkbox",
	"tab":      "tab",
}

var fillerWords = map[string]bool{
	"the": true, "a": true, "an": true, "first": true, "on": true, "to": true,
}

// matchTarget scores every candidate against the descriptive target and
// returns the best match, or nil when nothing scores above the floor.
// Ties go to document order. Pure function so the scoring is testable
// without a browser.
func matchTarget(target string, cands []candidate) *candidate {
	tokens, wantClass := splitTarget(target)

	bestScore := 0
	bestIdx := -1
	for i := range cands {
		score := scoreCandidate(tokens, wantClass, &cands[i])
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < minMatchScore {
		return nil
	}
	return &cands[bestIdx]
}

const minMatchScore = 3

// splitTarget normalizes the target into text tokens plus the element
// class it names, if any ("search button" -> ["search"], "button").
func splitTarget(target string) ([]string, string) {
	norm := strings.ToLower(target)
	norm = strings.NewReplacer("-", " ", "_", " ", "'", "", "\"", "").Replace(norm)

	var tokens []string
	wantClass := ""
	for _, tok := range strings.Fields(norm) {
		if class, ok := descriptorWords[tok]; ok {
			wantClass = class
			continue
		}
		if fillerWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, wantClass
}

func scoreCandidate(tokens []string, wantClass string, c *candidate) int {
	classPts := 0
	if wantClass != "" {
		classPts = classScore(wantClass, c)
		if classPts == 0 {
			// "search box" must prefer the input over a button whose
			// label happens to say Search.
			classPts = -4
		}
	}

	if len(tokens) == 0 {
		return classPts
	}

	text := searchText(c)
	phrase := strings.Join(tokens, " ")
	textPts := 0
	switch {
	case normalize(c.Label) == phrase:
		textPts = 10
	case strings.Contains(text, phrase):
		textPts = 6
	default:
		matched := 0
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				matched++
			}
		}
		switch {
		case matched == len(tokens):
			textPts = 8
		case matched*2 >= len(tokens):
			textPts = 5
		case matched > 0:
			textPts = 2
		}
	}
	if textPts == 0 {
		// Descriptive words that match nothing disqualify the element;
		// a bare class match must not claim the step.
		return 0
	}
	return classPts + textPts
}

// searchText joins every descriptive feature of a candidate into one
// normalized haystack.
func searchText(c *candidate) string {
	return normalize(strings.Join([]string{c.Label, c.Placeholder, c.Name, c.Role}, " "))
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "_", " ", "'", "", "\"", "").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func classScore(wantClass string, c *candidate) int {
	switch wantClass {
	case "button":
		if c.Tag == "button" || c.Role == "button" || c.Type == "submit" || c.Type == "button" {
			return 3
		}
	case "link":
		if c.Tag == "a" || c.Role == "link" {
			return 3
		}
	case "field":
		if c.Tag == "input" || c.Tag == "textarea" || c.Role == "textbox" || c.Role == "searchbox" {
			return 3
		}
	case "checkbox":
		if c.Type == "checkbox" || c.Role == "checkbox" {
			return 3
		}
	case "tab":
		if c.Role == "tab" {
			return 3
		}
	}
	return 0
}
