package interpreter

// stepCatalogPrompt describes the closed action catalog to the model.
// Targets are descriptive locators resolved against the live page, not
// CSS selectors, since the model never sees the DOM.
const stepCatalogPrompt = `You translate one natural-language instruction into an ordered plan of discrete web actions.

AVAILABLE STEP KINDS:
- navigate: load a URL. Put the full URL in "value".
- click: click an element. Put a short description of it in "target" (visible text, role, or placeholder, e.g. "search button", "Add to cart", "first product link").
- type: type text into a field. Put the field description in "target" and the text in "value". Typing does NOT press Enter; add a click step for the submit button.
- wait: pause. Either describe an element to wait for in "target", or put a number of seconds in "value".
- scroll: bring an element into view. Put its description in "target", or leave "target" empty to scroll to the bottom of the page.
- extract: read the main content of the current page. No target needed.

RULES:
1. Use ONLY the kinds listed above. Do not invent new kinds.
2. Number steps with "order" starting at 0, increasing by 1, no gaps.
3. Keep the plan minimal: only the steps needed to fulfil the instruction.
4. Targets must be descriptions a human would recognize on the page, never CSS selectors or XPath.

Submit the plan by calling the propose_plan function. If the instruction cannot be expressed as web actions, say so in plain text instead of proposing a plan.`

// proposePlanParameters is the JSON schema for the propose_plan function.
func proposePlanParameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type": "string",
							"enum": []string{"navigate", "click", "type", "wait", "scroll", "extract"},
						},
						"target": map[string]any{
							"type":        "string",
							"description": "Descriptive locator: visible text, role, or placeholder of the element.",
						},
						"value": map[string]any{
							"type":        "string",
							"description": "URL for navigate, text for type, seconds for wait.",
						},
						"order": map[string]any{
							"type": "integer",
						},
					},
					"required": []string{"kind", "order"},
				},
			},
		},
		"required": []string{"steps"},
	}
}
