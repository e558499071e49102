package browser

import "testing"

// A plausible shop page: nav links, a search form, product cards.
var shopCandidates = []candidate{
	{Selector: "#c1", Tag: "a", Label: "Home"},
	{Selector: "#c2", Tag: "a", Label: "Offers"},
	{Selector: "#c3", Tag: "input", Type: "text", Name: "q", Placeholder: "Search for products, brands and more"},
	{Selector: "#c4", Tag: "button", Type: "submit", Label: "Search"},
	{Selector: "#c5", Tag: "a", Label: "Matte Lipstick Crayon, Rs 299"},
	{Selector: "#c6", Tag: "button", Label: "Add to Cart"},
	{Selector: "#c7", Tag: "button", Label: "Buy Now"},
	{Selector: "#c8", Tag: "button", Role: "button", Label: ""}, // icon-only
}

func TestMatchTarget(t *testing.T) {
	cases := []struct {
		target string
		want   string // selector, "" means no match
	}{
		{"search box", "#c3"},
		{"search bar", "#c3"},
		{"search button", "#c4"},
		{"add to cart button", "#c6"},
		{"the add-to-cart button", "#c6"},
		{"buy now button", "#c7"},
		{"offers link", "#c2"},
		{"matte lipstick link", "#c5"},
		{"first product link", ""}, // no element says "product"; guessing a link is worse
		{"newsletter signup form", ""},
	}

	for _, tc := range cases {
		got := matchTarget(tc.target, shopCandidates)
		if tc.want == "" {
			if got != nil {
				t.Errorf("matchTarget(%q) = %s, want no match", tc.target, got.Selector)
			}
			continue
		}
		if got == nil {
			t.Errorf("matchTarget(%q) found nothing, want %s", tc.target, tc.want)
			continue
		}
		if got.Selector != tc.want {
			t.Errorf("matchTarget(%q) = %s, want %s", tc.target, got.Selector, tc.want)
		}
	}
}

func TestMatchTarget_IconOnlyElementUnresolvable(t *testing.T) {
	cands := []candidate{
		{Selector: "#icon", Tag: "button", Role: "button"}, // no label, no name
	}
	if got := matchTarget("settings button", cands); got != nil {
		t.Errorf("Icon-only button matched %s, want no match", got.Selector)
	}
}

func TestMatchTarget_ExactLabelBeatsSubstring(t *testing.T) {
	cands := []candidate{
		{Selector: "#partial", Tag: "button", Label: "Search within results"},
		{Selector: "#exact", Tag: "button", Label: "Search"},
	}
	got := matchTarget("search button", cands)
	if got == nil || got.Selector != "#exact" {
		t.Errorf("Expected exact label to win, got %+v", got)
	}
}

func TestMatchTarget_TieGoesToDocumentOrder(t *testing.T) {
	cands := []candidate{
		{Selector: "#first", Tag: "button", Label: "Add to Cart"},
		{Selector: "#second", Tag: "button", Label: "Add to Cart"},
	}
	got := matchTarget("add to cart button", cands)
	if got == nil || got.Selector != "#first" {
		t.Errorf("Expected first candidate on tie, got %+v", got)
	}
}

func TestSplitTarget(t *testing.T) {
	tokens, class := splitTarget("the Add-to-Cart button")
	if class != "button" {
		t.Errorf("class = %q, want button", class)
	}
	want := []string{"add", "cart"}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("tokens = %v, want %v", tokens, want)
		}
	}
}
