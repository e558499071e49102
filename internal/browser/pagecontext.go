package browser

import "strings"

// PageContext is a coarse classification of the current page, inferred
// from the URL. It gives downstream consumers (run detail, chat replies)
// a cheap orientation signal without another model call.
type PageContext string

const (
	ContextHomepage PageContext = "homepage"
	ContextSearch   PageContext = "search_results"
	ContextProduct  PageContext = "product_details"
	ContextCart     PageContext = "cart"
)

// classifyPage maps a page URL to its context. Retail sites converge on
// a few URL vocabularies; anything unrecognized counts as homepage, the
// default starting point.
func classifyPage(rawURL string) PageContext {
	url := strings.ToLower(rawURL)
	switch {
	case strings.Contains(url, "search") || strings.Contains(url, "?q=") || strings.Contains(url, "&q="):
		return ContextSearch
	case strings.Contains(url, "cart") || strings.Contains(url, "bag") || strings.Contains(url, "basket"):
		return ContextCart
	case strings.Contains(url, "product") || strings.Contains(url, "/p/") || strings.Contains(url, "/dp/") || strings.Contains(url, "/item"):
		return ContextProduct
	default:
		return ContextHomepage
	}
}
