package analytics

import "net/url"

// HomepageLabel is the display text for a page URL whose path is empty.
const HomepageLabel = "Homepage"

// PageLabel derives the display text for a page URL: the path with leading
// and trailing slashes trimmed, falling back to HomepageLabel for the site
// root, with a non-empty query string appended after '?'. An unparseable
// URL is returned as-is.
func PageLabel(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	label := trimSlashes(u.Path)
	if label == "" {
		label = HomepageLabel
	}
	if u.RawQuery != "" {
		label += "?" + u.RawQuery
	}
	return label
}

func trimSlashes(p string) string {
	for len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	for len(p) > 0 && p[len(p)-1] == '/' {
		p = p[:len(p)-1]
	}
	return p
}

// Truncate shortens a label to max runes with an ellipsis suffix, leaving
// shorter labels untouched. Counting is rune-based so multibyte labels are
// never split mid-character.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
