package domain

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fatih/camelcase"
)

// Page is one entry of a site's page list.
type Page struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ResolveURL joins a page path onto a site base URL.
func ResolveURL(baseURL, pagePath string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", baseURL, err)
	}
	ref, err := url.Parse(pagePath)
	if err != nil {
		return "", fmt.Errorf("parsing page path %q: %w", pagePath, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// URLPath returns the path of a page URL, or the input when it does not parse.
func URLPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		if err == nil && u.Host != "" {
			return "/"
		}
		return raw
	}
	return u.Path
}

// PageNameFromPath derives a readable page name for ad-hoc single-page runs,
// e.g. "/account/orderHistory" becomes "Order History".
func PageNameFromPath(pagePath string) string {
	trimmed := pagePath
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return "Home"
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	trimmed = strings.TrimSuffix(trimmed, path.Ext(trimmed))

	var words []string
	for _, part := range strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '-' || r == '_'
	}) {
		words = append(words, camelcase.Split(part)...)
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return pagePath
	}
	return strings.Join(words, " ")
}
