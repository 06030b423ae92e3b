package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func TestResolveURL(t *testing.T) {
	got, err := domain.ResolveURL("https://acme.test/app/", "/about")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.test/about", got)

	got, err = domain.ResolveURL("https://acme.test/app/", "orders")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.test/app/orders", got)

	_, err = domain.ResolveURL("://bad", "/")
	assert.Error(t, err)
}

func TestURLPath(t *testing.T) {
	assert.Equal(t, "/", domain.URLPath("https://acme.test"))
	assert.Equal(t, "/a/b", domain.URLPath("https://acme.test/a/b#top"))
}

func TestPageNameFromPath(t *testing.T) {
	tests := map[string]string{
		"/":                     "Home",
		"":                      "Home",
		"/account/orderHistory": "Order History",
		"/contact-us/":          "Contact Us",
		"/help/faq_page.html":   "Faq Page",
		"/search?q=shoes":       "Search",
	}
	for in, want := range tests {
		assert.Equal(t, want, domain.PageNameFromPath(in), in)
	}
}
