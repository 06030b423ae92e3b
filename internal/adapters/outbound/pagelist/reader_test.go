package pagelist_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/pagelist"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func TestParse(t *testing.T) {
	pages, err := pagelist.Parse(strings.NewReader("name,path\nHome,/\n\nOrder History,/account/orders\n,/contact-us\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Page{
		{Name: "Home", Path: "/"},
		{Name: "Order History", Path: "/account/orders"},
		{Name: "Contact Us", Path: "/contact-us"},
	}, pages)
}

func TestParse_ColumnOrderFromHeader(t *testing.T) {
	pages, err := pagelist.Parse(strings.NewReader("path,name\n/about,About\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Page{{Name: "About", Path: "/about"}}, pages)
}

func TestParse_MissingColumn(t *testing.T) {
	_, err := pagelist.Parse(strings.NewReader("title,url\nHome,/\n"))
	assert.ErrorContains(t, err, "name and path")
}

func TestParse_Empty(t *testing.T) {
	pages, err := pagelist.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestCSVReader_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,path\nHome,/\n"), 0644))

	pages, err := pagelist.New().Read(path)
	require.NoError(t, err)
	assert.Len(t, pages, 1)

	_, err = pagelist.New().Read(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
