package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	ID      string
	Name    string
	IsAdmin bool
}

type testPage struct {
	Title   string
	User    *testUser
	Error   string
	Message string
	Data    any
}

func TestNewParsesAllPages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, p := range []string{"home", "login", "register", "profile", "discount",
		"admin_discounts", "discount_form", "admin_users", "user_edit", "not_found"} {
		assert.True(t, r.Has(p), p)
	}
	assert.False(t, r.Has("layout"))
}

func TestRenderLayoutBanners(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "not_found", testPage{Title: "Not found", Error: "boom", Message: "saved"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<title>Not found · Discount Catalog</title>")
	assert.Contains(t, out, `role="alert">boom</div>`)
	assert.Contains(t, out, `role="status">saved</div>`)
	assert.Contains(t, out, `href="/login"`)
	assert.NotContains(t, out, "/admin/discounts")
}

func TestRenderAdminNav(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "not_found", testPage{Title: "x", User: &testUser{Name: "Ann", IsAdmin: true}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/admin/discounts")
	assert.Contains(t, buf.String(), `action="/logout"`)
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "missing", nil))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "1 June 2024", formatDate("2024-06-01"))
	assert.Equal(t, "1 June 2024", formatDate("2024-06-01T00:00:00.000Z"))
	assert.Equal(t, "1 January 2025", formatDate("2025-01-01T00:00:00+03:00"))
	assert.Equal(t, "soon", formatDate("soon"))
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "A", initial(" ann"))
	assert.Equal(t, "Ж", initial("жанна"))
	assert.Equal(t, "?", initial(""))
}
