package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSitePatch_Apply(t *testing.T) {
	latency := int64(55)
	site := Site{
		ID:          "s1",
		Title:       "Old",
		URL:         "https://old.example",
		Description: "desc",
		Status:      StatusUnknown,
		CategoryID:  "default",
	}

	title := "New"
	status := StatusOnline
	checked := int64(1700000000000)
	patch := SitePatch{
		Title:       &title,
		Status:      &status,
		LastChecked: &checked,
		Latency:     &latency,
	}
	patch.Apply(&site)

	assert.Equal(t, "New", site.Title)
	assert.Equal(t, StatusOnline, site.Status)
	assert.Equal(t, checked, site.LastChecked)
	assert.Equal(t, &latency, site.Latency)

	// Untouched fields survive.
	assert.Equal(t, "https://old.example", site.URL)
	assert.Equal(t, "desc", site.Description)
	assert.Equal(t, "default", site.CategoryID)
}

func TestSitePatch_EmptyIsNoop(t *testing.T) {
	site := Site{ID: "s1", Title: "Keep", URL: "https://keep.example"}
	before := site

	(&SitePatch{}).Apply(&site)
	assert.Equal(t, before, site)
}

func TestValidTheme(t *testing.T) {
	for _, theme := range []Theme{ThemeVibe, ThemeSunset, ThemeOcean, ThemeMinimal} {
		assert.True(t, ValidTheme(theme))
	}
	assert.False(t, ValidTheme(""))
	assert.False(t, ValidTheme("neon"))
}
