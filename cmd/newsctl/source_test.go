package main

import (
	"newswire/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	data := []byte(`
sources:
  - domain: reuters.com
    name: Reuters
    kind: rss
    feed_url: https://www.reuters.com/rss
    country: us
    language: en
    category: wire
    rank: 90
  - domain: ft.com
    name: Financial Times
    kind: newsdata
    country: gb
    language: en
    paywall: true
    enabled: false
`)

	sources, err := parseCatalog(data)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "reuters.com", sources[0].Domain)
	assert.Equal(t, model.SourceKindRSS, sources[0].Kind)
	assert.Equal(t, "https://www.reuters.com/rss", sources[0].FeedURL)
	assert.Equal(t, 90, sources[0].Rank)
	assert.True(t, sources[0].Enabled, "enabled should default to true")

	assert.Equal(t, "ft.com", sources[1].Domain)
	assert.True(t, sources[1].Paywall)
	assert.False(t, sources[1].Enabled, "explicit enabled: false should stick")
}

func TestParseCatalog_InvalidEntry(t *testing.T) {
	data := []byte(`
sources:
  - domain: example.com
    name: Example
    kind: carrier-pigeon
`)

	_, err := parseCatalog(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "example.com")
	assert.ErrorIs(t, err, model.ErrInvalidSourceKind)
}

func TestParseCatalog_MissingFeedURL(t *testing.T) {
	data := []byte(`
sources:
  - domain: example.com
    name: Example
    kind: rss
`)

	_, err := parseCatalog(data)
	assert.ErrorIs(t, err, model.ErrMissingFeedURL)
}

func TestParseCatalog_BadYAML(t *testing.T) {
	_, err := parseCatalog([]byte("sources: [not: {closed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog")
}
