package sources

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestExternalID(t *testing.T) {
	url := "https://example.com/article/123"

	id1 := ExternalID(url)
	id2 := ExternalID(url)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 16, len(id1))

	other := ExternalID("https://example.com/article/456")
	assert.NotEqual(t, id1, other)
}

func TestSplitByline(t *testing.T) {
	assert.Equal(t, []string{"Jane Doe", "John Smith"}, SplitByline("By Jane Doe and John Smith"))
	assert.Equal(t, []string{"Jane Doe", "John Smith", "Alex Roe"}, SplitByline("Jane Doe, John Smith & Alex Roe"))
	assert.Equal(t, []string{"Sam Carter"}, SplitByline("  Sam Carter  "))
	assert.Equal(t, 0, len(SplitByline("")))
	assert.Equal(t, 0, len(SplitByline("by ,")))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Fed holds rates steady", stripHTML("<p>Fed holds <b>rates</b> steady</p>"))
	assert.Equal(t, "Q&A with the chair", stripHTML("Q&amp;A with the chair"))
	assert.Equal(t, "spaced out", stripHTML("  spaced\n\n out "))
}
