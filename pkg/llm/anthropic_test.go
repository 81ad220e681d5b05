package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"neutral_summary":"test"}`,
			want:  `{"neutral_summary":"test"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"neutral_summary\":\"test\"}\n```",
			want:  `{"neutral_summary":"test"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"neutral_summary\":\"test\"}\n```",
			want:  `{"neutral_summary":"test"}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"neutral_summary\":\"test\"}  ",
			want:  `{"neutral_summary":"test"}`,
		},
		{
			name:  "extracts JSON from surrounding prose",
			input: "Here is the enrichment:\n{\"neutral_summary\":\"test\"}\nLet me know if you need anything else.",
			want:  `{"neutral_summary":"test"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseEnrichment(t *testing.T) {
	content := `{
		"neutral_summary": "Rates held steady.",
		"sentiment_score": 3,
		"topics": ["Markets", "Politics"],
		"people": [
			{"wikidata_id": "Q123", "name": "Jane Chair", "occupation": "central banker"},
			{"wikidata_id": "", "name": "Unknown Aide"},
			{"wikidata_id": "Q999", "name": ""}
		]
	}`

	got, err := parseEnrichment(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.NeutralSummary != "Rates held steady." {
		t.Errorf("neutral summary = %q", got.NeutralSummary)
	}
	if got.SentimentScore != 3 {
		t.Errorf("sentiment score = %d, want 3", got.SentimentScore)
	}
	if len(got.Topics) != 2 {
		t.Errorf("topics = %v, want 2 entries", got.Topics)
	}
	if len(got.People) != 1 || got.People[0].WikidataID != "Q123" {
		t.Errorf("people = %v, want only Q123", got.People)
	}
}

func TestParseEnrichmentBadJSON(t *testing.T) {
	_, err := parseEnrichment("not json")
	if err == nil {
		t.Fatal("expected error for malformed content")
	}
}
