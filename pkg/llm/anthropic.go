package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client: &client,
		// anthropic.ModelClaudeHaiku4_5 requires SDK >= v1.14.0, which needs go >= 1.23;
		// inline its value ("claude-haiku-4-5") to stay buildable on go 1.21.
		model:     anthropic.Model("claude-haiku-4-5"),
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) Enrich(input EnrichInput) (*EnrichResult, error) {
	systemPrompt := fmt.Sprintf(enrichSystemPrompt, strings.Join(input.Topics, ", "))
	userPrompt := formatArticleForEnrichment(input)

	resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	content := cleanJSONResponse(resp.Content[0].Text)

	parsed, err := parseEnrichment(content)
	if err != nil {
		return nil, err
	}

	parsed.PromptVersion = enrichPromptVersion
	parsed.ModelUsed = c.modelName
	return parsed, nil
}

// parseEnrichment decodes the enrichment JSON shared by both providers,
// dropping people the model could not pin to a Wikidata QID.
func parseEnrichment(content string) (*EnrichResult, error) {
	var parsed struct {
		NeutralSummary string   `json:"neutral_summary"`
		SentimentScore int      `json:"sentiment_score"`
		Topics         []string `json:"topics"`
		People         []Person `json:"people"`
	}

	err := json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	people := make([]Person, 0, len(parsed.People))
	for _, p := range parsed.People {
		if p.WikidataID != "" && p.Name != "" {
			people = append(people, p)
		}
	}

	return &EnrichResult{
		NeutralSummary: parsed.NeutralSummary,
		SentimentScore: parsed.SentimentScore,
		Topics:         parsed.Topics,
		People:         people,
	}, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
