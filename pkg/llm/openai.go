package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const enrichPromptVersion = "v1"

const enrichSystemPrompt = `You are a news wire editor. Given an article's title, summary, and text, produce structured enrichment data.

Rules for the neutral summary:
1. 2-3 sentences, calm and factual
2. Remove urgency words (BREAKING, NOW, ALERT, JUST IN)
3. Remove ALL CAPS and judgmental words (shocking, terrifying, crazy)
4. Replace emotional verbs:
   - crash, plummet, tank → dropped, decreased
   - explode, soar, skyrocket → rose, increased
5. Keep all facts: numbers, names, dates, percentages

Rules for topics:
- Pick 1 to 3 topics from this list, most relevant first: %s
- Never invent a topic outside the list

Rules for people:
- List public figures the article is substantially about
- Include the Wikidata QID (e.g. Q76) only when you are certain of it; omit the person otherwise

Output as JSON only, no other text:
{
  "neutral_summary": "2-3 sentence neutral summary",
  "sentiment_score": 1-10 how emotional the original is (10 = very emotional),
  "topics": ["topic from the list"],
  "people": [
    {"wikidata_id": "Q76", "name": "Barack Obama", "description": "44th US president", "occupation": "politician"}
  ]
}`

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIClient) Enrich(input EnrichInput) (*EnrichResult, error) {
	systemPrompt := fmt.Sprintf(enrichSystemPrompt, strings.Join(input.Topics, ", "))
	userPrompt := formatArticleForEnrichment(input)

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	parsed, err := parseEnrichment(content)
	if err != nil {
		return nil, err
	}

	parsed.PromptVersion = enrichPromptVersion
	parsed.ModelUsed = c.modelName
	return parsed, nil
}

func (c *OpenAIClient) Digest(articles []DigestInput) (*DigestResult, error) {
	var sb strings.Builder
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("%d. Title: %s\nSummary: %s\n\n", i+1, a.Title, a.Summary))
	}

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(digestSystemPrompt),
			openai.UserMessage(sb.String()),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed struct {
		Paragraph string   `json:"paragraph"`
		Bullets   []string `json:"bullets"`
	}

	err = json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return &DigestResult{
		Paragraph: parsed.Paragraph,
		Bullets:   parsed.Bullets,
		ModelUsed: c.modelName,
	}, nil
}

func (c *OpenAIClient) ClusterAndDigest(articles []DigestInput) (*ClusterResult, error) {
	// Pass 1: cluster and rank.
	userPrompt := formatArticlesForClustering(articles)

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4_1Mini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(clusterRankPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai cluster pass error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai (cluster pass)")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var clusterResult struct {
		Clusters []struct {
			Topic            string `json:"topic"`
			ArticleIndices   []int  `json:"article_indices"`
			ImportanceReason string `json:"importance_reason"`
		} `json:"clusters"`
	}
	if err := json.Unmarshal([]byte(content), &clusterResult); err != nil {
		return nil, fmt.Errorf("failed to parse cluster response: %w, content: %s", err, content)
	}

	// Pass 2: synthesize each cluster.
	var stories []Story
	for _, cluster := range clusterResult.Clusters {
		clusterArticles := gatherClusterArticles(articles, cluster.ArticleIndices)
		story, err := c.synthesizeCluster(clusterArticles)
		if err != nil {
			return nil, fmt.Errorf("openai synthesis error for cluster %q: %w", cluster.Topic, err)
		}
		stories = append(stories, *story)
	}

	return &ClusterResult{
		Stories:   stories,
		ModelUsed: "gpt-4.1-mini",
	}, nil
}

func (c *OpenAIClient) synthesizeCluster(articles []DigestInput) (*Story, error) {
	userPrompt := formatArticlesForSynthesis(articles)

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4_1Mini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(synthesizePrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed struct {
		Stories []Story `json:"stories"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse synthesis response: %w, content: %s", err, content)
	}

	if len(parsed.Stories) == 0 {
		return nil, fmt.Errorf("no stories in synthesis response")
	}

	return &parsed.Stories[0], nil
}
