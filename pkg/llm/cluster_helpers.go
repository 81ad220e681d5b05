package llm

import (
	"fmt"
	"strings"
)

const (
	maxSummaryChars = 200
	maxContentChars = 4000
)

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func formatArticleForEnrichment(input EnrichInput) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\n", input.Title))
	if input.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary: %s\n", input.Summary))
	}
	if input.Content != "" {
		sb.WriteString(fmt.Sprintf("Text: %s\n", truncate(input.Content, maxContentChars)))
	}
	return sb.String()
}

func formatArticlesForClustering(articles []DigestInput) string {
	var sb strings.Builder
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("[%d] Title: %s\n", i, a.Title))
		sb.WriteString(fmt.Sprintf("    Summary: %s\n", truncate(a.Summary, maxSummaryChars)))
		sb.WriteString(fmt.Sprintf("    Source: %s\n", a.Source))
		sb.WriteString(fmt.Sprintf("    Published: %s\n", a.PublishedAt.Format("2006-01-02 15:04")))
		if len(a.Topics) > 0 {
			sb.WriteString(fmt.Sprintf("    Topics: %s\n", strings.Join(a.Topics, ", ")))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatArticlesForSynthesis(articles []DigestInput) string {
	var sb strings.Builder
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("[%d] Title: %s\n", i, a.Title))
		sb.WriteString(fmt.Sprintf("    Summary: %s\n", a.Summary))
		sb.WriteString(fmt.Sprintf("    Source: %s\n", a.Source))
		sb.WriteString(fmt.Sprintf("    Published: %s\n", a.PublishedAt.Format("2006-01-02 15:04")))
		if len(a.Topics) > 0 {
			sb.WriteString(fmt.Sprintf("    Topics: %s\n", strings.Join(a.Topics, ", ")))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func gatherClusterArticles(allArticles []DigestInput, indices []int) []DigestInput {
	var result []DigestInput
	for _, idx := range indices {
		if idx >= 0 && idx < len(allArticles) {
			result = append(result, allArticles[idx])
		}
	}
	return result
}
