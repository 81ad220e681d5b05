package handler

import (
	"newswire/internal/model"
	"time"
)

type ArticleResponse struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	URL            string           `json:"url"`
	Source         string           `json:"source"`
	Byline         string           `json:"byline,omitempty"`
	Language       string           `json:"language,omitempty"`
	Country        string           `json:"country,omitempty"`
	ImageURL       string           `json:"image_url,omitempty"`
	PublishedAt    string           `json:"published_at"`
	AddedAt        string           `json:"added_at"`
	Summary        string           `json:"summary,omitempty"`
	NeutralSummary string           `json:"neutral_summary,omitempty"`
	Content        string           `json:"content,omitempty"`
	SentimentScore int              `json:"sentiment_score"`
	Topics         []string         `json:"topics"`
	People         []PersonResponse `json:"people,omitempty"`
	Journalists    []string         `json:"journalists,omitempty"`
}

type PersonResponse struct {
	WikidataID  string `json:"wikidata_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
}

type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// toArticleResponse shapes an article for the caller's access mode:
// metadata strips the bodies, snippet adds the summaries, full adds the
// content.
func toArticleResponse(a model.Article, mode model.AccessMode) ArticleResponse {
	res := ArticleResponse{
		ID:             a.ID,
		Title:          a.Title,
		URL:            a.URL,
		Source:         a.SourceDomain,
		Byline:         a.Byline,
		Language:       a.Language,
		Country:        a.Country,
		ImageURL:       a.ImageURL,
		PublishedAt:    a.PublishedAt.Format(time.RFC3339),
		AddedAt:        a.AddedAt.Format(time.RFC3339),
		SentimentScore: a.SentimentScore,
		Topics:         a.Topics,
		Journalists:    a.Journalists,
	}

	if mode != model.AccessMetadata {
		res.Summary = a.Summary
		res.NeutralSummary = a.NeutralSummary
	}
	if mode == model.AccessFull {
		res.Content = a.Content
	}

	for _, p := range a.People {
		res.People = append(res.People, PersonResponse{
			WikidataID:  p.WikidataID,
			Name:        p.Name,
			Description: p.Description,
			Occupation:  p.Occupation,
		})
	}

	return res
}

type SourceResponse struct {
	Domain          string `json:"domain"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	HomepageURL     string `json:"homepage_url,omitempty"`
	Kind            string `json:"kind"`
	Country         string `json:"country,omitempty"`
	Language        string `json:"language,omitempty"`
	Category        string `json:"category,omitempty"`
	Paywall         bool   `json:"paywall"`
	Rank            int    `json:"rank"`
	AvgMonthlyPosts int    `json:"avg_monthly_posts"`
	AddedAt         string `json:"added_at"`
}

type SourcesResponse struct {
	Sources []SourceResponse `json:"sources"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

func toSourceResponse(s model.Source) SourceResponse {
	return SourceResponse{
		Domain:          s.Domain,
		Name:            s.Name,
		Description:     s.Description,
		HomepageURL:     s.HomepageURL,
		Kind:            string(s.Kind),
		Country:         s.Country,
		Language:        s.Language,
		Category:        s.Category,
		Paywall:         s.Paywall,
		Rank:            s.Rank,
		AvgMonthlyPosts: s.AvgMonthlyPosts,
		AddedAt:         s.AddedAt.Format(time.RFC3339),
	}
}

type JournalistResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Title           string                 `json:"title,omitempty"`
	TwitterHandle   string                 `json:"twitter_handle,omitempty"`
	Locations       []string               `json:"locations"`
	TopTopics       []string               `json:"top_topics"`
	AvgMonthlyPosts int                    `json:"avg_monthly_posts"`
	ContactPoints   []ContactPointResponse `json:"contact_points,omitempty"`
}

type ContactPointResponse struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Status string `json:"status"`
}

type JournalistsResponse struct {
	Journalists []JournalistResponse `json:"journalists"`
	Total       int                  `json:"total"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// toJournalistResponse includes contact points only for full-access
// callers.
func toJournalistResponse(j model.Journalist, mode model.AccessMode) JournalistResponse {
	res := JournalistResponse{
		ID:              j.ID,
		Name:            j.Name,
		Title:           j.Title,
		TwitterHandle:   j.TwitterHandle,
		Locations:       j.Locations,
		TopTopics:       j.TopTopics,
		AvgMonthlyPosts: j.AvgMonthlyPosts,
	}

	if mode == model.AccessFull {
		for _, cp := range j.ContactPoints {
			res.ContactPoints = append(res.ContactPoints, ContactPointResponse{
				Type:   string(cp.Type),
				Value:  cp.Value,
				Status: string(cp.Status),
			})
		}
	}

	return res
}

type TopicResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

type PlanResponse struct {
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	MonthlyPriceCents int64   `json:"monthly_price_cents"`
	RequestLimit      int     `json:"request_limit"`
	RateLimit         float64 `json:"rate_limit"`
	Burst             int     `json:"burst"`
	MaxAccessMode     string  `json:"max_access_mode"`
}

func toPlanResponse(p model.BillingPlan) PlanResponse {
	return PlanResponse{
		Name:              p.Name,
		Slug:              p.Slug,
		MonthlyPriceCents: p.MonthlyPriceCents,
		RequestLimit:      p.RequestLimit,
		RateLimit:         p.RateLimit,
		Burst:             p.Burst,
		MaxAccessMode:     string(p.MaxAccessMode),
	}
}

type OrgResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"created_at"`
}

type AccountResponse struct {
	Organization   OrgResponse  `json:"organization"`
	Plan           PlanResponse `json:"plan"`
	UsageToday     int64        `json:"usage_today"`
	RemainingToday *int64       `json:"remaining_today,omitempty"`
}

type KeyResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Token      string `json:"token"`
	AccessMode string `json:"access_mode"`
	Enabled    bool   `json:"enabled"`
	CreatedAt  string `json:"created_at"`
	LastUsedAt string `json:"last_used_at,omitempty"`
	RevokedAt  string `json:"revoked_at,omitempty"`
}

// toKeyResponse redacts the token unless the key was just created.
func toKeyResponse(k model.APIKey, reveal bool) KeyResponse {
	res := KeyResponse{
		ID:         k.ID,
		Name:       k.Name,
		Token:      k.RedactedToken(),
		AccessMode: string(k.AccessMode),
		Enabled:    k.Enabled,
		CreatedAt:  k.CreatedAt.Format(time.RFC3339),
	}
	if reveal {
		res.Token = k.Token
	}
	if k.LastUsedAt != nil {
		res.LastUsedAt = k.LastUsedAt.Format(time.RFC3339)
	}
	if k.RevokedAt != nil {
		res.RevokedAt = k.RevokedAt.Format(time.RFC3339)
	}
	return res
}

type DailyUsageResponse struct {
	Date     string `json:"date"`
	Requests int64  `json:"requests"`
}

type UsageResponse struct {
	Days  int                  `json:"days"`
	Usage []DailyUsageResponse `json:"usage"`
}

type SavedSearchResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Request   model.SearchRequest `json:"request"`
	CreatedAt string              `json:"created_at"`
}

func toSavedSearchResponse(s model.SavedSearch) SavedSearchResponse {
	return SavedSearchResponse{
		ID:        s.ID,
		Name:      s.Name,
		Request:   s.Request,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

type DigestResponse struct {
	ID            int64           `json:"id"`
	Paragraph     string          `json:"paragraph"`
	Bullets       []string        `json:"bullets"`
	ArticleCount  int             `json:"article_count"`
	FromArticleID int64           `json:"from_article_id"`
	ToArticleID   int64           `json:"to_article_id"`
	ModelUsed     string          `json:"model_used"`
	CreatedAt     string          `json:"created_at"`
	Stories       []StoryResponse `json:"stories,omitempty"`
}

type DigestsResponse struct {
	Latest  *DigestResponse  `json:"latest"`
	History []DigestResponse `json:"history"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type StoryResponse struct {
	ID        int64    `json:"id"`
	Rank      int      `json:"rank"`
	Headline  string   `json:"headline"`
	Summary   string   `json:"summary"`
	Angles    []string `json:"angles"`
	Topics    []string `json:"topics"`
	Sources   []string `json:"sources"`
	TimeRange string   `json:"time_range"`
}

func toDigestResponse(d model.Digest) DigestResponse {
	return DigestResponse{
		ID:            d.ID,
		Paragraph:     d.Paragraph,
		Bullets:       d.Bullets,
		ArticleCount:  d.ArticleCount,
		FromArticleID: d.FromArticleID,
		ToArticleID:   d.ToArticleID,
		ModelUsed:     d.ModelUsed,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}

func toStoryResponse(s model.DigestStory) StoryResponse {
	return StoryResponse{
		ID:        s.ID,
		Rank:      s.Rank,
		Headline:  s.Headline,
		Summary:   s.Summary,
		Angles:    s.Angles,
		Topics:    s.Topics,
		Sources:   s.Sources,
		TimeRange: s.TimeRange,
	}
}
