package model

import "time"

// Digest is an LLM-written summary of the articles ingested between two
// article IDs.
type Digest struct {
	ID            int64
	Paragraph     string
	Bullets       []string
	ArticleCount  int
	FromArticleID int64
	ToArticleID   int64
	ModelUsed     string
	CreatedAt     time.Time
}

// DigestStory is one clustered story within a digest, ranked by coverage.
type DigestStory struct {
	ID        int64
	DigestID  int64
	Rank      int
	Headline  string
	Summary   string
	Angles    []string
	Topics    []string
	Sources   []string
	TimeRange string
}
