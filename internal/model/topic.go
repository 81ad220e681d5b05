package model

import "time"

// OtherTopic is the fallback assigned when the enricher returns a topic
// that is not in the catalog.
const OtherTopic = "Other"

type Topic struct {
	ID          int64
	Name        string
	Category    string
	Subcategory string
	CreatedAt   time.Time
}
