package model

import (
	"errors"
	"fmt"
	"time"
)

// SortOrder picks the ordering of search results.
type SortOrder string

const (
	SortPubDate SortOrder = "pubDate"
	SortAddDate SortOrder = "addDate"
)

var validSortOrders = map[SortOrder]bool{
	SortPubDate: true,
	SortAddDate: true,
}

func (s SortOrder) Valid() bool {
	return validSortOrders[s]
}

// ClauseField names an article attribute a filter clause can match.
type ClauseField string

const (
	FieldSource     ClauseField = "source"
	FieldTopic      ClauseField = "topic"
	FieldJournalist ClauseField = "journalist"
	FieldPerson     ClauseField = "person"
	FieldLanguage   ClauseField = "language"
	FieldCountry    ClauseField = "country"
	FieldTitle      ClauseField = "title"
	FieldText       ClauseField = "text"
)

var validClauseFields = map[ClauseField]bool{
	FieldSource:     true,
	FieldTopic:      true,
	FieldJournalist: true,
	FieldPerson:     true,
	FieldLanguage:   true,
	FieldCountry:    true,
	FieldTitle:      true,
	FieldText:       true,
}

func (f ClauseField) Valid() bool {
	return validClauseFields[f]
}

const (
	// DefaultLimit and MaxLimit bound result pages.
	DefaultLimit = 10
	MaxLimit     = 100

	maxClauseDepth  = 3
	maxClauseLeaves = 50
)

var (
	ErrInvalidSort        = errors.New("unknown sort order")
	ErrInvalidTimeRange   = errors.New("search 'from' must not be after 'to'")
	ErrInvalidClauseField = errors.New("unknown clause field")
	ErrEmptyClause        = errors.New("clause must be a group or a field match")
	ErrMixedClause        = errors.New("clause cannot be both a group and a field match")
	ErrClauseTooDeep      = fmt.Errorf("clause nesting exceeds depth %d", maxClauseDepth)
	ErrTooManyClauses     = fmt.Errorf("clause tree exceeds %d field matches", maxClauseLeaves)
	ErrMissingClauseValue = errors.New("clause value is required")
)

// SearchQuery is the flat filter set shared by the articles listing and
// the search body. Zero values mean "no filter".
type SearchQuery struct {
	Q           string    `json:"q,omitempty"`
	Title       string    `json:"title,omitempty"`
	Sources     []string  `json:"sources,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
	Journalists []string  `json:"journalists,omitempty"`
	People      []string  `json:"people,omitempty"`
	Languages   []string  `json:"languages,omitempty"`
	Countries   []string  `json:"countries,omitempty"`
	From        time.Time `json:"from,omitempty"`
	To          time.Time `json:"to,omitempty"`
	SortBy      SortOrder `json:"sortBy,omitempty"`
	Limit       int       `json:"limit,omitempty"`
	Offset      int       `json:"offset,omitempty"`
}

// Clause is one node of a boolean filter tree: either a group combining
// sub-clauses (All = AND, Any = OR, None = NOT) or a single field match.
type Clause struct {
	All  []Clause `json:"and,omitempty"`
	Any  []Clause `json:"or,omitempty"`
	None []Clause `json:"not,omitempty"`

	Field  ClauseField `json:"field,omitempty"`
	Value  string      `json:"value,omitempty"`
	Values []string    `json:"values,omitempty"`
}

// IsGroup reports whether the clause combines sub-clauses.
func (c *Clause) IsGroup() bool {
	return len(c.All) > 0 || len(c.Any) > 0 || len(c.None) > 0
}

// IsLeaf reports whether the clause matches a single field.
func (c *Clause) IsLeaf() bool {
	return c.Field != ""
}

func (c *Clause) validate(depth int, leaves *int) error {
	if depth > maxClauseDepth {
		return ErrClauseTooDeep
	}
	switch {
	case c.IsGroup() && c.IsLeaf():
		return ErrMixedClause
	case c.IsGroup():
		for _, group := range [][]Clause{c.All, c.Any, c.None} {
			for i := range group {
				if err := group[i].validate(depth+1, leaves); err != nil {
					return err
				}
			}
		}
		return nil
	case c.IsLeaf():
		*leaves++
		if *leaves > maxClauseLeaves {
			return ErrTooManyClauses
		}
		if !c.Field.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidClauseField, c.Field)
		}
		if c.Value == "" && len(c.Values) == 0 {
			return ErrMissingClauseValue
		}
		return nil
	default:
		return ErrEmptyClause
	}
}

// SearchRequest is the body of the search endpoint: the flat filters plus
// an optional boolean filter tree.
type SearchRequest struct {
	SearchQuery
	Filter *Clause `json:"filter,omitempty"`
}

// Normalize applies defaults and clamps pagination.
func (r *SearchRequest) Normalize() {
	if r.SortBy == "" {
		r.SortBy = SortPubDate
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

func (r *SearchRequest) Validate() error {
	if !r.SortBy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSort, r.SortBy)
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return ErrInvalidTimeRange
	}
	if r.Filter != nil {
		leaves := 0
		if err := r.Filter.validate(1, &leaves); err != nil {
			return err
		}
	}
	return nil
}

// SavedSearch is a stored SearchRequest an organization can re-run.
type SavedSearch struct {
	ID        string
	OrgID     int64
	Name      string
	Request   SearchRequest
	CreatedAt time.Time
	UpdatedAt time.Time
}
