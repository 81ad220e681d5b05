package repository

import (
	"fmt"
	"newswire/internal/model"
	"strings"

	"github.com/lib/pq"
)

// Subquery fragments for clause fields that live in join tables. Each
// takes one placeholder bound to a text array.
const (
	topicMatch      = `EXISTS (SELECT 1 FROM article_topic att JOIN topic t ON t.id = att.topic_id WHERE att.article_id = a.id AND t.name = ANY(%s))`
	journalistMatch = `EXISTS (SELECT 1 FROM article_journalist aj JOIN journalist j ON j.id = aj.journalist_id WHERE aj.article_id = a.id AND j.name = ANY(%s))`
	personMatch     = `EXISTS (SELECT 1 FROM article_person ap WHERE ap.article_id = a.id AND ap.wikidata_id = ANY(%s))`
)

// argBinder numbers query arguments so the flat filters and the clause
// tree share one placeholder sequence.
type argBinder struct {
	args []any
}

func (b *argBinder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// buildSearchWhere compiles a search request into the WHERE conditions
// of the article query. Only completed articles are visible through
// search.
func buildSearchWhere(req *model.SearchRequest) (string, []any, error) {
	b := &argBinder{}
	conds := []string{fmt.Sprintf("a.status = %s", b.bind(model.StatusCompleted))}

	q := &req.SearchQuery
	if q.Q != "" {
		conds = append(conds, fmt.Sprintf("(a.title ILIKE %[1]s OR a.summary ILIKE %[1]s)", b.bind(likePattern(q.Q))))
	}
	if q.Title != "" {
		conds = append(conds, fmt.Sprintf("a.title ILIKE %s", b.bind(likePattern(q.Title))))
	}
	if len(q.Sources) > 0 {
		conds = append(conds, fmt.Sprintf("a.source_domain = ANY(%s)", b.bind(pq.Array(q.Sources))))
	}
	if len(q.Topics) > 0 {
		conds = append(conds, fmt.Sprintf(topicMatch, b.bind(pq.Array(q.Topics))))
	}
	if len(q.Journalists) > 0 {
		conds = append(conds, fmt.Sprintf(journalistMatch, b.bind(pq.Array(q.Journalists))))
	}
	if len(q.People) > 0 {
		conds = append(conds, fmt.Sprintf(personMatch, b.bind(pq.Array(q.People))))
	}
	if len(q.Languages) > 0 {
		conds = append(conds, fmt.Sprintf("a.language = ANY(%s)", b.bind(pq.Array(q.Languages))))
	}
	if len(q.Countries) > 0 {
		conds = append(conds, fmt.Sprintf("a.country = ANY(%s)", b.bind(pq.Array(q.Countries))))
	}
	if !q.From.IsZero() {
		conds = append(conds, fmt.Sprintf("a.published_at >= %s", b.bind(q.From)))
	}
	if !q.To.IsZero() {
		conds = append(conds, fmt.Sprintf("a.published_at <= %s", b.bind(q.To)))
	}

	if req.Filter != nil {
		cond, err := compileClause(b, req.Filter)
		if err != nil {
			return "", nil, err
		}
		conds = append(conds, cond)
	}

	return strings.Join(conds, " AND "), b.args, nil
}

func compileClause(b *argBinder, c *model.Clause) (string, error) {
	if !c.IsGroup() {
		return compileLeaf(b, c)
	}

	var parts []string
	if len(c.All) > 0 {
		sub, err := compileGroup(b, c.All, " AND ")
		if err != nil {
			return "", err
		}
		parts = append(parts, sub)
	}
	if len(c.Any) > 0 {
		sub, err := compileGroup(b, c.Any, " OR ")
		if err != nil {
			return "", err
		}
		parts = append(parts, sub)
	}
	if len(c.None) > 0 {
		sub, err := compileGroup(b, c.None, " OR ")
		if err != nil {
			return "", err
		}
		parts = append(parts, "NOT "+sub)
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, " AND ") + ")", nil
}

func compileGroup(b *argBinder, group []model.Clause, sep string) (string, error) {
	subs := make([]string, 0, len(group))
	for i := range group {
		sub, err := compileClause(b, &group[i])
		if err != nil {
			return "", err
		}
		subs = append(subs, sub)
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return "(" + strings.Join(subs, sep) + ")", nil
}

func compileLeaf(b *argBinder, c *model.Clause) (string, error) {
	values := c.Values
	if len(values) == 0 {
		values = []string{c.Value}
	}

	switch c.Field {
	case model.FieldSource:
		return fmt.Sprintf("a.source_domain = ANY(%s)", b.bind(pq.Array(values))), nil
	case model.FieldTopic:
		return fmt.Sprintf(topicMatch, b.bind(pq.Array(values))), nil
	case model.FieldJournalist:
		return fmt.Sprintf(journalistMatch, b.bind(pq.Array(values))), nil
	case model.FieldPerson:
		return fmt.Sprintf(personMatch, b.bind(pq.Array(values))), nil
	case model.FieldLanguage:
		return fmt.Sprintf("a.language = ANY(%s)", b.bind(pq.Array(values))), nil
	case model.FieldCountry:
		return fmt.Sprintf("a.country = ANY(%s)", b.bind(pq.Array(values))), nil
	case model.FieldTitle:
		return ilikeAny(b, "a.title ILIKE %s", values), nil
	case model.FieldText:
		return ilikeAny(b, "(a.title ILIKE %[1]s OR a.summary ILIKE %[1]s)", values), nil
	default:
		return "", fmt.Errorf("%w: %q", model.ErrInvalidClauseField, c.Field)
	}
}

func ilikeAny(b *argBinder, tpl string, values []string) string {
	matches := make([]string, 0, len(values))
	for _, v := range values {
		matches = append(matches, fmt.Sprintf(tpl, b.bind(likePattern(v))))
	}
	if len(matches) == 1 {
		return matches[0]
	}
	return "(" + strings.Join(matches, " OR ") + ")"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps a term for substring matching, escaping LIKE
// metacharacters.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func sortColumn(s model.SortOrder) string {
	if s == model.SortAddDate {
		return "a.added_at"
	}
	return "a.published_at"
}
