package repository

import (
	"database/sql"
	"fmt"
	"newswire/internal/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const articleColumns = `a.id, a.external_id, a.url, a.title, a.summary, a.content, a.source_domain, a.byline,
			a.language, a.country, a.image_url, a.published_at, a.added_at, a.updated_at, a.status,
			a.neutral_summary, a.sentiment_score, a.model_used, a.prompt_version`

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SaveIngested stores a fetched article in status pending, linking the
// byline authors in the same transaction. Returns false when the URL is
// already known.
func (r *ArticleRepository) SaveIngested(article *model.Article, journalists []string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`
		INSERT INTO article(external_id, url, title, summary, content, source_domain, byline, language, country, image_url, published_at, status)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, article.ExternalID, article.URL, article.Title, article.Summary, article.Content, article.SourceDomain,
		article.Byline, article.Language, article.Country, article.ImageURL, article.PublishedAt, model.StatusPending).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id

	for _, name := range journalists {
		var journalistID string
		err = tx.QueryRow(`
			INSERT INTO journalist(id, name)
			VALUES($1, $2)
			ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
			RETURNING id
		`, uuid.NewString(), name).Scan(&journalistID)
		if err != nil {
			return false, err
		}

		_, err = tx.Exec(`
			INSERT INTO article_journalist(article_id, journalist_id)
			VALUES($1, $2)
			ON CONFLICT DO NOTHING
		`, id, journalistID)
		if err != nil {
			return false, err
		}
	}

	return true, tx.Commit()
}

func (r *ArticleRepository) GetByID(id int64) (*model.Article, error) {
	var a model.Article
	err := r.db.QueryRow(fmt.Sprintf(`
		SELECT %s
		FROM article a
		WHERE a.id = $1
	`, articleColumns), id).Scan(
		&a.ID, &a.ExternalID, &a.URL, &a.Title, &a.Summary, &a.Content, &a.SourceDomain, &a.Byline,
		&a.Language, &a.Country, &a.ImageURL, &a.PublishedAt, &a.AddedAt, &a.UpdatedAt, &a.Status,
		&a.NeutralSummary, &a.SentimentScore, &a.ModelUsed, &a.PromptVersion,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	topics, err := r.TopicsByArticleIDs([]int64{id})
	if err != nil {
		return nil, err
	}
	a.Topics = topics[id]

	a.People, err = r.peopleByArticleID(id)
	if err != nil {
		return nil, err
	}

	a.Journalists, err = r.journalistsByArticleID(id)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// GetIngestedByID loads the raw article fields the enricher works on.
func (r *ArticleRepository) GetIngestedByID(id int64) (*model.Article, error) {
	var a model.Article
	err := r.db.QueryRow(`
		SELECT id, url, title, summary, content, source_domain, byline, published_at, status
		FROM article
		WHERE id = $1
	`, id).Scan(&a.ID, &a.URL, &a.Title, &a.Summary, &a.Content, &a.SourceDomain, &a.Byline, &a.PublishedAt, &a.Status)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *ArticleRepository) Search(req *model.SearchRequest) ([]model.Article, error) {
	where, args, err := buildSearchWhere(req)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM article a
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d
	`, articleColumns, where, sortColumn(req.SortBy), len(args)+1, len(args)+2)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(
			&a.ID, &a.ExternalID, &a.URL, &a.Title, &a.Summary, &a.Content, &a.SourceDomain, &a.Byline,
			&a.Language, &a.Country, &a.ImageURL, &a.PublishedAt, &a.AddedAt, &a.UpdatedAt, &a.Status,
			&a.NeutralSummary, &a.SentimentScore, &a.ModelUsed, &a.PromptVersion,
		)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *ArticleRepository) SearchTotal(req *model.SearchRequest) (int, error) {
	where, args, err := buildSearchWhere(req)
	if err != nil {
		return 0, err
	}

	var total int
	err = r.db.QueryRow(fmt.Sprintf(`
		SELECT COUNT(*) FROM article a WHERE %s
	`, where), args...).Scan(&total)
	return total, err
}

func (r *ArticleRepository) TopicsByArticleIDs(ids []int64) (map[int64][]string, error) {
	rows, err := r.db.Query(`
		SELECT att.article_id, t.name
		FROM article_topic att
		JOIN topic t ON t.id = att.topic_id
		WHERE att.article_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		result[id] = append(result[id], name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ArticleRepository) peopleByArticleID(id int64) ([]model.Person, error) {
	rows, err := r.db.Query(`
		SELECT p.wikidata_id, p.name, p.description, p.occupation
		FROM article_person ap
		JOIN person p ON p.wikidata_id = ap.wikidata_id
		WHERE ap.article_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.WikidataID, &p.Name, &p.Description, &p.Occupation); err != nil {
			return nil, err
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return people, nil
}

func (r *ArticleRepository) journalistsByArticleID(id int64) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT j.name
		FROM article_journalist aj
		JOIN journalist j ON j.id = aj.journalist_id
		WHERE aj.article_id = $1
		ORDER BY j.name
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

func (r *ArticleRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`
		UPDATE article SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	return err
}

// SaveEnrichment writes the enricher's output and completes the article
// in one transaction.
func (r *ArticleRepository) SaveEnrichment(e *model.Enrichment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE article
		SET neutral_summary = $1, sentiment_score = $2, model_used = $3, prompt_version = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`, e.NeutralSummary, e.SentimentScore, e.ModelUsed, e.PromptVersion, model.StatusCompleted, e.ArticleID)
	if err != nil {
		return err
	}

	if len(e.TopicIDs) > 0 {
		_, err = tx.Exec(`
			INSERT INTO article_topic(article_id, topic_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT DO NOTHING
		`, e.ArticleID, pq.Array(e.TopicIDs))
		if err != nil {
			return err
		}
	}

	for _, p := range e.People {
		_, err = tx.Exec(`
			INSERT INTO person(wikidata_id, name, description, occupation)
			VALUES($1, $2, $3, $4)
			ON CONFLICT (wikidata_id) DO UPDATE SET name = EXCLUDED.name
		`, p.WikidataID, p.Name, p.Description, p.Occupation)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO article_person(article_id, wikidata_id)
			VALUES($1, $2)
			ON CONFLICT DO NOTHING
		`, e.ArticleID, p.WikidataID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ArticleRepository) SaveError(articleID int64, errMsg string, errType string) error {
	_, err := r.db.Exec(`
		INSERT INTO processing_error(article_id, error_message, error_type)
		VALUES($1, $2, $3)
	`, articleID, errMsg, errType)

	return err
}

func (r *ArticleRepository) GetErrorCount(id int64) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM processing_error
		WHERE article_id = $1
	`, id).Scan(&count)

	return count, err
}
