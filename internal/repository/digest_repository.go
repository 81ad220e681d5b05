package repository

import (
	"database/sql"
	"encoding/json"
	"newswire/internal/model"
)

type DigestRepository struct {
	db *sql.DB
}

func NewDigestRepository(db *sql.DB) *DigestRepository {
	return &DigestRepository{db: db}
}

func (r *DigestRepository) GetLastToArticleID() (int64, error) {
	var id int64
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(to_article_id), 0) FROM digest
	`).Scan(&id)
	return id, err
}

func (r *DigestRepository) GetArticlesSince(fromID int64) ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, summary, source_domain, published_at
		FROM article
		WHERE id > $1
		ORDER BY id ASC
	`, fromID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(&a.ID, &a.Title, &a.Summary, &a.SourceDomain, &a.PublishedAt)
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

func (r *DigestRepository) Save(digest *model.Digest, stories []model.DigestStory) error {
	bullets, err := json.Marshal(digest.Bullets)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO digest(paragraph, bullets, article_count, from_article_id, to_article_id, model_used)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, digest.Paragraph, bullets, digest.ArticleCount, digest.FromArticleID, digest.ToArticleID, digest.ModelUsed).Scan(&digest.ID, &digest.CreatedAt)
	if err != nil {
		return err
	}

	for i := range stories {
		s := &stories[i]
		s.DigestID = digest.ID

		angles, err := json.Marshal(s.Angles)
		if err != nil {
			return err
		}
		topics, err := json.Marshal(s.Topics)
		if err != nil {
			return err
		}
		sources, err := json.Marshal(s.Sources)
		if err != nil {
			return err
		}

		err = tx.QueryRow(`
			INSERT INTO digest_story(digest_id, rank, headline, summary, angles, topics, sources, time_range)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, s.DigestID, s.Rank, s.Headline, s.Summary, angles, topics, sources, s.TimeRange).Scan(&s.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *DigestRepository) List(limit, offset int) ([]model.Digest, error) {
	rows, err := r.db.Query(`
		SELECT id, paragraph, bullets, article_count, from_article_id, to_article_id, model_used, created_at
		FROM digest
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var digests []model.Digest
	for rows.Next() {
		var d model.Digest
		var bulletsJSON []byte
		err := rows.Scan(&d.ID, &d.Paragraph, &bulletsJSON, &d.ArticleCount, &d.FromArticleID, &d.ToArticleID, &d.ModelUsed, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(bulletsJSON, &d.Bullets); err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return digests, nil
}

func (r *DigestRepository) Total() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM digest`).Scan(&total)
	return total, err
}

func (r *DigestRepository) GetLatest() (*model.Digest, error) {
	var d model.Digest
	var bulletsJSON []byte
	err := r.db.QueryRow(`
		SELECT id, paragraph, bullets, article_count, from_article_id, to_article_id, model_used, created_at
		FROM digest
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&d.ID, &d.Paragraph, &bulletsJSON, &d.ArticleCount, &d.FromArticleID, &d.ToArticleID, &d.ModelUsed, &d.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(bulletsJSON, &d.Bullets); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *DigestRepository) StoriesByDigest(digestID int64) ([]model.DigestStory, error) {
	rows, err := r.db.Query(`
		SELECT id, digest_id, rank, headline, summary, angles, topics, sources, time_range
		FROM digest_story
		WHERE digest_id = $1
		ORDER BY rank ASC
	`, digestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []model.DigestStory
	for rows.Next() {
		var s model.DigestStory
		var anglesJSON, topicsJSON, sourcesJSON []byte
		err := rows.Scan(&s.ID, &s.DigestID, &s.Rank, &s.Headline, &s.Summary, &anglesJSON, &topicsJSON, &sourcesJSON, &s.TimeRange)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(anglesJSON, &s.Angles); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(topicsJSON, &s.Topics); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(sourcesJSON, &s.Sources); err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stories, nil
}
