package repository

import (
	"database/sql"
	"fmt"
	"newswire/internal/model"
	"strings"
)

const sourceColumns = `domain, name, description, homepage_url, kind, feed_url, country, language, category,
			paywall, rank, avg_monthly_posts, enabled, added_at, updated_at`

type SourceRepository struct {
	db *sql.DB
}

func NewSourceRepository(db *sql.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

func (r *SourceRepository) Upsert(source *model.Source) error {
	_, err := r.db.Exec(`
		INSERT INTO source(domain, name, description, homepage_url, kind, feed_url, country, language, category, paywall, rank, avg_monthly_posts, enabled)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (domain) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			homepage_url = EXCLUDED.homepage_url,
			kind = EXCLUDED.kind,
			feed_url = EXCLUDED.feed_url,
			country = EXCLUDED.country,
			language = EXCLUDED.language,
			category = EXCLUDED.category,
			paywall = EXCLUDED.paywall,
			rank = EXCLUDED.rank,
			avg_monthly_posts = EXCLUDED.avg_monthly_posts,
			enabled = EXCLUDED.enabled,
			updated_at = NOW()
	`, source.Domain, source.Name, source.Description, source.HomepageURL, source.Kind, source.FeedURL,
		source.Country, source.Language, source.Category, source.Paywall, source.Rank, source.AvgMonthlyPosts, source.Enabled)
	return err
}

func (r *SourceRepository) GetByDomain(domain string) (*model.Source, error) {
	var s model.Source
	err := r.db.QueryRow(fmt.Sprintf(`
		SELECT %s
		FROM source
		WHERE domain = $1
	`, sourceColumns), domain).Scan(
		&s.Domain, &s.Name, &s.Description, &s.HomepageURL, &s.Kind, &s.FeedURL, &s.Country, &s.Language,
		&s.Category, &s.Paywall, &s.Rank, &s.AvgMonthlyPosts, &s.Enabled, &s.AddedAt, &s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *SourceRepository) List(filter model.SourceFilter) ([]model.Source, error) {
	where, args := buildSourceWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s
		FROM source
		%s
		ORDER BY rank DESC, domain
		LIMIT $%d OFFSET $%d
	`, sourceColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []model.Source
	for rows.Next() {
		var s model.Source
		err := rows.Scan(
			&s.Domain, &s.Name, &s.Description, &s.HomepageURL, &s.Kind, &s.FeedURL, &s.Country, &s.Language,
			&s.Category, &s.Paywall, &s.Rank, &s.AvgMonthlyPosts, &s.Enabled, &s.AddedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sources, nil
}

func (r *SourceRepository) Total(filter model.SourceFilter) (int, error) {
	where, args := buildSourceWhere(filter)

	var total int
	err := r.db.QueryRow(fmt.Sprintf(`
		SELECT COUNT(*) FROM source %s
	`, where), args...).Scan(&total)
	return total, err
}

// ListEnabled returns every source the fetcher should pull.
func (r *SourceRepository) ListEnabled() ([]model.Source, error) {
	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT %s
		FROM source
		WHERE enabled = TRUE
		ORDER BY domain
	`, sourceColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []model.Source
	for rows.Next() {
		var s model.Source
		err := rows.Scan(
			&s.Domain, &s.Name, &s.Description, &s.HomepageURL, &s.Kind, &s.FeedURL, &s.Country, &s.Language,
			&s.Category, &s.Paywall, &s.Rank, &s.AvgMonthlyPosts, &s.Enabled, &s.AddedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sources, nil
}

func (r *SourceRepository) SetEnabled(domain string, enabled bool) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE source SET enabled = $1, updated_at = NOW() WHERE domain = $2
	`, enabled, domain)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func buildSourceWhere(filter model.SourceFilter) (string, []any) {
	b := &argBinder{}
	var conds []string
	if filter.Category != "" {
		conds = append(conds, fmt.Sprintf("category = %s", b.bind(filter.Category)))
	}
	if filter.Country != "" {
		conds = append(conds, fmt.Sprintf("country = %s", b.bind(filter.Country)))
	}
	if filter.Language != "" {
		conds = append(conds, fmt.Sprintf("language = %s", b.bind(filter.Language)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), b.args
}
