package repository

import (
	"database/sql"
	"fmt"
	"newswire/internal/model"
	"strings"

	"github.com/lib/pq"
)

const journalistColumns = `id, name, title, twitter_handle, locations, top_topics, avg_monthly_posts, added_at, updated_at`

type JournalistRepository struct {
	db *sql.DB
}

func NewJournalistRepository(db *sql.DB) *JournalistRepository {
	return &JournalistRepository{db: db}
}

func (r *JournalistRepository) GetByID(id string) (*model.Journalist, error) {
	var j model.Journalist
	err := r.db.QueryRow(fmt.Sprintf(`
		SELECT %s
		FROM journalist
		WHERE id = $1
	`, journalistColumns), id).Scan(
		&j.ID, &j.Name, &j.Title, &j.TwitterHandle, pq.Array(&j.Locations), pq.Array(&j.TopTopics),
		&j.AvgMonthlyPosts, &j.AddedAt, &j.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	j.ContactPoints, err = r.ContactPointsByJournalist(id)
	if err != nil {
		return nil, err
	}

	return &j, nil
}

func (r *JournalistRepository) GetByName(name string) (*model.Journalist, error) {
	var id string
	err := r.db.QueryRow(`
		SELECT id FROM journalist WHERE name = $1
	`, name).Scan(&id)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *JournalistRepository) List(filter model.JournalistFilter) ([]model.Journalist, error) {
	where, args := buildJournalistWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s
		FROM journalist j
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, journalistColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journalists []model.Journalist
	for rows.Next() {
		var j model.Journalist
		err := rows.Scan(
			&j.ID, &j.Name, &j.Title, &j.TwitterHandle, pq.Array(&j.Locations), pq.Array(&j.TopTopics),
			&j.AvgMonthlyPosts, &j.AddedAt, &j.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		journalists = append(journalists, j)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return journalists, nil
}

func (r *JournalistRepository) Total(filter model.JournalistFilter) (int, error) {
	where, args := buildJournalistWhere(filter)

	var total int
	err := r.db.QueryRow(fmt.Sprintf(`
		SELECT COUNT(*) FROM journalist j %s
	`, where), args...).Scan(&total)
	return total, err
}

func (r *JournalistRepository) ContactPointsByJournalist(journalistID string) ([]model.ContactPoint, error) {
	rows, err := r.db.Query(`
		SELECT id, journalist_id, type, value, status, created_at, updated_at
		FROM contact_point
		WHERE journalist_id = $1
		ORDER BY id
	`, journalistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []model.ContactPoint
	for rows.Next() {
		var cp model.ContactPoint
		err := rows.Scan(&cp.ID, &cp.JournalistID, &cp.Type, &cp.Value, &cp.Status, &cp.CreatedAt, &cp.UpdatedAt)
		if err != nil {
			return nil, err
		}
		points = append(points, cp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

func (r *JournalistRepository) AddContactPoint(cp *model.ContactPoint) error {
	if cp.Status == "" {
		cp.Status = model.ContactStatusUnverified
	}

	return r.db.QueryRow(`
		INSERT INTO contact_point(journalist_id, type, value, status)
		VALUES($1, $2, $3, $4)
		ON CONFLICT (journalist_id, type, value) DO UPDATE SET updated_at = NOW()
		RETURNING id, status
	`, cp.JournalistID, cp.Type, cp.Value, cp.Status).Scan(&cp.ID, &cp.Status)
}

func (r *JournalistRepository) SetContactPointStatus(id int64, status model.ContactPointStatus) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE contact_point SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// RefreshStats recomputes avg_monthly_posts and top_topics for every
// journalist from the article link tables.
func (r *JournalistRepository) RefreshStats() error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE journalist j
		SET avg_monthly_posts = s.monthly, updated_at = NOW()
		FROM (
			SELECT aj.journalist_id, COUNT(*) AS monthly
			FROM article_journalist aj
			JOIN article a ON a.id = aj.article_id
			WHERE a.published_at > NOW() - INTERVAL '30 days'
			GROUP BY aj.journalist_id
		) s
		WHERE j.id = s.journalist_id
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE journalist j
		SET top_topics = s.topics, updated_at = NOW()
		FROM (
			SELECT journalist_id, ARRAY_AGG(name ORDER BY cnt DESC) AS topics
			FROM (
				SELECT aj.journalist_id, t.name, COUNT(*) AS cnt,
					ROW_NUMBER() OVER (PARTITION BY aj.journalist_id ORDER BY COUNT(*) DESC) AS rn
				FROM article_journalist aj
				JOIN article_topic att ON att.article_id = aj.article_id
				JOIN topic t ON t.id = att.topic_id
				GROUP BY aj.journalist_id, t.name
			) ranked
			WHERE rn <= 5
			GROUP BY journalist_id
		) s
		WHERE j.id = s.journalist_id
	`)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func buildJournalistWhere(filter model.JournalistFilter) (string, []any) {
	b := &argBinder{}
	var conds []string
	if filter.Topic != "" {
		conds = append(conds, fmt.Sprintf("%s = ANY(j.top_topics)", b.bind(filter.Topic)))
	}
	if filter.Source != "" {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM article_journalist aj JOIN article a ON a.id = aj.article_id WHERE aj.journalist_id = j.id AND a.source_domain = %s)",
			b.bind(filter.Source)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), b.args
}
