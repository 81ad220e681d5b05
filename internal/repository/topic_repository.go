package repository

import (
	"database/sql"
	"newswire/internal/model"
)

type TopicRepository struct {
	db *sql.DB
}

func NewTopicRepository(db *sql.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

func (r *TopicRepository) GetAll() ([]model.Topic, error) {
	rows, err := r.db.Query(`
		SELECT id, name, category, subcategory, created_at
		FROM topic
		ORDER BY name
	`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Subcategory, &t.CreatedAt)
		if err != nil {
			return nil, err
		}

		topics = append(topics, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return topics, nil
}

func (r *TopicRepository) GetByName(name string) (*model.Topic, error) {
	var t model.Topic
	err := r.db.QueryRow(`
		SELECT id, name, category, subcategory, created_at
		FROM topic
		WHERE name = $1
	`, name).Scan(&t.ID, &t.Name, &t.Category, &t.Subcategory, &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &t, nil
}
