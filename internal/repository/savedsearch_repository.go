package repository

import (
	"database/sql"
	"encoding/json"
	"newswire/internal/model"
)

type SavedSearchRepository struct {
	db *sql.DB
}

func NewSavedSearchRepository(db *sql.DB) *SavedSearchRepository {
	return &SavedSearchRepository{db: db}
}

func (r *SavedSearchRepository) Create(search *model.SavedSearch) error {
	request, err := json.Marshal(search.Request)
	if err != nil {
		return err
	}

	return r.db.QueryRow(`
		INSERT INTO saved_search(id, org_id, name, request)
		VALUES($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, search.ID, search.OrgID, search.Name, request).Scan(&search.CreatedAt, &search.UpdatedAt)
}

func (r *SavedSearchRepository) ListByOrg(orgID int64) ([]model.SavedSearch, error) {
	rows, err := r.db.Query(`
		SELECT id, org_id, name, request, created_at, updated_at
		FROM saved_search
		WHERE org_id = $1
		ORDER BY created_at DESC
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []model.SavedSearch
	for rows.Next() {
		var s model.SavedSearch
		var requestJSON []byte
		err := rows.Scan(&s.ID, &s.OrgID, &s.Name, &requestJSON, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(requestJSON, &s.Request); err != nil {
			return nil, err
		}
		searches = append(searches, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return searches, nil
}

func (r *SavedSearchRepository) GetByID(id string, orgID int64) (*model.SavedSearch, error) {
	var s model.SavedSearch
	var requestJSON []byte
	err := r.db.QueryRow(`
		SELECT id, org_id, name, request, created_at, updated_at
		FROM saved_search
		WHERE id = $1 AND org_id = $2
	`, id, orgID).Scan(&s.ID, &s.OrgID, &s.Name, &requestJSON, &s.CreatedAt, &s.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(requestJSON, &s.Request); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *SavedSearchRepository) Delete(id string, orgID int64) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM saved_search WHERE id = $1 AND org_id = $2
	`, id, orgID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
