package repository

import (
	"database/sql"
	"newswire/internal/model"
)

type KeyRepository struct {
	db *sql.DB
}

func NewKeyRepository(db *sql.DB) *KeyRepository {
	return &KeyRepository{db: db}
}

func (r *KeyRepository) Create(key *model.APIKey) error {
	return r.db.QueryRow(`
		INSERT INTO api_key(org_id, name, token, access_mode)
		VALUES($1, $2, $3, $4)
		RETURNING id, enabled, created_at
	`, key.OrgID, key.Name, key.Token, key.AccessMode).Scan(&key.ID, &key.Enabled, &key.CreatedAt)
}

// GetByToken loads a key together with its organization and plan. All
// three are nil when the token is unknown.
func (r *KeyRepository) GetByToken(token string) (*model.APIKey, *model.Organization, *model.BillingPlan, error) {
	var (
		k model.APIKey
		o model.Organization
		p model.BillingPlan
	)
	err := r.db.QueryRow(`
		SELECT k.id, k.org_id, k.name, k.token, k.access_mode, k.enabled, k.created_at, k.last_used_at, k.revoked_at,
			o.id, o.name, o.slug, o.plan_id, o.created_at, o.updated_at,
			p.id, p.name, p.slug, p.monthly_price_cents, p.request_limit, p.rate_limit, p.burst, p.max_access_mode
		FROM api_key k
		JOIN organization o ON o.id = k.org_id
		JOIN billing_plan p ON p.id = o.plan_id
		WHERE k.token = $1
	`, token).Scan(
		&k.ID, &k.OrgID, &k.Name, &k.Token, &k.AccessMode, &k.Enabled, &k.CreatedAt, &k.LastUsedAt, &k.RevokedAt,
		&o.ID, &o.Name, &o.Slug, &o.PlanID, &o.CreatedAt, &o.UpdatedAt,
		&p.ID, &p.Name, &p.Slug, &p.MonthlyPriceCents, &p.RequestLimit, &p.RateLimit, &p.Burst, &p.MaxAccessMode,
	)

	if err == sql.ErrNoRows {
		return nil, nil, nil, nil
	}

	if err != nil {
		return nil, nil, nil, err
	}

	return &k, &o, &p, nil
}

func (r *KeyRepository) ListByOrg(orgID int64) ([]model.APIKey, error) {
	rows, err := r.db.Query(`
		SELECT id, org_id, name, token, access_mode, enabled, created_at, last_used_at, revoked_at
		FROM api_key
		WHERE org_id = $1
		ORDER BY created_at DESC
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		var k model.APIKey
		err := rows.Scan(&k.ID, &k.OrgID, &k.Name, &k.Token, &k.AccessMode, &k.Enabled, &k.CreatedAt, &k.LastUsedAt, &k.RevokedAt)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// Revoke disables a key. Returns false when the key does not exist,
// belongs to another organization, or is already revoked.
func (r *KeyRepository) Revoke(id int64, orgID int64) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE api_key SET enabled = FALSE, revoked_at = NOW()
		WHERE id = $1 AND org_id = $2 AND revoked_at IS NULL
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

func (r *KeyRepository) TouchLastUsed(keyID int64) error {
	_, err := r.db.Exec(`
		UPDATE api_key SET last_used_at = NOW() WHERE id = $1
	`, keyID)
	return err
}

// IncrementUsage counts one request against the key for today and
// returns the key's count so far.
func (r *KeyRepository) IncrementUsage(keyID int64, orgID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(`
		INSERT INTO api_usage(key_id, org_id, usage_date, request_count)
		VALUES($1, $2, CURRENT_DATE, 1)
		ON CONFLICT (key_id, usage_date) DO UPDATE SET request_count = api_usage.request_count + 1
		RETURNING request_count
	`, keyID, orgID).Scan(&count)
	return count, err
}

// OrgUsageToday sums today's requests across all of an organization's
// keys. The daily plan limit applies to this number.
func (r *KeyRepository) OrgUsageToday(orgID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(`
		SELECT COALESCE(SUM(request_count), 0)
		FROM api_usage
		WHERE org_id = $1 AND usage_date = CURRENT_DATE
	`, orgID).Scan(&count)
	return count, err
}

func (r *KeyRepository) UsageByDay(orgID int64, days int) ([]model.DailyUsage, error) {
	rows, err := r.db.Query(`
		SELECT usage_date, SUM(request_count)
		FROM api_usage
		WHERE org_id = $1 AND usage_date > CURRENT_DATE - $2::int
		GROUP BY usage_date
		ORDER BY usage_date DESC
	`, orgID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []model.DailyUsage
	for rows.Next() {
		var u model.DailyUsage
		if err := rows.Scan(&u.Date, &u.Requests); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return usage, nil
}
