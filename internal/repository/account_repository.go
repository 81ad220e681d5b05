package repository

import (
	"database/sql"
	"newswire/internal/model"
)

const planColumns = `id, name, slug, monthly_price_cents, request_limit, rate_limit, burst, max_access_mode, created_at, updated_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) CreateOrg(org *model.Organization) error {
	return r.db.QueryRow(`
		INSERT INTO organization(name, slug, plan_id)
		VALUES($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, org.Name, org.Slug, org.PlanID).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
}

func (r *AccountRepository) GetOrgByID(id int64) (*model.Organization, error) {
	var o model.Organization
	err := r.db.QueryRow(`
		SELECT id, name, slug, plan_id, created_at, updated_at
		FROM organization
		WHERE id = $1
	`, id).Scan(&o.ID, &o.Name, &o.Slug, &o.PlanID, &o.CreatedAt, &o.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *AccountRepository) GetOrgBySlug(slug string) (*model.Organization, error) {
	var o model.Organization
	err := r.db.QueryRow(`
		SELECT id, name, slug, plan_id, created_at, updated_at
		FROM organization
		WHERE slug = $1
	`, slug).Scan(&o.ID, &o.Name, &o.Slug, &o.PlanID, &o.CreatedAt, &o.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *AccountRepository) SetOrgPlan(orgID int64, planID int64) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE organization SET plan_id = $1, updated_at = NOW() WHERE id = $2
	`, planID, orgID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *AccountRepository) CreateUser(user *model.User) error {
	return r.db.QueryRow(`
		INSERT INTO app_user(org_id, email, name, role)
		VALUES($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, user.OrgID, user.Email, user.Name, user.Role).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *AccountRepository) GetUsersByOrg(orgID int64) ([]model.User, error) {
	rows, err := r.db.Query(`
		SELECT id, org_id, email, name, role, created_at, updated_at
		FROM app_user
		WHERE org_id = $1
		ORDER BY id
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(&u.ID, &u.OrgID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *AccountRepository) GetPlans() ([]model.BillingPlan, error) {
	rows, err := r.db.Query(`
		SELECT ` + planColumns + `
		FROM billing_plan
		ORDER BY monthly_price_cents
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []model.BillingPlan
	for rows.Next() {
		var p model.BillingPlan
		err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.MonthlyPriceCents, &p.RequestLimit, &p.RateLimit, &p.Burst,
			&p.MaxAccessMode, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *AccountRepository) GetPlanBySlug(slug string) (*model.BillingPlan, error) {
	var p model.BillingPlan
	err := r.db.QueryRow(`
		SELECT `+planColumns+`
		FROM billing_plan
		WHERE slug = $1
	`, slug).Scan(
		&p.ID, &p.Name, &p.Slug, &p.MonthlyPriceCents, &p.RequestLimit, &p.RateLimit, &p.Burst,
		&p.MaxAccessMode, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *AccountRepository) GetPlanByID(id int64) (*model.BillingPlan, error) {
	var p model.BillingPlan
	err := r.db.QueryRow(`
		SELECT `+planColumns+`
		FROM billing_plan
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Slug, &p.MonthlyPriceCents, &p.RequestLimit, &p.RateLimit, &p.Burst,
		&p.MaxAccessMode, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}
