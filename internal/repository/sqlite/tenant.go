package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/domain/tenant"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
)

type TenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) tenant.Repository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	t.CreatedAt = time.Now().UTC()

	query := `INSERT INTO tenants (id, name, plan, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Plan, t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return errors.DatabaseError("Failed to create tenant", err)
	}
	return nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	query := `SELECT id, name, plan, created_at FROM tenants WHERE id = ?`

	var t tenant.Tenant
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Plan, &createdAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Tenant")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get tenant", err)
	}

	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &t, nil
}

func (r *TenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	query := `SELECT id, name, plan, created_at FROM tenants ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tenants", err)
	}
	defer rows.Close()

	var tenants []*tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &t.Plan, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan tenant", err)
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		tenants = append(tenants, &t)
	}

	return tenants, rows.Err()
}
