// Package sqlite implements the domain repositories over database/sql.
// The default driver is modernc.org/sqlite; lib/pq is supported for
// deployments that point DB_DRIVER at postgres.
package sqlite

import (
	"database/sql"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open opens the database and applies the schema migration
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
			_ = db.Close()
			return nil, err
		}
		if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS tenants (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    plan TEXT NOT NULL DEFAULT 'free',
    created_at TEXT NOT NULL,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cost_entries (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    provider TEXT NOT NULL DEFAULT '',
    service TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    amount REAL NOT NULL,
    currency TEXT NOT NULL DEFAULT 'USD',
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cost_entries_tenant_date ON cost_entries (tenant_id, date);

CREATE TABLE IF NOT EXISTS cost_anomalies (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    date TEXT NOT NULL,
    actual_amount REAL NOT NULL,
    expected_amount REAL NOT NULL,
    deviation REAL NOT NULL,
    deviation_pct REAL NOT NULL,
    score REAL NOT NULL,
    severity TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'open',
    detected_at TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cost_anomalies_tenant ON cost_anomalies (tenant_id, detected_at);

CREATE TABLE IF NOT EXISTS forecasts (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    generated_at TEXT NOT NULL,
    model_version TEXT NOT NULL,
    granularity TEXT NOT NULL,
    points TEXT NOT NULL,
    total_forecasted REAL NOT NULL,
    confidence_level REAL NOT NULL,
    currency TEXT NOT NULL DEFAULT 'USD',
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_forecasts_tenant ON forecasts (tenant_id, generated_at);

CREATE TABLE IF NOT EXISTS budgets (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    amount REAL NOT NULL,
    period TEXT NOT NULL DEFAULT 'monthly',
    current_spend REAL NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'active',
    created_at TEXT NOT NULL,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS remediation_actions (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    type TEXT NOT NULL,
    resource_id TEXT NOT NULL DEFAULT '',
    description TEXT,
    estimated_savings REAL NOT NULL DEFAULT 0,
    currency TEXT NOT NULL DEFAULT 'USD',
    risk TEXT NOT NULL DEFAULT 'low',
    status TEXT NOT NULL,
    auto_approved INTEGER NOT NULL DEFAULT 0,
    approval_rule TEXT,
    requested_by TEXT,
    approved_by TEXT,
    approved_at TEXT,
    audit_log TEXT NOT NULL DEFAULT '[]',
    created_at TEXT NOT NULL,
    updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_remediation_actions_tenant ON remediation_actions (tenant_id, created_at);

CREATE TABLE IF NOT EXISTS auto_approval_rules (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    enabled INTEGER NOT NULL DEFAULT 1,
    conditions TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL,
    updated_at TEXT
);
`)
	return err
}
