package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS estimates (
		id BIGSERIAL PRIMARY KEY,
		estimate_no VARCHAR(32),
		title TEXT NOT NULL,
		client_name TEXT,
		client_id BIGINT,
		total_amount BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_estimates_estimate_no ON estimates (estimate_no);`,
	`CREATE TABLE IF NOT EXISTS estimate_items (
		id BIGSERIAL PRIMARY KEY,
		estimate_id BIGINT NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		row_no INTEGER NOT NULL,
		item_name TEXT,
		spec TEXT,
		unit TEXT,
		qty DOUBLE PRECISION NOT NULL DEFAULT 0,
		material_unit BIGINT NOT NULL DEFAULT 0,
		material_amount BIGINT NOT NULL DEFAULT 0,
		labor_unit BIGINT NOT NULL DEFAULT 0,
		labor_amount BIGINT NOT NULL DEFAULT 0,
		expense_unit BIGINT NOT NULL DEFAULT 0,
		expense_amount BIGINT NOT NULL DEFAULT 0,
		total_unit BIGINT NOT NULL DEFAULT 0,
		total_amount BIGINT NOT NULL DEFAULT 0,
		note TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_estimate_items_estimate_id ON estimate_items (estimate_id);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id BIGSERIAL PRIMARY KEY,
		estimate_id BIGINT REFERENCES estimates(id) ON DELETE SET NULL,
		contract_no VARCHAR(32),
		title TEXT NOT NULL,
		client_name TEXT,
		client_id BIGINT,
		total_amount BIGINT NOT NULL DEFAULT 0,
		start_date VARCHAR(10),
		end_date VARCHAR(10),
		pdf_filename TEXT,
		body_text TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_contracts_contract_no ON contracts (contract_no);`,
	`CREATE TABLE IF NOT EXISTS progress (
		id BIGSERIAL PRIMARY KEY,
		progress_no VARCHAR(32) NOT NULL,
		contract_id BIGINT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		progress_month VARCHAR(7) NOT NULL,
		progress_rate DOUBLE PRECISION,
		progress_amount BIGINT NOT NULL DEFAULT 0,
		note TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_progress_progress_no ON progress (progress_no);`,
	`CREATE INDEX IF NOT EXISTS idx_progress_contract_id ON progress (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_progress_month ON progress (progress_month);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_progress_contract_month ON progress (contract_id, progress_month);`,
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		biz_no VARCHAR(32),
		ceo_name TEXT,
		phone VARCHAR(32),
		email TEXT,
		address TEXT,
		memo TEXT,
		cert_filename TEXT,
		cert_original_name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_clients_name ON clients (name);`,
	`CREATE INDEX IF NOT EXISTS idx_clients_biz_no ON clients (biz_no);`,
	`CREATE TABLE IF NOT EXISTS staff (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT,
		daily_wage BIGINT NOT NULL DEFAULT 0,
		salary BIGINT NOT NULL DEFAULT 0,
		birth_date VARCHAR(10),
		start_date VARCHAR(10),
		end_date VARCHAR(10),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		photo_filename TEXT,
		cert_text TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS staff_cert_files (
		id BIGSERIAL PRIMARY KEY,
		staff_id BIGINT NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
		filename TEXT NOT NULL,
		original_name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_staff_cert_files_staff_id ON staff_cert_files (staff_id);`,
	`CREATE TABLE IF NOT EXISTS library_docs (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		doc_type VARCHAR(32) NOT NULL DEFAULT 'form',
		filename TEXT NOT NULL DEFAULT '',
		original_name TEXT NOT NULL DEFAULT '',
		mime_type TEXT NOT NULL DEFAULT '',
		size_bytes BIGINT NOT NULL DEFAULT 0,
		memo TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(64) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role VARCHAR(32) NOT NULL DEFAULT 'admin',
		staff_id BIGINT REFERENCES staff(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	// Additive columns for databases created before the client certificate
	// and staff extension fields existed.
	`ALTER TABLE clients ADD COLUMN IF NOT EXISTS cert_filename TEXT;`,
	`ALTER TABLE clients ADD COLUMN IF NOT EXISTS cert_original_name TEXT;`,
	`ALTER TABLE staff ADD COLUMN IF NOT EXISTS birth_date VARCHAR(10);`,
	`ALTER TABLE staff ADD COLUMN IF NOT EXISTS salary BIGINT NOT NULL DEFAULT 0;`,
	`ALTER TABLE staff ADD COLUMN IF NOT EXISTS photo_filename TEXT;`,
	`ALTER TABLE staff ADD COLUMN IF NOT EXISTS cert_text TEXT;`,
	`ALTER TABLE estimates ADD COLUMN IF NOT EXISTS client_id BIGINT;`,
	`ALTER TABLE contracts ADD COLUMN IF NOT EXISTS client_id BIGINT;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
