package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'complaint_status') THEN
			CREATE TYPE complaint_status AS ENUM ('pending', 'under_investigation', 'resolved', 'closed');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(32) NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS complaints (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		vehicle_number VARCHAR(64) NOT NULL,
		vehicle_type VARCHAR(32) NOT NULL,
		vehicle_model VARCHAR(128) NOT NULL,
		vehicle_color VARCHAR(64),
		theft_date VARCHAR(64) NOT NULL,
		theft_location TEXT NOT NULL,
		description TEXT,
		complainant_name VARCHAR(255) NOT NULL,
		complainant_phone VARCHAR(32) NOT NULL,
		complainant_email VARCHAR(255) NOT NULL,
		complainant_address TEXT,
		status complaint_status NOT NULL DEFAULT 'pending',
		assigned_officer VARCHAR(255),
		case_number VARCHAR(64) NOT NULL UNIQUE,
		documents TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_user_id ON complaints (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_status ON complaints (status);`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_created_at ON complaints (created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_vehicle_number ON complaints (vehicle_number);`,
	`CREATE TABLE IF NOT EXISTS case_updates (
		id BIGSERIAL PRIMARY KEY,
		complaint_id BIGINT NOT NULL REFERENCES complaints(id) ON DELETE CASCADE,
		message TEXT NOT NULL,
		updated_by VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_case_updates_complaint_id ON case_updates (complaint_id);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_complaints_updated_at') THEN
			CREATE TRIGGER trg_complaints_updated_at
				BEFORE UPDATE ON complaints
				FOR EACH ROW
				EXECUTE FUNCTION set_row_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
