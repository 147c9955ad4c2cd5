package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production database schema.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE classification (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE
		);

		CREATE TABLE asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			classification_id VARCHAR(36) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			FOREIGN KEY(classification_id) REFERENCES classification(id) ON DELETE CASCADE
		);

		CREATE TABLE "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36),
			classification_id VARCHAR(36) NOT NULL,
			kind VARCHAR(15) NOT NULL,
			value FLOAT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			date DATE NOT NULL,
			done BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(asset_id) REFERENCES asset(id) ON DELETE SET NULL,
			FOREIGN KEY(classification_id) REFERENCES classification(id) ON DELETE CASCADE
		);

		CREATE TABLE scheduled_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			description VARCHAR(200) NOT NULL,
			kind VARCHAR(15) NOT NULL,
			value FLOAT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			schedule_kind VARCHAR(15) NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL
		);

		CREATE TABLE portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			classification_id VARCHAR(36),
			FOREIGN KEY(classification_id) REFERENCES classification(id) ON DELETE SET NULL
		);

		CREATE TABLE allocation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			ticker VARCHAR(20) NOT NULL,
			quantity FLOAT NOT NULL,
			initial_value FLOAT NOT NULL,
			perc_planned FLOAT NOT NULL DEFAULT 0,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			CONSTRAINT unique_portfolio_ticker UNIQUE (portfolio_id, ticker)
		);

		CREATE TABLE quote (
			symbol VARCHAR(20) NOT NULL PRIMARY KEY,
			price FLOAT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			open FLOAT NOT NULL DEFAULT 0,
			high FLOAT NOT NULL DEFAULT 0,
			low FLOAT NOT NULL DEFAULT 0,
			last_update DATETIME NOT NULL
		);

		CREATE TABLE exchange_rate (
			from_currency VARCHAR(3) NOT NULL,
			to_currency VARCHAR(3) NOT NULL,
			year INTEGER NOT NULL DEFAULT 0,
			month INTEGER NOT NULL DEFAULT 0,
			rate FLOAT NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (from_currency, to_currency, year, month)
		);

		CREATE TABLE profitability (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			year INTEGER NOT NULL,
			classification_id VARCHAR(36) NOT NULL,
			month INTEGER NOT NULL,
			value FLOAT NOT NULL DEFAULT 0,
			currency VARCHAR(3) NOT NULL,
			CONSTRAINT unique_profitability_cell UNIQUE (year, classification_id, month)
		);

		CREATE TABLE setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
