package database

import (
	"testing"
)

func TestDialectProperties(t *testing.T) {
	tests := []struct {
		name                 string
		dialect              Dialect
		driverName           string
		supportsLastInsertId bool
		migrationsSubdir     string
	}{
		{
			name:                 "SQLite",
			dialect:              NewSQLiteDialect(),
			driverName:           "sqlite3",
			supportsLastInsertId: true,
			migrationsSubdir:     "sqlite",
		},
		{
			name:                 "PostgreSQL",
			dialect:              NewPostgresDialect(),
			driverName:           "postgres",
			supportsLastInsertId: false,
			migrationsSubdir:     "postgres",
		},
		{
			name:                 "MySQL",
			dialect:              NewMySQLDialect(),
			driverName:           "mysql",
			supportsLastInsertId: true,
			migrationsSubdir:     "mysql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driverName {
				t.Errorf("DriverName() = %v, want %v", got, tt.driverName)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.supportsLastInsertId {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.supportsLastInsertId)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsSubdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrationsSubdir)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM users WHERE name = ?",
			expected: "SELECT * FROM users WHERE name = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO attendance (user_id, status, note) VALUES (?, ?, ?)",
			expected: "INSERT INTO attendance (user_id, status, note) VALUES ($1, $2, $3)",
		},
		{
			name:     "PostgreSQL no placeholders",
			dialect:  NewPostgresDialect(),
			query:    "DELETE FROM attendance",
			expected: "DELETE FROM attendance",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE users SET reset_token = ?, reset_token_expiry = ? WHERE id = ?",
			expected: "UPDATE users SET reset_token = ?, reset_token_expiry = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}
