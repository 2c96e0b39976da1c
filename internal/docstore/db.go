package docstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// DB is a handle to the backing database shared by all collections.
type DB struct {
	sql     *sql.DB
	dialect dialect
}

// OpenSQLite opens (or creates) a SQLite database at path with WAL enabled.
func OpenSQLite(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{sql: db, dialect: dialectSQLite}, nil
}

// OpenPostgres opens a PostgreSQL connection via the pgx stdlib driver.
func OpenPostgres(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{sql: db, dialect: dialectPostgres}, nil
}

func (d *DB) Close() error { return d.sql.Close() }

// Ping reports backend reachability, used by the health endpoint.
func (d *DB) Ping() error { return d.sql.Ping() }

// placeholder renders the n-th (1-based) bind parameter for the dialect.
func (d *DB) placeholder(n int) string {
	if d.dialect == dialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// jsonExpr renders an expression extracting a top-level attribute of the
// document column as text.
func (d *DB) jsonExpr(field string) string {
	if d.dialect == dialectPostgres {
		return fmt.Sprintf("doc->>'%s'", field)
	}
	return fmt.Sprintf("json_extract(doc, '$.%s')", field)
}

func (d *DB) createTableSQL(table string) string {
	if d.dialect == dialectPostgres {
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            id TEXT PRIMARY KEY,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            doc JSONB NOT NULL
        )`, table)
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
        id TEXT PRIMARY KEY,
        created_at TIMESTAMP NOT NULL,
        updated_at TIMESTAMP NOT NULL,
        doc TEXT NOT NULL
    )`, table)
}
