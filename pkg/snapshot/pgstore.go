package snapshot

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/lib/pq"
)

// PGConfig locates the Postgres database snapshots are stored in.
type PGConfig struct {
	Host     string `envconfig:"PG_HOST"     yaml:"host"`
	Port     string `envconfig:"PG_PORT"     yaml:"port"`
	User     string `envconfig:"PG_USER"     yaml:"user"`
	Password string `envconfig:"PG_PASS"     yaml:"password"`
	DBName   string `envconfig:"PG_DB_NAME"  yaml:"dbName"`
	SSLMode  string `envconfig:"PG_SSL_MODE" yaml:"sslMode"`
	Table    string `envconfig:"PG_TABLE"    yaml:"table"`
}

// DefaultPGConfig connects to a local development database.
var DefaultPGConfig = PGConfig{
	Host:    "localhost",
	Port:    "5432",
	User:    "postgres",
	DBName:  "postgres",
	SSLMode: "disable",
	Table:   "snapshots",
}

func (c *PGConfig) dsn() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

// PGStore keeps snapshots as `bytea` rows in a Postgres table.
type PGStore struct {
	DB    *sql.DB
	Table string
}

// OpenPG connects to the database `c` describes.
func OpenPG(c *PGConfig) (*PGStore, error) {
	db, err := sql.Open("postgres", c.dsn())
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres database: %w", err)
	}

	return &PGStore{DB: db, Table: c.Table}, nil
}

func (pgs *PGStore) table() string { return pq.QuoteIdentifier(pgs.Table) }

func (pgs *PGStore) EnsureTable() error {
	if _, err := pgs.DB.Exec(
		"CREATE TABLE IF NOT EXISTS " + pgs.table() + " (" +
			"name VARCHAR(255) NOT NULL PRIMARY KEY, " +
			"data BYTEA NOT NULL, " +
			"created TIMESTAMPTZ NOT NULL DEFAULT now())",
	); err != nil {
		return fmt.Errorf("creating `%s` postgres table: %w", pgs.Table, err)
	}
	return nil
}

func (pgs *PGStore) DropTable() error {
	if _, err := pgs.DB.Exec(
		"DROP TABLE IF EXISTS " + pgs.table(),
	); err != nil {
		return fmt.Errorf("dropping table `%s`: %w", pgs.Table, err)
	}
	return nil
}

func (pgs *PGStore) ResetTable() error {
	if err := pgs.DropTable(); err != nil {
		return err
	}
	return pgs.EnsureTable()
}

func (pgs *PGStore) Put(name string, data io.ReadSeeker) error {
	b, err := ioutil.ReadAll(data)
	if err != nil {
		return fmt.Errorf("putting snapshot `%s`: %w", name, err)
	}
	if _, err := pgs.DB.Exec(
		"INSERT INTO "+pgs.table()+" (name, data) VALUES($1, $2) "+
			"ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, "+
			"created = now()",
		name,
		b,
	); err != nil {
		return fmt.Errorf(
			"inserting snapshot `%s` into postgres: %w",
			name,
			describe(err),
		)
	}
	return nil
}

func (pgs *PGStore) Get(name string) (io.ReadCloser, error) {
	var data []byte
	if err := pgs.DB.QueryRow(
		"SELECT data FROM "+pgs.table()+" WHERE name = $1",
		name,
	).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundErr{Name: name}
		}
		return nil, fmt.Errorf(
			"getting snapshot `%s` from postgres: %w",
			name,
			describe(err),
		)
	}
	return ioutil.NopCloser(bytes.NewReader(data)), nil
}

func (pgs *PGStore) List(prefix string) ([]string, error) {
	rows, err := pgs.DB.Query(
		"SELECT name FROM "+pgs.table()+" WHERE name LIKE $1 ESCAPE '\\' "+
			"ORDER BY name",
		likePrefix(prefix),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"querying snapshots from postgres: %w",
			describe(err),
		)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("querying snapshots from postgres: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying snapshots from postgres: %w", err)
	}
	return names, nil
}

func (pgs *PGStore) Delete(name string) error {
	if err := pgs.DB.QueryRow(
		"DELETE FROM "+pgs.table()+" WHERE name = $1 RETURNING name",
		name,
	).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundErr{Name: name}
		}
		return fmt.Errorf(
			"deleting snapshot `%s` from postgres: %w",
			name,
			describe(err),
		)
	}
	return nil
}

func (pgs *PGStore) Close() error { return pgs.DB.Close() }

// likePrefix escapes the LIKE wildcards in `prefix` and matches anything
// after it.
func likePrefix(prefix string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	).Replace(prefix) + "%"
}

// describe points at the likely fix for errors caused by a missing table.
func describe(err error) error {
	const errUndefinedTable = "42P01"
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == errUndefinedTable {
		return fmt.Errorf("table missing; run `EnsureTable()`: %w", err)
	}
	return err
}
