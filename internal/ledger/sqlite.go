package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

const createCardsTable = `
CREATE TABLE IF NOT EXISTS cards (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at  TEXT NOT NULL,
	conversation TEXT NOT NULL,
	name         TEXT NOT NULL,
	designation  TEXT NOT NULL,
	company      TEXT NOT NULL,
	phone        TEXT NOT NULL,
	email        TEXT NOT NULL,
	website      TEXT NOT NULL,
	address      TEXT NOT NULL,
	industry     TEXT NOT NULL,
	services     TEXT NOT NULL
)`

const insertCardRow = `
INSERT INTO cards (
	recorded_at, conversation, name, designation, company,
	phone, email, website, address, industry, services
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLite appends rows to a local database file. Insert-only: the ledger never
// updates or deletes.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(createCardsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cards table: %w", err)
	}
	return &SQLite{db: db, logger: logger}, nil
}

func (l *SQLite) Append(ctx context.Context, row Row) error {
	values := row.Values()
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	if _, err := l.db.ExecContext(ctx, insertCardRow, args...); err != nil {
		return fmt.Errorf("insert card row: %w", err)
	}
	l.logger.Info("ledger.sqlite.appended", "conversation_id", row.ConversationID)
	return nil
}

func (l *SQLite) Close() error {
	return l.db.Close()
}
