package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Uploader pushes raw log rows into a Postgres warehouse table, the batch
// analog of the simulator's local summaries.
type Uploader struct {
	pool *pgxpool.Pool
}

// NewUploader connects a pool to the warehouse at dsn.
func NewUploader(ctx context.Context, dsn string) (*Uploader, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("report: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("report: ping: %w", err)
	}
	return &Uploader{pool: pool}, nil
}

// Close releases the pool.
func (u *Uploader) Close() { u.pool.Close() }

const schemaSQL = `
CREATE TABLE IF NOT EXISTS game_logs (
	id          BIGSERIAL PRIMARY KEY,
	event       TEXT        NOT NULL,
	game_id     UUID        NOT NULL,
	app_version TEXT        NOT NULL DEFAULT '',
	logged_at   TIMESTAMPTZ NOT NULL,
	data        JSONB
);
CREATE INDEX IF NOT EXISTS game_logs_game_id_idx ON game_logs (game_id);
CREATE INDEX IF NOT EXISTS game_logs_event_idx   ON game_logs (event);
`

// EnsureSchema creates the warehouse table and indexes if missing.
func (u *Uploader) EnsureSchema(ctx context.Context) error {
	if _, err := u.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("report: ensure schema: %w", err)
	}
	return nil
}

// Upload bulk-inserts the entries with COPY and returns the row count.
func (u *Uploader) Upload(ctx context.Context, entries []LogEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	rows := pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
		e := entries[i]
		data, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("report: encode row %d: %w", i, err)
		}
		return []any{e.Event, e.GameID, e.AppVersion, e.Time, data}, nil
	})
	n, err := u.pool.CopyFrom(ctx,
		pgx.Identifier{"game_logs"},
		[]string{"event", "game_id", "app_version", "logged_at", "data"},
		rows)
	if err != nil {
		return n, fmt.Errorf("report: copy: %w", err)
	}
	return n, nil
}
