package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS match_history (
	id               UUID PRIMARY KEY,
	candidate_fp     TEXT NOT NULL,
	company_fp       TEXT NOT NULL,
	final_score      DOUBLE PRECISION NOT NULL,
	confidence       DOUBLE PRECISION NOT NULL,
	compatibility    TEXT NOT NULL,
	listening_reason TEXT NOT NULL,
	urgency          TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS match_history_created_at_idx ON match_history (created_at);
CREATE INDEX IF NOT EXISTS match_history_pair_idx ON match_history (candidate_fp, company_fp);
`

// EnsureSchema creates the match_history table if missing. Idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, historySchema); err != nil {
		return fmt.Errorf("op=history.ensure_schema: %w", err)
	}
	return nil
}
