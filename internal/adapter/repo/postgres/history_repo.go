package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

// PgxPool is a minimal subset of pgxpool used by the repo for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HistoryRepo persists computed match outcomes.
type HistoryRepo struct{ Pool PgxPool }

// NewHistoryRepo constructs a HistoryRepo with the given pool.
func NewHistoryRepo(p PgxPool) *HistoryRepo { return &HistoryRepo{Pool: p} }

// Insert implements domain.MatchHistoryRepository.
func (r *HistoryRepo) Insert(ctx context.Context, rec domain.MatchRecord) error {
	tracer := otel.Tracer("repo.history")
	ctx, span := tracer.Start(ctx, "history.Insert")
	defer span.End()
	id := rec.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO match_history (id, candidate_fp, company_fp, final_score, confidence, compatibility, listening_reason, urgency, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.Pool.Exec(ctx, q, id, rec.CandidateFP, rec.CompanyFP, rec.FinalScore, rec.Confidence, rec.Compatibility, rec.ListeningReason, rec.Urgency, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("op=history.insert: %w", err)
	}
	return nil
}

// CountSince returns the number of matches recorded at or after the cutoff.
func (r *HistoryRepo) CountSince(ctx context.Context, cutoff time.Time) (int64, error) {
	tracer := otel.Tracer("repo.history")
	ctx, span := tracer.Start(ctx, "history.CountSince")
	defer span.End()
	var n int64
	row := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM match_history WHERE created_at >= $1`, cutoff)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("op=history.count: %w", err)
	}
	return n, nil
}
