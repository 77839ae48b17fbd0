package storage

import (
	"context"
	"database/sql"
	"time"
)

type StageSession struct {
	ID        int64
	DiscordID string
	StartAt   time.Time
	EndAt     *time.Time
}

type StageRepo struct{ db *sql.DB }

func NewStageRepo(db *sql.DB) *StageRepo { return &StageRepo{db: db} }

// Open inserta una sesión abierta. El índice parcial uq_stage_open
// convierte un doble start en no-op (ON CONFLICT DO NOTHING).
// Devuelve true si realmente abrió una sesión nueva.
func (r *StageRepo) Open(ctx context.Context, discordID string, startAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO stage_sessions (discord_id, start_at)
VALUES ($1, $2)
ON CONFLICT (discord_id) WHERE end_at IS NULL DO NOTHING
`, discordID, startAt)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// LatestOpen: la sesión abierta más reciente del usuario.
func (r *StageRepo) LatestOpen(ctx context.Context, discordID string) (StageSession, error) {
	var s StageSession
	err := r.db.QueryRowContext(ctx, `
SELECT id, discord_id, start_at, end_at
  FROM stage_sessions
 WHERE discord_id = $1
   AND end_at IS NULL
 ORDER BY start_at DESC
 LIMIT 1
`, discordID).Scan(&s.ID, &s.DiscordID, &s.StartAt, &s.EndAt)
	if err == sql.ErrNoRows {
		return StageSession{}, ErrNotFound
	}
	return s, err
}

func (r *StageRepo) Close(ctx context.Context, id int64, endAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE stage_sessions
   SET end_at = $1
 WHERE id = $2
`, endAt, id)
	return err
}
