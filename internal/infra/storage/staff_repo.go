package storage

import (
	"context"
	"database/sql"
	"time"
)

type StaffMember struct {
	DiscordID      string
	DisplayName    *string
	Status         string
	MessagesCount  int
	MinutesOnStage int
	Points         float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type StaffRepo struct{ db *sql.DB }

func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

const staffCols = `discord_id, display_name, status, messages_count, minutes_on_stage, points, created_at, updated_at`

func scanStaff(row interface{ Scan(...any) error }) (StaffMember, error) {
	var m StaffMember
	err := row.Scan(&m.DiscordID, &m.DisplayName, &m.Status, &m.MessagesCount,
		&m.MinutesOnStage, &m.Points, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *StaffRepo) GetByDiscordID(ctx context.Context, discordID string) (StaffMember, error) {
	m, err := scanStaff(r.db.QueryRowContext(ctx, `
SELECT `+staffCols+`
  FROM staff
 WHERE discord_id = $1
`, discordID))
	if err == sql.ErrNoRows {
		return StaffMember{}, ErrNotFound
	}
	return m, err
}

// Insert crea la fila si no existe; no pisa nada si ya estaba.
func (r *StaffRepo) Insert(ctx context.Context, discordID string, displayName *string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO staff (discord_id, display_name)
VALUES ($1, $2)
ON CONFLICT (discord_id) DO NOTHING
`, discordID, displayName)
	return err
}

func (r *StaffRepo) UpdateDisplayName(ctx context.Context, discordID, displayName string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE staff
   SET display_name = $1, updated_at = now()
 WHERE discord_id = $2
`, displayName, discordID)
	return err
}

// SetStatus no valida existencia: si nadie hizo Ensure antes afecta
// cero filas, igual que el original.
func (r *StaffRepo) SetStatus(ctx context.Context, discordID, status string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE staff
   SET status = $1, updated_at = now()
 WHERE discord_id = $2
`, status, discordID)
	return err
}

// IncrementMessages es el camino atómico (+1 server-side).
func (r *StaffRepo) IncrementMessages(ctx context.Context, discordID string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE staff
   SET messages_count = messages_count + 1, updated_at = now()
 WHERE discord_id = $1
`, discordID)
	return err
}

// SetMessagesCount es el fallback read-modify-write del camino atómico.
// Tiene ventana de carrera conocida; la aceptamos.
func (r *StaffRepo) SetMessagesCount(ctx context.Context, discordID string, count int) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE staff
   SET messages_count = $1, updated_at = now()
 WHERE discord_id = $2
`, count, discordID)
	return err
}

func (r *StaffRepo) AddStageMinutes(ctx context.Context, discordID string, minutes int) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE staff
   SET minutes_on_stage = minutes_on_stage + $1, updated_at = now()
 WHERE discord_id = $2
`, minutes, discordID)
	return err
}

func (r *StaffRepo) SetStageMinutes(ctx context.Context, discordID string, minutes int) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE staff
   SET minutes_on_stage = $1, updated_at = now()
 WHERE discord_id = $2
`, minutes, discordID)
	return err
}

func (r *StaffRepo) SetPoints(ctx context.Context, discordID string, points float64) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE staff
   SET points = $1, updated_at = now()
 WHERE discord_id = $2
`, points, discordID)
	return err
}

// Leaderboard: top N por puntos. El desempate queda en el orden que
// devuelva Postgres, alcanza para el panel.
func (r *StaffRepo) Leaderboard(ctx context.Context, limit int) ([]StaffMember, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+staffCols+`
  FROM staff
 ORDER BY points DESC
 LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StaffMember
	for rows.Next() {
		m, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *StaffRepo) ListAll(ctx context.Context) ([]StaffMember, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+staffCols+`
  FROM staff
 ORDER BY points DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StaffMember
	for rows.Next() {
		m, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
