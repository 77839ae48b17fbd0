package storage

import (
	"context"
	"database/sql"
)

type MessageLogRepo struct{ db *sql.DB }

func NewMessageLogRepo(db *sql.DB) *MessageLogRepo { return &MessageLogRepo{db: db} }

// Insert es best-effort: el caller ignora el error, un log caído nunca
// bloquea el update principal.
func (r *MessageLogRepo) Insert(ctx context.Context, discordID, channelID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO message_logs (discord_id, channel_id)
VALUES ($1, $2)
`, discordID, channelID)
	return err
}
