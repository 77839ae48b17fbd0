package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Cierra sesiones de stage que quedaron abiertas (el bot murió entre el
// join y el leave), sumando los minutos enteros al ledger, y poda logs
// de mensajes viejos.
func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Sprintf("parse: %v", err), nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Sprintf("pool: %v", err), nil
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, _ = pool.Exec(cctx, `
WITH closed AS (
  UPDATE stage_sessions
     SET end_at = now()
   WHERE end_at IS NULL
     AND start_at < now() - INTERVAL '12 hours'
  RETURNING discord_id, floor(extract(epoch FROM now() - start_at) / 60)::int AS mins
)
UPDATE staff s
   SET minutes_on_stage = s.minutes_on_stage + c.mins,
       updated_at       = now()
  FROM closed c
 WHERE s.discord_id = c.discord_id;`)

	// recompute de points para que no quede drift
	_, _ = pool.Exec(cctx, `
UPDATE staff
   SET points     = round(messages_count / 100.0 + minutes_on_stage / 30.0, 4),
       updated_at = now()
 WHERE points <> round(messages_count / 100.0 + minutes_on_stage / 30.0, 4);`)

	_, _ = pool.Exec(cctx, `DELETE FROM message_logs WHERE created_at < now() - INTERVAL '90 days';`)

	return "ok", nil
}

func main() { lambda.Start(handler) }
