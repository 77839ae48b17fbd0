package service

import (
	"context"
	"log"
	"time"

	"github.com/jose-valero/staff-attendance-bot/internal/infra/storage"
)

// StageService lleva las sesiones de stage por usuario:
// NoSession → Open (start) → Closed (end, minutos sumados al ledger).
type StageService struct {
	stage StageRepo
	staff *StaffService
}

func NewStageService(stage StageRepo, staff *StaffService) *StageService {
	return &StageService{stage: stage, staff: staff}
}

// Start abre una sesión. Idempotente: si ya hay una abierta no crea
// otra (el índice parcial cubre la carrera).
func (s *StageService) Start(ctx context.Context, discordID string) error {
	if err := s.staff.Ensure(ctx, discordID, ""); err != nil {
		return err
	}
	opened, err := s.stage.Open(ctx, discordID, time.Now())
	if err != nil {
		return err
	}
	if !opened {
		log.Printf("stage: sesión ya abierta para %s, start ignorado", discordID)
	}
	return nil
}

// End cierra la sesión abierta más reciente y suma los minutos enteros
// transcurridos (floor, los parciales se truncan). Sin sesión abierta
// es no-op.
func (s *StageService) End(ctx context.Context, discordID string) error {
	sess, err := s.stage.LatestOpen(ctx, discordID)
	if err == storage.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	now := time.Now()
	minutes := int(now.Sub(sess.StartAt).Minutes())
	if minutes < 0 {
		minutes = 0
	}

	if err := s.stage.Close(ctx, sess.ID, now); err != nil {
		return err
	}
	return s.staff.AddStageMinutes(ctx, discordID, minutes)
}
