package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jose-valero/staff-attendance-bot/internal/domain"
	"github.com/jose-valero/staff-attendance-bot/internal/infra/storage"
)

type StaffService struct {
	staff StaffRepo
	logs  MessageLogRepo
}

func NewStaffService(staff StaffRepo, logs MessageLogRepo) *StaffService {
	return &StaffService{staff: staff, logs: logs}
}

// Ensure crea la fila si falta. Un nombre real reemplaza a un
// placeholder ("staff", "staff1"), nunca al revés.
func (s *StaffService) Ensure(ctx context.Context, discordID, displayName string) error {
	m, err := s.staff.GetByDiscordID(ctx, discordID)
	if err == storage.ErrNotFound {
		var name *string
		if displayName != "" {
			name = &displayName
		}
		return s.staff.Insert(ctx, discordID, name)
	}
	if err != nil {
		return err
	}

	if displayName == "" || domain.IsPlaceholderName(displayName) {
		return nil
	}
	current := ""
	if m.DisplayName != nil {
		current = *m.DisplayName
	}
	if domain.IsPlaceholderName(current) {
		return s.staff.UpdateDisplayName(ctx, discordID, displayName)
	}
	return nil
}

func (s *StaffService) CheckIn(ctx context.Context, discordID, displayName string) (string, error) {
	if err := s.Ensure(ctx, discordID, displayName); err != nil {
		return "", err
	}
	if err := s.staff.SetStatus(ctx, discordID, string(domain.StatusActive)); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Presente. Nombre registrado: **%s**", displayName), nil
}

func (s *StaffService) Pause(ctx context.Context, discordID, displayName string) (string, error) {
	if err := s.Ensure(ctx, discordID, displayName); err != nil {
		return "", err
	}
	if err := s.staff.SetStatus(ctx, discordID, string(domain.StatusPaused)); err != nil {
		return "", err
	}
	return "⏸️ Pausa registrada. El conteo queda detenido.", nil
}

func (s *StaffService) Resume(ctx context.Context, discordID, displayName string) (string, error) {
	if err := s.Ensure(ctx, discordID, displayName); err != nil {
		return "", err
	}
	if err := s.staff.SetStatus(ctx, discordID, string(domain.StatusActive)); err != nil {
		return "", err
	}
	return "▶️ Conteo reanudado.", nil
}

func (s *StaffService) SignOff(ctx context.Context, discordID, displayName string) (string, error) {
	if err := s.Ensure(ctx, discordID, displayName); err != nil {
		return "", err
	}
	if err := s.staff.SetStatus(ctx, discordID, string(domain.StatusOff)); err != nil {
		return "", err
	}
	return "⛔ Quedaste off.", nil
}

// Status del usuario; 'off' si la fila no existe todavía.
func (s *StaffService) Status(ctx context.Context, discordID string) (domain.Status, error) {
	m, err := s.staff.GetByDiscordID(ctx, discordID)
	if err == storage.ErrNotFound {
		return domain.StatusOff, nil
	}
	if err != nil {
		return "", err
	}
	if !domain.ValidStatus(m.Status) {
		return domain.StatusOff, nil
	}
	return domain.Status(m.Status), nil
}

// CountMessage: +1 atómico preferido; si el statement falla, fallback
// read-modify-write (carrera conocida, aceptada). Después log
// best-effort y recompute.
func (s *StaffService) CountMessage(ctx context.Context, discordID, channelID string) error {
	if err := s.Ensure(ctx, discordID, ""); err != nil {
		return err
	}

	if err := s.staff.IncrementMessages(ctx, discordID); err != nil {
		log.Printf("increment fallback para %s: %v", discordID, err)
		m, gerr := s.staff.GetByDiscordID(ctx, discordID)
		if gerr != nil {
			return gerr
		}
		if err := s.staff.SetMessagesCount(ctx, discordID, m.MessagesCount+1); err != nil {
			return err
		}
	}

	if err := s.logs.Insert(ctx, discordID, channelID); err != nil {
		log.Printf("message_log insert (ignorado): %v", err)
	}

	return s.RecomputePoints(ctx, discordID)
}

// AddStageMinutes: suma atómica con el mismo fallback que CountMessage,
// y recompute al final.
func (s *StaffService) AddStageMinutes(ctx context.Context, discordID string, minutes int) error {
	if err := s.staff.AddStageMinutes(ctx, discordID, minutes); err != nil {
		log.Printf("add minutes fallback para %s: %v", discordID, err)
		m, gerr := s.staff.GetByDiscordID(ctx, discordID)
		if gerr != nil {
			return gerr
		}
		if err := s.staff.SetStageMinutes(ctx, discordID, m.MinutesOnStage+minutes); err != nil {
			return err
		}
	}
	return s.RecomputePoints(ctx, discordID)
}

// RecomputePoints relee contadores y reescribe points. Idempotente;
// no-op si la fila no existe.
func (s *StaffService) RecomputePoints(ctx context.Context, discordID string) error {
	m, err := s.staff.GetByDiscordID(ctx, discordID)
	if err == storage.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return s.staff.SetPoints(ctx, discordID, domain.Points(m.MessagesCount, m.MinutesOnStage))
}

func (s *StaffService) Leaderboard(ctx context.Context, limit int) ([]storage.StaffMember, error) {
	return s.staff.Leaderboard(ctx, limit)
}

func (s *StaffService) ListAll(ctx context.Context) ([]storage.StaffMember, error) {
	return s.staff.ListAll(ctx)
}
