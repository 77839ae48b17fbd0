package service

import (
	"context"
	"strings"

	"github.com/jose-valero/staff-attendance-bot/internal/infra/storage"
)

// Keys de la tabla settings. Config global mutable: se lee por
// operación, nada se cachea en memoria.
const (
	KeyStaffRole          = "staff_role"
	KeyStaffChannel       = "staff_channel"
	KeyLeaderboardChannel = "leaderboard_channel"
	KeyMonitoredChannels  = "monitored_channels"
	KeyStageMod           = "stage_mod"
	KeyStageMode          = "stage_mode"
	KeyPanelChannel       = "panel_message_channel"
	KeyPanelMessage       = "panel_message"
)

const (
	StageModeSingle = "single"
	StageModeRole   = "role"
)

type SettingsService struct {
	repo SettingsRepo
}

func NewSettingsService(r SettingsRepo) *SettingsService { return &SettingsService{repo: r} }

// get: key ausente → "" (no es error).
func (s *SettingsService) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if err == storage.ErrNotFound {
		return "", nil
	}
	return v, err
}

func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *SettingsService) StaffRoleID(ctx context.Context) (string, error) {
	return s.get(ctx, KeyStaffRole)
}

// PanelChannelID: staff_channel con fallback a leaderboard_channel.
func (s *SettingsService) PanelChannelID(ctx context.Context) (string, error) {
	v, err := s.get(ctx, KeyStaffChannel)
	if err != nil || v != "" {
		return v, err
	}
	return s.get(ctx, KeyLeaderboardChannel)
}

// MonitoredChannels: lista vacía = se monitorea todo (contrato
// elegido, ver DESIGN.md).
func (s *SettingsService) MonitoredChannels(ctx context.Context) ([]string, error) {
	raw, err := s.get(ctx, KeyMonitoredChannels)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			ids = append(ids, tok)
		}
	}
	return ids, nil
}

func (s *SettingsService) StageMode(ctx context.Context) (string, error) {
	v, err := s.get(ctx, KeyStageMode)
	if err != nil {
		return "", err
	}
	if v == "" {
		v = StageModeSingle
	}
	return v, nil
}

func (s *SettingsService) StageModID(ctx context.Context) (string, error) {
	return s.get(ctx, KeyStageMod)
}

// PanelRef: identidad persistida del mensaje del panel (canal, mensaje).
func (s *SettingsService) PanelRef(ctx context.Context) (string, string, error) {
	ch, err := s.get(ctx, KeyPanelChannel)
	if err != nil {
		return "", "", err
	}
	msg, err := s.get(ctx, KeyPanelMessage)
	if err != nil {
		return "", "", err
	}
	return ch, msg, nil
}

func (s *SettingsService) SetPanelRef(ctx context.Context, channelID, messageID string) error {
	if err := s.repo.Set(ctx, KeyPanelChannel, channelID); err != nil {
		return err
	}
	return s.repo.Set(ctx, KeyPanelMessage, messageID)
}
