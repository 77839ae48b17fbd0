package service

import (
	"context"
	"time"

	"github.com/jose-valero/staff-attendance-bot/internal/infra/storage"
)

// Lo implementa internal/infra/storage.SettingsRepo
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Lo implementa internal/infra/storage.StaffRepo
type StaffRepo interface {
	GetByDiscordID(ctx context.Context, discordID string) (storage.StaffMember, error)
	Insert(ctx context.Context, discordID string, displayName *string) error
	UpdateDisplayName(ctx context.Context, discordID, displayName string) error
	SetStatus(ctx context.Context, discordID, status string) error
	IncrementMessages(ctx context.Context, discordID string) error
	SetMessagesCount(ctx context.Context, discordID string, count int) error
	AddStageMinutes(ctx context.Context, discordID string, minutes int) error
	SetStageMinutes(ctx context.Context, discordID string, minutes int) error
	SetPoints(ctx context.Context, discordID string, points float64) error
	Leaderboard(ctx context.Context, limit int) ([]storage.StaffMember, error)
	ListAll(ctx context.Context) ([]storage.StaffMember, error)
}

// Lo implementa internal/infra/storage.StageRepo
type StageRepo interface {
	Open(ctx context.Context, discordID string, startAt time.Time) (bool, error)
	LatestOpen(ctx context.Context, discordID string) (storage.StageSession, error)
	Close(ctx context.Context, id int64, endAt time.Time) error
}

// Lo implementa internal/infra/storage.MessageLogRepo
type MessageLogRepo interface {
	Insert(ctx context.Context, discordID, channelID string) error
}
