package service

import (
	"context"
	"time"

	"github.com/jose-valero/staff-attendance-bot/internal/infra/storage"
)

// fakes en memoria para los tests de services. Los campos *Err fuerzan
// caminos de error (p.ej. el fallback del increment atómico).

type fakeStaffRepo struct {
	rows map[string]*storage.StaffMember

	incrementErr  error
	addMinutesErr error
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{rows: map[string]*storage.StaffMember{}}
}

func (f *fakeStaffRepo) GetByDiscordID(_ context.Context, id string) (storage.StaffMember, error) {
	if m, ok := f.rows[id]; ok {
		return *m, nil
	}
	return storage.StaffMember{}, storage.ErrNotFound
}

func (f *fakeStaffRepo) Insert(_ context.Context, id string, displayName *string) error {
	if _, ok := f.rows[id]; ok {
		return nil
	}
	f.rows[id] = &storage.StaffMember{DiscordID: id, DisplayName: displayName, Status: "off"}
	return nil
}

func (f *fakeStaffRepo) UpdateDisplayName(_ context.Context, id, name string) error {
	if m, ok := f.rows[id]; ok {
		m.DisplayName = &name
	}
	return nil
}

func (f *fakeStaffRepo) SetStatus(_ context.Context, id, status string) error {
	if m, ok := f.rows[id]; ok {
		m.Status = status
	}
	return nil
}

func (f *fakeStaffRepo) IncrementMessages(_ context.Context, id string) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	if m, ok := f.rows[id]; ok {
		m.MessagesCount++
	}
	return nil
}

func (f *fakeStaffRepo) SetMessagesCount(_ context.Context, id string, count int) error {
	if m, ok := f.rows[id]; ok {
		m.MessagesCount = count
	}
	return nil
}

func (f *fakeStaffRepo) AddStageMinutes(_ context.Context, id string, minutes int) error {
	if f.addMinutesErr != nil {
		return f.addMinutesErr
	}
	if m, ok := f.rows[id]; ok {
		m.MinutesOnStage += minutes
	}
	return nil
}

func (f *fakeStaffRepo) SetStageMinutes(_ context.Context, id string, minutes int) error {
	if m, ok := f.rows[id]; ok {
		m.MinutesOnStage = minutes
	}
	return nil
}

func (f *fakeStaffRepo) SetPoints(_ context.Context, id string, points float64) error {
	if m, ok := f.rows[id]; ok {
		m.Points = points
	}
	return nil
}

func (f *fakeStaffRepo) Leaderboard(_ context.Context, limit int) ([]storage.StaffMember, error) {
	out, _ := f.ListAll(context.Background())
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStaffRepo) ListAll(_ context.Context) ([]storage.StaffMember, error) {
	var out []storage.StaffMember
	for _, m := range f.rows {
		out = append(out, *m)
	}
	return out, nil
}

type auditEntry struct{ discordID, channelID string }

type fakeMessageLogRepo struct {
	entries   []auditEntry
	insertErr error
}

func (f *fakeMessageLogRepo) Insert(_ context.Context, discordID, channelID string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, auditEntry{discordID, channelID})
	return nil
}

type fakeStageRepo struct {
	sessions []*storage.StageSession
	nextID   int64
}

func (f *fakeStageRepo) Open(_ context.Context, id string, startAt time.Time) (bool, error) {
	for _, s := range f.sessions {
		if s.DiscordID == id && s.EndAt == nil {
			return false, nil // índice parcial: ya hay una abierta
		}
	}
	f.nextID++
	f.sessions = append(f.sessions, &storage.StageSession{ID: f.nextID, DiscordID: id, StartAt: startAt})
	return true, nil
}

func (f *fakeStageRepo) LatestOpen(_ context.Context, id string) (storage.StageSession, error) {
	var latest *storage.StageSession
	for _, s := range f.sessions {
		if s.DiscordID != id || s.EndAt != nil {
			continue
		}
		if latest == nil || s.StartAt.After(latest.StartAt) {
			latest = s
		}
	}
	if latest == nil {
		return storage.StageSession{}, storage.ErrNotFound
	}
	return *latest, nil
}

func (f *fakeStageRepo) Close(_ context.Context, id int64, endAt time.Time) error {
	for _, s := range f.sessions {
		if s.ID == id {
			s.EndAt = &endAt
		}
	}
	return nil
}

type fakeSettingsRepo struct {
	values map[string]string
	getErr error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{values: map[string]string{}}
}

func (f *fakeSettingsRepo) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", storage.ErrNotFound
}

func (f *fakeSettingsRepo) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}
