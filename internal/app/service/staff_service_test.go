package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/staff-attendance-bot/internal/domain"
	"github.com/jose-valero/staff-attendance-bot/internal/infra/storage"
)

func strPtr(s string) *string { return &s }

func TestEnsureNameRules(t *testing.T) {
	tests := []struct {
		name       string
		stored     *string // nil = la fila no existe
		supplied   string
		wantStored string
	}{
		{
			name:       "fila nueva con nombre",
			stored:     nil,
			supplied:   "Jose",
			wantStored: "Jose",
		},
		{
			name:       "placeholder pisado por nombre real",
			stored:     strPtr("staff1"),
			supplied:   "Jose",
			wantStored: "Jose",
		},
		{
			name:       "placeholder case-insensitive pisado",
			stored:     strPtr("STAFF"),
			supplied:   "Valeria",
			wantStored: "Valeria",
		},
		{
			name:       "nombre real nunca se pisa",
			stored:     strPtr("Jose"),
			supplied:   "Otro",
			wantStored: "Jose",
		},
		{
			name:       "placeholder nuevo no pisa placeholder",
			stored:     strPtr("staff2"),
			supplied:   "staff9",
			wantStored: "staff2",
		},
		{
			name:       "sin nombre no toca nada",
			stored:     strPtr("Jose"),
			supplied:   "",
			wantStored: "Jose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeStaffRepo()
			if tt.stored != nil {
				repo.rows["u1"] = &storage.StaffMember{DiscordID: "u1", DisplayName: tt.stored, Status: "off"}
			}
			svc := NewStaffService(repo, &fakeMessageLogRepo{})

			err := svc.Ensure(context.Background(), "u1", tt.supplied)
			require.NoError(t, err)

			m := repo.rows["u1"]
			require.NotNil(t, m)
			if tt.wantStored == "" {
				assert.Nil(t, m.DisplayName)
			} else {
				require.NotNil(t, m.DisplayName)
				assert.Equal(t, tt.wantStored, *m.DisplayName)
			}
		})
	}
}

func TestEnsureIdempotente(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(repo, &fakeMessageLogRepo{})

	require.NoError(t, svc.Ensure(context.Background(), "u1", ""))
	require.NoError(t, svc.Ensure(context.Background(), "u1", ""))
	assert.Len(t, repo.rows, 1)
}

func TestCountMessageSequence(t *testing.T) {
	repo := newFakeStaffRepo()
	logs := &fakeMessageLogRepo{}
	svc := NewStaffService(repo, logs)
	ctx := context.Background()

	const n = 3
	for i := 0; i < n; i++ {
		require.NoError(t, svc.CountMessage(ctx, "u1", "ch1"))
	}

	m := repo.rows["u1"]
	require.NotNil(t, m)
	assert.Equal(t, n, m.MessagesCount)
	assert.Equal(t, domain.Points(n, 0), m.Points)
	assert.GreaterOrEqual(t, m.Points, float64(n)/100.0)
	assert.Len(t, logs.entries, n)
}

func TestCountMessageFallback(t *testing.T) {
	repo := newFakeStaffRepo()
	repo.rows["u1"] = &storage.StaffMember{DiscordID: "u1", Status: "active", MessagesCount: 7}
	repo.incrementErr = errors.New("statement unavailable")
	svc := NewStaffService(repo, &fakeMessageLogRepo{})

	require.NoError(t, svc.CountMessage(context.Background(), "u1", "ch1"))
	assert.Equal(t, 8, repo.rows["u1"].MessagesCount)
}

func TestCountMessageAuditFailureIgnored(t *testing.T) {
	repo := newFakeStaffRepo()
	logs := &fakeMessageLogRepo{insertErr: errors.New("audit caído")}
	svc := NewStaffService(repo, logs)

	require.NoError(t, svc.CountMessage(context.Background(), "u1", "ch1"))
	assert.Equal(t, 1, repo.rows["u1"].MessagesCount)
}

func TestRecomputePoints(t *testing.T) {
	repo := newFakeStaffRepo()
	repo.rows["u1"] = &storage.StaffMember{DiscordID: "u1", MessagesCount: 250, MinutesOnStage: 90}
	svc := NewStaffService(repo, &fakeMessageLogRepo{})
	ctx := context.Background()

	require.NoError(t, svc.RecomputePoints(ctx, "u1"))
	assert.Equal(t, 5.5, repo.rows["u1"].Points)

	// idempotente: segunda pasada con contadores iguales, mismo valor
	require.NoError(t, svc.RecomputePoints(ctx, "u1"))
	assert.Equal(t, 5.5, repo.rows["u1"].Points)
}

func TestRecomputePointsSinFila(t *testing.T) {
	svc := NewStaffService(newFakeStaffRepo(), &fakeMessageLogRepo{})
	assert.NoError(t, svc.RecomputePoints(context.Background(), "nadie"))
}

func TestStatusTransitions(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(repo, &fakeMessageLogRepo{})
	ctx := context.Background()

	// sin fila → off
	st, err := svc.Status(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOff, st)

	msg, err := svc.CheckIn(ctx, "u1", "Jose")
	require.NoError(t, err)
	assert.Contains(t, msg, "Jose")
	assert.Equal(t, "active", repo.rows["u1"].Status)

	_, err = svc.Pause(ctx, "u1", "Jose")
	require.NoError(t, err)
	assert.Equal(t, "paused", repo.rows["u1"].Status)

	_, err = svc.Resume(ctx, "u1", "Jose")
	require.NoError(t, err)
	assert.Equal(t, "active", repo.rows["u1"].Status)

	_, err = svc.SignOff(ctx, "u1", "Jose")
	require.NoError(t, err)
	assert.Equal(t, "off", repo.rows["u1"].Status)
}
