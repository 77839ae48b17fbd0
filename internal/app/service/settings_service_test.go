package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelChannelFallback(t *testing.T) {
	tests := []struct {
		name        string
		staffCh     string
		leaderboard string
		want        string
	}{
		{name: "ninguno configurado", want: ""},
		{name: "solo leaderboard", leaderboard: "L1", want: "L1"},
		{name: "solo staff", staffCh: "S1", want: "S1"},
		{name: "staff gana sobre leaderboard", staffCh: "S1", leaderboard: "L1", want: "S1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSettingsRepo()
			if tt.staffCh != "" {
				repo.values[KeyStaffChannel] = tt.staffCh
			}
			if tt.leaderboard != "" {
				repo.values[KeyLeaderboardChannel] = tt.leaderboard
			}
			svc := NewSettingsService(repo)

			got, err := svc.PanelChannelID(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonitoredChannels(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "sin setting: monitorear todo", raw: "", want: nil},
		{name: "lista normal", raw: "1,2,3", want: []string{"1", "2", "3"}},
		{name: "espacios y tokens vacíos", raw: " 1 , ,2,", want: []string{"1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSettingsRepo()
			if tt.raw != "" {
				repo.values[KeyMonitoredChannels] = tt.raw
			}
			svc := NewSettingsService(repo)

			got, err := svc.MonitoredChannels(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStageModeDefault(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())
	mode, err := svc.StageMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StageModeSingle, mode)
}

func TestSettingAusenteNoEsError(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())
	role, err := svc.StaffRoleID(context.Background())
	require.NoError(t, err)
	assert.Empty(t, role)
}

func TestSettingErrorRealPropaga(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.getErr = assert.AnError
	svc := NewSettingsService(repo)

	_, err := svc.StaffRoleID(context.Background())
	assert.Error(t, err)
}

func TestPanelRefRoundtrip(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())
	ctx := context.Background()

	ch, msg, err := svc.PanelRef(ctx)
	require.NoError(t, err)
	assert.Empty(t, ch)
	assert.Empty(t, msg)

	require.NoError(t, svc.SetPanelRef(ctx, "C1", "M1"))
	ch, msg, err = svc.PanelRef(ctx)
	require.NoError(t, err)
	assert.Equal(t, "C1", ch)
	assert.Equal(t, "M1", msg)
}
