package detail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/internal/tui"
)

type fakeGateways struct {
	resp      api.GatewayResponse
	getErr    error
	deleteErr error
	deleted   []string
}

func (f *fakeGateways) GetGateway(_ context.Context, _ string) (api.GatewayResponse, error) {
	return f.resp, f.getErr
}

func (f *fakeGateways) DeleteGateway(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

var now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func sampleResponse() api.GatewayResponse {
	seen := now.Add(-time.Minute)
	return api.GatewayResponse{
		Gateway: api.Gateway{
			ID:                       "aa555a0000000001",
			GatewayID:                "aa555a0000000001",
			Name:                     "gw-01",
			LastSeenAt:               &seen,
			InternalOrganizationName: "Aarhus",
			Tags:                     map[string]string{"site": "harbour"},
		},
		Stats: []api.GatewayStats{
			{Timestamp: time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), RxPacketsReceived: 8},
			{Timestamp: time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), RxPacketsReceived: 9},
			{Timestamp: time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC), RxPacketsReceived: 7},
		},
	}
}

// runCmd executes cmd once and returns its message, skipping spinner ticks
// inside batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case spinner.TickMsg, nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func loaded(t *testing.T, svc *fakeGateways) *GatewayModel {
	t.Helper()
	m := NewGatewayModel(context.Background(), svc, i18n.MustNew(i18n.English), "aa555a0000000001")
	m.SetClock(func() time.Time { return now })
	for _, msg := range runCmd(m.Init()) {
		_, _ = m.Update(msg)
	}
	return m
}

func TestGatewayModel_Load(t *testing.T) {
	m := loaded(t, &fakeGateways{resp: sampleResponse()})

	require.Equal(t, tui.ViewStateDetail, m.State())
	stats := m.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, 9, stats[0].RxPacketsReceived)
	assert.Equal(t, 7, stats[2].RxPacketsReceived)

	charts := m.Charts()
	assert.Equal(t, []string{"07 Mar", "08 Mar", "09 Mar"}, charts.Labels)
	assert.Equal(t, []int{7, 8, 9}, charts.Received.Values)

	view := m.View()
	assert.Contains(t, view, "Gateway gw-01")
	assert.Contains(t, view, "Active")
	assert.Contains(t, view, `{"site":"harbour"}`)
	assert.Contains(t, view, "Received packets")
}

func TestGatewayModel_LoadErrorAndRetry(t *testing.T) {
	svc := &fakeGateways{getErr: errors.New("timeout")}
	m := loaded(t, svc)
	require.Equal(t, tui.ViewStateError, m.State())
	assert.Contains(t, m.View(), "timeout")

	svc.getErr = nil
	svc.resp = sampleResponse()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, tui.ViewStateLoading, m.State())
	for _, msg := range runCmd(cmd) {
		_, _ = m.Update(msg)
	}
	assert.Equal(t, tui.ViewStateDetail, m.State())
}

func TestGatewayModel_DeleteSuccessGoesBack(t *testing.T) {
	svc := &fakeGateways{resp: sampleResponse()}
	m := loaded(t, svc)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Equal(t, tui.ViewStateConfirm, m.State())
	assert.Contains(t, m.View(), "Delete gw-01? (y/n)")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	_, next := m.Update(msgs[0])

	assert.Equal(t, []string{"aa555a0000000001"}, svc.deleted)
	assert.NotNil(t, next)
}

func TestGatewayModel_DeleteFailureStays(t *testing.T) {
	svc := &fakeGateways{resp: sampleResponse(), deleteErr: errors.New("in use")}
	m := loaded(t, svc)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	for _, msg := range runCmd(cmd) {
		_, follow := m.Update(msg)
		assert.Nil(t, follow)
	}
	assert.Equal(t, tui.ViewStateDetail, m.State())
	assert.Contains(t, m.View(), "Delete failed: in use")
}

func TestGatewayModel_DeleteCancelled(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("n")},
		{Type: tea.KeyEscape},
	} {
		t.Run(key.String(), func(t *testing.T) {
			svc := &fakeGateways{resp: sampleResponse()}
			m := loaded(t, svc)

			_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
			require.Equal(t, tui.ViewStateConfirm, m.State())

			_, cmd := m.Update(key)
			assert.Nil(t, cmd)
			assert.Equal(t, tui.ViewStateDetail, m.State())
			assert.NotContains(t, m.View(), "Delete gw-01?")
			assert.Empty(t, svc.deleted)
		})
	}
}

func TestGatewayModel_InactiveWithoutStats(t *testing.T) {
	resp := sampleResponse()
	old := now.Add(-time.Hour)
	resp.Gateway.LastSeenAt = &old
	resp.Stats = nil

	m := loaded(t, &fakeGateways{resp: resp})
	view := m.View()
	assert.Contains(t, view, "Inactive")
	assert.Contains(t, view, "No statistics")
}

func TestGatewayModel_EscGoesBack(t *testing.T) {
	m := loaded(t, &fakeGateways{resp: sampleResponse()})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, tui.BackMsg{}, cmd())
}
