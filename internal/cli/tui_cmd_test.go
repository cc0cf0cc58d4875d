package cli

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/config"
	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/internal/pagedtable"
	"github.com/os2iot/iotconsole/internal/tui"
	"github.com/os2iot/iotconsole/internal/tui/detail"
)

func testSession(t *testing.T) (*session, *api.Client) {
	t.Helper()
	logger = zerolog.Nop()
	_, url := newBackend(t)
	cfg := config.Default()
	cfg.API.BaseURL = url
	client, err := api.NewClient(url)
	require.NoError(t, err)
	return &session{cfg: cfg, tr: i18n.MustNew(i18n.English), format: outputTable}, client
}

// drain runs cmd and feeds the resulting messages back into m until no
// commands remain. Spinner ticks are dropped.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg, tea.QuitMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
		return m
	default:
		next, follow := m.Update(msg)
		return drain(t, next, follow)
	}
}

func TestBuildConsole_Menu(t *testing.T) {
	s, client := testSession(t)

	root, err := buildConsole(context.Background(), s, client, "", "")
	require.NoError(t, err)
	menu, ok := root.(*tui.Menu)
	require.True(t, ok)
	assert.Contains(t, menu.View(), "Users")
	assert.Contains(t, menu.View(), "LoRaWAN gateways")
}

func TestBuildConsole_UnknownEntity(t *testing.T) {
	s, client := testSession(t)

	_, err := buildConsole(context.Background(), s, client, "sensors", "")
	require.ErrorIs(t, err, ErrUnknownEntity)
}

func TestBuildConsole_OpensFilteredTable(t *testing.T) {
	s, client := testSession(t)

	root, err := buildConsole(context.Background(), s, client, "gateways", "2")
	require.NoError(t, err)
	table, ok := root.(*tui.TableModel[api.Gateway])
	require.True(t, ok)

	cmd := table.Init()
	require.NotNil(t, cmd)
	_ = drain(t, table, cmd)

	st := table.State()
	assert.False(t, st.Loading)
	assert.False(t, st.Failed)
	assert.Equal(t, 3, st.TotalCount)
	for _, g := range st.Rows {
		assert.Equal(t, 2, g.InternalOrganizationID)
	}
}

func TestEntityTable_GatewayOpensDetail(t *testing.T) {
	s, client := testSession(t)

	entries := consoleEntries(context.Background(), s, client)
	require.Len(t, entries, len(consoleEntityNames()))
	for i, e := range entries {
		assert.Equal(t, consoleEntityNames()[i], e.name)
	}

	table, ok := entries[1].open("").(*tui.TableModel[api.Gateway])
	require.True(t, ok)
	_ = drain(t, table, table.Init())
	require.NotEmpty(t, table.State().Rows)

	_, cmd := table.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(tui.PushMsg)
	require.True(t, ok)
	gw, isDetail := push.Model.(*detail.GatewayModel)
	require.True(t, isDetail)

	_ = drain(t, gw, gw.Init())
	require.Equal(t, tui.ViewStateDetail, gw.State())
	assert.Equal(t, table.State().Rows[0].GatewayID, gw.Gateway().GatewayID)
	assert.NotEmpty(t, gw.Stats())
}

func TestEntityTable_DeleteGateway(t *testing.T) {
	s, client := testSession(t)

	table := newEntityTable(context.Background(), s, client, gatewaysEntity(), "", nil)
	_ = drain(t, table, table.Init())
	require.Equal(t, 7, table.State().TotalCount)
	first := table.State().Rows[0]
	require.NotEqual(t, first.ID, first.GatewayID)

	_, _ = table.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	_, cmd := table.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	_ = drain(t, table, cmd)

	assert.Equal(t, 6, table.State().TotalCount)
	for _, g := range table.State().Rows {
		assert.NotEqual(t, first.ID, g.ID)
	}
}

func TestEntityTable_DeleteReloads(t *testing.T) {
	s, client := testSession(t)

	table := newEntityTable(context.Background(), s, client, payloadDecodersEntity(), "", nil)
	_ = drain(t, table, table.Init())
	require.Equal(t, 6, table.State().TotalCount)

	_, _ = table.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	_, cmd := table.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	_ = drain(t, table, cmd)

	assert.Equal(t, 5, table.State().TotalCount)
	assert.Equal(t, 0, table.State().PageIndex)
}

func TestEntitySortFields(t *testing.T) {
	fields := gatewaysEntity().sortFields()
	assert.Equal(t, []string{"gatewayId", "internalOrganizationName", "lastSeenAt", "name"}, fields.GetValidFields())

	assert.Equal(t, pagedtable.DefaultPageSize, config.Default().Table.PageSize)
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	isolate(t)
	_, url := newBackend(t)

	_, err := execute(t, "", "--api-url", url, "tui")
	require.ErrorIs(t, err, ErrNotInteractive)
}
