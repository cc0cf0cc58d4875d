package detail

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/gateway"
	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/internal/tui"
	listview "github.com/os2iot/iotconsole/internal/tui/list"
)

const (
	keyRetry  = "r"
	keyDelete = "d"
)

const (
	statsListHeight = 7
	chartWidth      = 40
	statColWidth    = 12
	dateLayout      = "02 Jan 2006"
)

// GatewayService is the subset of the API client used by GatewayModel.
type GatewayService interface {
	GetGateway(ctx context.Context, id string) (api.GatewayResponse, error)
	DeleteGateway(ctx context.Context, id string) error
}

type gatewayLoadedMsg struct {
	id   string
	resp api.GatewayResponse
	err  error
}

type gatewayDeletedMsg struct {
	id  string
	err error
}

// GatewayModel shows one gateway with its statistics and traffic charts.
type GatewayModel struct {
	ctx     context.Context
	svc     GatewayService
	tr      i18n.Translator
	id      string
	now     func() time.Time
	state   tui.ViewState
	loading *tui.LoadingState

	gw     api.Gateway
	stats  []api.GatewayStats
	charts gateway.Charts
	list   *listview.Model[api.GatewayStats]

	err       error
	status    string
	statusErr bool
}

// NewGatewayModel returns a screen for the gateway with the given id.
func NewGatewayModel(ctx context.Context, svc GatewayService, tr i18n.Translator, id string) *GatewayModel {
	return &GatewayModel{
		ctx:     ctx,
		svc:     svc,
		tr:      tr,
		id:      id,
		now:     time.Now,
		state:   tui.ViewStateLoading,
		loading: tui.NewLoadingState(tr.T(i18n.KeyLoading)),
	}
}

// SetClock overrides the clock used for the active status.
func (m *GatewayModel) SetClock(now func() time.Time) {
	m.now = now
}

// State returns the screen state.
func (m *GatewayModel) State() tui.ViewState {
	return m.state
}

// Gateway returns the loaded gateway.
func (m *GatewayModel) Gateway() api.Gateway {
	return m.gw
}

// Stats returns the loaded statistics, newest first.
func (m *GatewayModel) Stats() []api.GatewayStats {
	return m.stats
}

// Charts returns the chart series built from the statistics.
func (m *GatewayModel) Charts() gateway.Charts {
	return m.charts
}

// Init starts loading.
func (m *GatewayModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.load())
}

func (m *GatewayModel) load() tea.Cmd {
	ctx, svc, id := m.ctx, m.svc, m.id
	return func() tea.Msg {
		resp, err := svc.GetGateway(ctx, id)
		return gatewayLoadedMsg{id: id, resp: resp, err: err}
	}
}

// Update handles load results and key presses.
func (m *GatewayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gatewayLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.applyLoaded(msg)
		return m, nil

	case gatewayDeletedMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.status = m.tr.T(i18n.KeyDeleteFailed, msg.err)
			m.statusErr = true
			return m, nil
		}
		return m, tea.Sequence(tui.Back(), tui.Reload())

	case tea.WindowSizeMsg:
		if m.list != nil {
			m.list.SetHeight(min(statsListHeight, max(msg.Height/3, 1)))
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.loading.Update(msg)
}

func (m *GatewayModel) applyLoaded(msg gatewayLoadedMsg) {
	if msg.err != nil {
		m.err = msg.err
		m.state = tui.ViewStateError
		return
	}
	m.err = nil
	m.gw = msg.resp.Gateway
	m.stats = append([]api.GatewayStats(nil), msg.resp.Stats...)
	gateway.SortStatsNewestFirst(m.stats)
	m.charts = gateway.BuildCharts(m.stats)
	m.list = listview.New(m.stats, statsListHeight, renderStat)
	m.state = tui.ViewStateDetail
}

func (m *GatewayModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if m.state == tui.ViewStateConfirm {
		switch {
		case tui.IsConfirmKey(msg):
			m.state = tui.ViewStateDetail
			ctx, svc, id := m.ctx, m.svc, m.id
			return func() tea.Msg {
				return gatewayDeletedMsg{id: id, err: svc.DeleteGateway(ctx, id)}
			}
		case tui.IsCancelKey(msg):
			m.state = tui.ViewStateDetail
			m.status = ""
		}
		return nil
	}

	switch {
	case tui.IsQuitKey(msg):
		m.state = tui.ViewStateQuitting
		return tea.Quit
	case tui.IsBackKey(msg):
		return tui.Back()
	}

	switch m.state {
	case tui.ViewStateError:
		if key == keyRetry {
			m.state = tui.ViewStateLoading
			return m.load()
		}
	case tui.ViewStateDetail:
		if key == keyDelete {
			m.state = tui.ViewStateConfirm
			m.status = m.tr.T(i18n.KeyConfirmDelete, m.gw.Name)
			m.statusErr = false
			return nil
		}
		if m.list != nil {
			_, cmd := m.list.Update(msg)
			return cmd
		}
	case tui.ViewStateLoading, tui.ViewStateList, tui.ViewStateConfirm, tui.ViewStateQuitting:
	}
	return nil
}

func renderStat(s api.GatewayStats, selected bool) string {
	row := fmt.Sprintf("%-*s %*d %*d %*d",
		statColWidth, s.Timestamp.UTC().Format(dateLayout),
		statColWidth, s.RxPacketsReceived,
		statColWidth, s.TxPacketsEmitted,
		statColWidth, s.TxPacketsReceived,
	)
	if selected {
		return tui.TableSelectedStyle.Render(row)
	}
	return row
}

// View renders the gateway.
func (m *GatewayModel) View() string {
	var b strings.Builder

	title := m.id
	if m.gw.Name != "" {
		title = m.gw.Name
	}
	b.WriteString(tui.TitleStyle.Render(m.tr.T(i18n.KeyDetailGateway, title)))
	b.WriteString("\n\n")

	switch m.state {
	case tui.ViewStateLoading:
		b.WriteString(m.loading.View())
		return b.String()
	case tui.ViewStateError:
		b.WriteString(tui.CriticalStyle.Render(m.tr.T(i18n.KeyFetchFailed)))
		b.WriteString("\n")
		b.WriteString(tui.SubtleStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(tui.HelpStyle.Render("r retry • esc back"))
		return b.String()
	case tui.ViewStateDetail, tui.ViewStateConfirm, tui.ViewStateList, tui.ViewStateQuitting:
	}

	b.WriteString(tui.BoxStyle.Render(m.info()))
	b.WriteString("\n\n")

	b.WriteString(tui.HeaderStyle.Render(m.tr.T(i18n.KeyDetailStats)))
	b.WriteString("\n")
	if len(m.stats) == 0 {
		b.WriteString(tui.InfoStyle.Render(m.tr.T(i18n.KeyDetailNoStats)))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "%s\n", tui.LabelStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s",
			statColWidth, m.tr.T(i18n.KeyColDate),
			statColWidth, truncate(m.tr.T(i18n.KeyColReceived), statColWidth),
			statColWidth, truncate(m.tr.T(i18n.KeyColEmitted), statColWidth),
			statColWidth, truncate(m.tr.T(i18n.KeyColTxReceived), statColWidth))))
		b.WriteString(m.list.View())
		b.WriteString("\n\n")
		b.WriteString(tui.RenderBarChart(m.tr.T(i18n.KeyDetailReceived), m.charts.Labels, m.charts.Received, chartWidth))
		b.WriteString("\n\n")
		b.WriteString(tui.RenderBarChart(m.tr.T(i18n.KeyDetailSent), m.charts.Labels, m.charts.Sent, chartWidth))
		b.WriteString("\n")
	}

	if m.status != "" {
		style := tui.WarningStyle
		if m.statusErr {
			style = tui.CriticalStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(tui.HelpStyle.Render(m.tr.T(i18n.KeyDetailHelp)))
	return b.String()
}

func (m *GatewayModel) info() string {
	marker := gateway.Coordinates(m.gw, m.now())
	status := tui.CriticalStyle.Render(m.tr.T(i18n.KeyInactive))
	if marker.Active {
		status = tui.OKStyle.Render(m.tr.T(i18n.KeyActive))
	}

	lastSeen := m.tr.T(i18n.KeyNever)
	if m.gw.LastSeenAt != nil {
		lastSeen = m.gw.LastSeenAt.Local().Format(time.DateTime)
	}

	rows := [][2]string{
		{m.tr.T(i18n.KeyColGatewayID), m.gw.GatewayID},
		{m.tr.T(i18n.KeyDetailDescription), m.gw.Description},
		{m.tr.T(i18n.KeyColOrganization), marker.InternalOrganizationName},
		{m.tr.T(i18n.KeyDetailLocation), fmt.Sprintf("%.5f, %.5f", marker.Latitude, marker.Longitude)},
		{m.tr.T(i18n.KeyColLastSeen), lastSeen},
		{m.tr.T(i18n.KeyColStatus), status},
		{m.tr.T(i18n.KeyDetailTags), m.gw.TagsString()},
	}

	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r[0])))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		pad := strings.Repeat(" ", width-len([]rune(r[0])))
		lines[i] = tui.LabelStyle.Render(r[0]+pad) + "  " + tui.ValueStyle.Render(r[1])
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
