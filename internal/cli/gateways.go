package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/gateway"
	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/internal/tui"
)

const showChartWidth = 40

// gatewayDetail is the structured output of gateways show.
type gatewayDetail struct {
	Gateway api.Gateway        `json:"gateway" yaml:"gateway"`
	Active  bool               `json:"active"  yaml:"active"`
	Marker  gateway.Marker     `json:"marker"  yaml:"marker"`
	Stats   []api.GatewayStats `json:"stats"   yaml:"stats"`
}

func newGatewaysCmd() *cobra.Command {
	cmd := newEntityCmd(gatewaysEntity())
	cmd.AddCommand(NewGatewayShowCmd())
	return cmd
}

// NewGatewayShowCmd creates the command printing one gateway with its statistics.
func NewGatewayShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a gateway with its packet statistics",
		Args:  requireArgs(1, "exactly one gateway id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			client, err := s.Client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			resp, err := client.GetGateway(ctx, args[0])
			if err != nil {
				logger.Error().Ctx(ctx).Err(err).Str("id", args[0]).Msg("loading gateway failed")
				return fmt.Errorf("loading gateway %s: %w", args[0], err)
			}
			gateway.SortStatsNewestFirst(resp.Stats)

			now := time.Now()
			detail := gatewayDetail{
				Gateway: resp.Gateway,
				Active:  gateway.IsActive(resp.Gateway, now),
				Marker:  gateway.Coordinates(resp.Gateway, now),
				Stats:   resp.Stats,
			}
			if s.format != outputTable {
				return writeStructured(cmd.OutOrStdout(), s.format, detail)
			}
			renderGatewayDetail(cmd.OutOrStdout(), s.tr, detail)
			return nil
		},
	}
}

func renderGatewayDetail(w io.Writer, tr i18n.Translator, d gatewayDetail) {
	g := d.Gateway

	info := newTableWriter(w)
	info.SetTitle(tr.T(i18n.KeyDetailGateway, g.Name))
	info.AppendRows([]table.Row{
		{tr.T(i18n.KeyColGatewayID), g.GatewayID},
		{tr.T(i18n.KeyDetailDescription), g.Description},
		{tr.T(i18n.KeyColOrganization), g.InternalOrganizationName},
		{tr.T(i18n.KeyDetailLocation), fmt.Sprintf("%.5f, %.5f", d.Marker.Latitude, d.Marker.Longitude)},
		{tr.T(i18n.KeyColLastSeen), formatTime(g.LastSeenAt, tr)},
		{tr.T(i18n.KeyColStatus), activeLabel(d.Active, tr)},
		{tr.T(i18n.KeyDetailTags), g.TagsString()},
	})
	info.Render()
	fmt.Fprintln(w)

	if len(d.Stats) == 0 {
		fmt.Fprintln(w, tr.T(i18n.KeyDetailNoStats))
		return
	}

	stats := newTableWriter(w)
	stats.SetTitle(tr.T(i18n.KeyDetailStats))
	stats.AppendHeader(table.Row{
		tr.T(i18n.KeyColDate), tr.T(i18n.KeyColReceived), tr.T(i18n.KeyColEmitted), tr.T(i18n.KeyColTxReceived),
	})
	for _, st := range d.Stats {
		stats.AppendRow(table.Row{
			st.Timestamp.Local().Format(time.DateOnly),
			strconv.Itoa(st.RxPacketsReceived),
			strconv.Itoa(st.TxPacketsEmitted),
			strconv.Itoa(st.TxPacketsReceived),
		})
	}
	stats.Render()
	fmt.Fprintln(w)

	charts := gateway.BuildCharts(d.Stats)
	fmt.Fprintln(w, tui.RenderBarChart(tr.T(i18n.KeyDetailReceived), charts.Labels, charts.Received, showChartWidth))
	fmt.Fprintln(w)
	fmt.Fprintln(w, tui.RenderBarChart(tr.T(i18n.KeyDetailSent), charts.Labels, charts.Sent, showChartWidth))
}
