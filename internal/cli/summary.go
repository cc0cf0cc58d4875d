package cli

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/internal/pagedtable"
)

// summaryConcurrency bounds the number of count requests in flight.
const summaryConcurrency = 3

// SummaryRow is the total count of one entity type.
type SummaryRow struct {
	Entity string `json:"entity" yaml:"entity"`
	Count  int    `json:"count"  yaml:"count"`
}

// counter returns the remote total of one collection.
type counter struct {
	name     string
	titleKey string
	count    func(ctx context.Context, c *api.Client) (int, error)
}

// countOf fetches a single row to learn the total of a collection.
func countOf[T any](e entity[T]) counter {
	return counter{
		name:     e.name,
		titleKey: e.titleKey,
		count: func(ctx context.Context, c *api.Client) (int, error) {
			res, err := e.fetcher(c).FetchPage(ctx, pagedtable.PageRequest{Limit: 1})
			if err != nil {
				return 0, err
			}
			return res.TotalCount, nil
		},
	}
}

func summaryCounters() []counter {
	return []counter{
		countOf(usersEntity()),
		countOf(gatewaysEntity()),
		countOf(deviceProfilesEntity()),
		countOf(payloadDecodersEntity()),
		countOf(dataTargetsEntity()),
		countOf(deviceModelsEntity()),
	}
}

// NewSummaryCmd creates the command that counts every entity type concurrently.
func NewSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the number of users, gateways, profiles, decoders, data targets and models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			client, err := s.Client()
			if err != nil {
				return err
			}

			rows, err := collectSummary(cmd.Context(), client, summaryCounters())
			if err != nil {
				return err
			}

			if s.format != outputTable {
				return writeStructured(cmd.OutOrStdout(), s.format, rows)
			}
			renderSummary(cmd, s.tr, rows)
			return nil
		},
	}
}

// collectSummary runs the counters concurrently. The first failure cancels
// the remaining requests.
func collectSummary(ctx context.Context, client *api.Client, counters []counter) ([]SummaryRow, error) {
	rows := make([]SummaryRow, len(counters))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)

	for i, c := range counters {
		g.Go(func() error {
			n, err := c.count(gctx, client)
			if err != nil {
				logger.Warn().Ctx(ctx).Err(err).Str("entity", c.name).Msg("count failed")
				return fmt.Errorf("counting %s: %w", c.name, err)
			}
			rows[i] = SummaryRow{Entity: c.name, Count: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func renderSummary(cmd *cobra.Command, tr i18n.Translator, rows []SummaryRow) {
	titles := make(map[string]string, len(rows))
	for _, c := range summaryCounters() {
		titles[c.name] = tr.T(c.titleKey)
	}

	t := newTableWriter(cmd.OutOrStdout())
	t.AppendHeader(table.Row{tr.T(i18n.KeyColType), tr.T(i18n.KeyColCount)})
	for _, r := range rows {
		t.AppendRow(table.Row{titles[r.Entity], tr.Number(r.Count)})
	}
	t.Render()
}
