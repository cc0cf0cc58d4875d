package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/tui"
	"github.com/os2iot/iotconsole/internal/tui/detail"
)

// ErrNotInteractive is returned when the console is started without a terminal.
var ErrNotInteractive = errors.New("the interactive console requires a terminal")

// ErrUnknownEntity is returned for an unknown tui entity argument.
var ErrUnknownEntity = errors.New("unknown entity")

// NewTUICmd creates the command starting the interactive console.
func NewTUICmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "tui [entity]",
		Short: "Browse entities in an interactive console",
		Long: `Starts a full-screen console. Without an argument a menu of all entity
types is shown; with an argument the console opens that list directly.

Valid entities: ` + strings.Join(consoleEntityNames(), ", "),
		Example: `  # Open the menu
  iotconsole tui

  # Open gateways of organization 2
  iotconsole tui gateways --filter 2`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: consoleEntityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			if tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
				return ErrNotInteractive
			}
			client, err := s.Client()
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			ctx := cmd.Context()
			root, err := buildConsole(ctx, s, client, name, filter)
			if err != nil {
				return err
			}

			logger.Debug().Ctx(ctx).Str("entity", name).Msg("starting console")
			p := tea.NewProgram(tui.NewApp(root), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err = p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("running console: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "",
		"scope the list named by the entity argument: permission id for users, organization id for gateways, decoders and models, application id for data targets")
	return cmd
}

// consoleEntry opens one entity list with the given filter.
type consoleEntry struct {
	name     string
	titleKey string
	open     func(filter string) tea.Model
}

func consoleEntityNames() []string {
	return []string{"users", "gateways", "device-profiles", "payload-decoders", "datatargets", "device-models"}
}

func consoleEntries(ctx context.Context, s *session, client *api.Client) []consoleEntry {
	openGateway := func(g api.Gateway) tea.Model {
		return detail.NewGatewayModel(ctx, client, s.tr, g.ID)
	}
	return []consoleEntry{
		entryFor(ctx, s, client, usersEntity(), nil),
		entryFor(ctx, s, client, gatewaysEntity(), openGateway),
		entryFor(ctx, s, client, deviceProfilesEntity(), nil),
		entryFor(ctx, s, client, payloadDecodersEntity(), nil),
		entryFor(ctx, s, client, dataTargetsEntity(), nil),
		entryFor(ctx, s, client, deviceModelsEntity(), nil),
	}
}

func entryFor[T any](
	ctx context.Context,
	s *session,
	client *api.Client,
	e entity[T],
	open func(T) tea.Model,
) consoleEntry {
	return consoleEntry{
		name:     e.name,
		titleKey: e.titleKey,
		open: func(filter string) tea.Model {
			return newEntityTable(ctx, s, client, e, filter, open)
		},
	}
}

// newEntityTable builds the paginated table screen of e.
func newEntityTable[T any](
	ctx context.Context,
	s *session,
	client *api.Client,
	e entity[T],
	filter string,
	open func(T) tea.Model,
) *tui.TableModel[T] {
	cfg := tui.TableConfig[T]{
		TitleKey:        e.titleKey,
		Columns:         e.columns,
		Fetcher:         e.fetcher(client),
		Filter:          filter,
		PageSize:        s.cfg.Table.PageSize,
		PageSizeOptions: s.cfg.Table.PageSizeOptions,
		Translator:      s.tr,
		Label:           e.label,
		Open:            open,
	}
	if e.remove != nil {
		remove := e.remove(client)
		cfg.Delete = func(ctx context.Context, row T) error {
			err := remove(ctx, e.id(row))
			if err != nil {
				logger.Error().Ctx(ctx).Err(err).Str("entity", e.name).Str("id", e.id(row)).Msg("delete failed")
			}
			return err
		}
	}
	return tui.NewTableModel(ctx, cfg)
}

// buildConsole returns the first screen: the menu, or the list named by entity.
// The filter only applies to a directly opened list.
func buildConsole(ctx context.Context, s *session, client *api.Client, entity, filter string) (tea.Model, error) {
	entries := consoleEntries(ctx, s, client)
	if entity != "" {
		idx := slices.IndexFunc(entries, func(e consoleEntry) bool { return e.name == entity })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownEntity, entity, strings.Join(consoleEntityNames(), ", "))
		}
		return entries[idx].open(filter), nil
	}

	items := make([]tui.MenuEntry, len(entries))
	for i, e := range entries {
		items[i] = tui.MenuEntry{
			Name:     e.name,
			TitleKey: e.titleKey,
			Open:     func() tea.Model { return e.open("") },
		}
	}
	return tui.NewMenu(s.tr, items), nil
}
