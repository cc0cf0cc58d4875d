package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/os2iot/iotconsole/internal/cli/pagination"
	"github.com/os2iot/iotconsole/internal/i18n"
)

// ErrMissingFilter is returned when a list requires a scoping flag.
var ErrMissingFilter = errors.New("missing required filter")

// newEntityCmd creates the command group for e with list and, when the
// collection supports it, delete.
func newEntityCmd[T any](e entity[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     e.name,
		Aliases: e.aliases,
		Short:   e.short,
	}
	cmd.AddCommand(newListCmd(e))
	if e.remove != nil {
		cmd.AddCommand(newDeleteCmd(e))
	}
	return cmd
}

func newListCmd[T any](e entity[T]) *cobra.Command {
	params := pagination.NewPaginationParams()
	var filter string

	fields := e.sortFields()
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + e.name + " one page at a time",
		Long: fmt.Sprintf("Lists %s using server-side pagination and ordering.\n\nSortable fields: %v",
			e.name, fields.GetValidFields()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			if e.filter != nil && e.filter.required && filter == "" {
				return fmt.Errorf("%w: --%s", ErrMissingFilter, e.filter.flag)
			}
			if !cmd.Flags().Changed("limit") && !cmd.Flags().Changed("page-size") {
				params.Limit = s.cfg.Table.PageSize
			}

			req, err := params.Request(fields, filter)
			if err != nil {
				return err
			}
			client, err := s.Client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger.Debug().Ctx(ctx).Str("entity", e.name).Int("limit", req.Limit).Int("offset", req.Offset).
				Str("sort", req.SortColumn).Str("filter", req.Filter).Msg("listing")

			res, err := e.fetcher(client).FetchPage(ctx, req)
			if err != nil {
				logger.Error().Ctx(ctx).Err(err).Str("entity", e.name).Msg("list failed")
				return fmt.Errorf("listing %s: %w", e.name, err)
			}

			meta := pagination.NewPaginationMeta(req, res.TotalCount)
			out := cmd.OutOrStdout()
			if s.format != outputTable {
				return writeStructured(out, s.format, listOutput[T]{Items: res.Rows, Pagination: meta})
			}

			if len(res.Rows) == 0 {
				fmt.Fprintln(out, s.tr.T(i18n.KeyEmpty))
			} else {
				renderRows(out, s.tr, e.columns, res.Rows).Render()
			}
			fmt.Fprintln(out, paginationFooter(s.tr, meta))
			return nil
		},
	}

	params.AddFlags(cmd)
	if e.filter != nil {
		cmd.Flags().StringVar(&filter, e.filter.flag, "", e.filter.usage)
		if e.filter.required {
			_ = cmd.MarkFlagRequired(e.filter.flag)
		}
	}
	return cmd
}

func newDeleteCmd[T any](e entity[T]) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of the " + e.name,
		Args:  requireArgs(1, "exactly one id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, e.name, args[0], yes, func(s *session) (func(string) error, error) {
				client, err := s.Client()
				if err != nil {
					return nil, err
				}
				remove := e.remove(client)
				return func(id string) error { return remove(cmd.Context(), id) }, nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// runDelete confirms and performs a delete. Failures are logged and returned.
func runDelete(
	cmd *cobra.Command,
	what, id string,
	yes bool,
	resolve func(s *session) (func(id string) error, error),
) error {
	s, err := sessionFrom(cmd)
	if err != nil {
		return err
	}
	question := s.tr.T(i18n.KeyConfirmDelete, id)
	if err = confirmDestructive(cmd.OutOrStdout(), cmd.InOrStdin(), question, yes, stdinIsTerminal()); err != nil {
		return err
	}

	remove, err := resolve(s)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err = remove(id); err != nil {
		logger.Error().Ctx(ctx).Err(err).Str("entity", what).Str("id", id).Msg("delete failed")
		return fmt.Errorf("deleting %s %s: %w", what, id, err)
	}
	logger.Info().Ctx(ctx).Str("entity", what).Str("id", id).Msg("deleted")
	fmt.Fprintln(cmd.OutOrStdout(), s.tr.T(i18n.KeyDeleted, id))
	return nil
}
