package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/os2iot/iotconsole/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var checkServer bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Prints the client version. With --check-server the backend /health endpoint is
queried and its version compared with the minimum this client supports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			info := version.Get()
			out := cmd.OutOrStdout()
			if s.format != outputTable {
				if !checkServer {
					return writeStructured(out, s.format, info)
				}
			} else {
				fmt.Fprintf(out, "iotconsole %s\n", info.Version)
				fmt.Fprintf(out, "  commit:     %s\n", info.GitCommit)
				fmt.Fprintf(out, "  built:      %s\n", info.BuildDate)
				fmt.Fprintf(out, "  go:         %s\n", info.GoVersion)
				fmt.Fprintf(out, "  platform:   %s\n", info.Platform)
			}
			if !checkServer {
				return nil
			}

			client, err := s.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			serverVersion, err := client.CheckServerVersion(ctx)
			if err != nil {
				logger.Warn().Ctx(ctx).Err(err).Msg("server version check failed")
				return fmt.Errorf("checking server version: %w", err)
			}

			if s.format != outputTable {
				return writeStructured(out, s.format, struct {
					version.Info `yaml:",inline"`

					ServerVersion string `json:"serverVersion" yaml:"serverVersion"`
					Compatible    bool   `json:"compatible"    yaml:"compatible"`
				}{Info: info, ServerVersion: serverVersion.String(), Compatible: true})
			}
			fmt.Fprintf(out, "  server:     %s (compatible)\n", serverVersion)
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkServer, "check-server", false, "query the backend version and check compatibility")
	return cmd
}
