package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const maskedToken = "********"

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Validates the configuration assembled from the config file, .env, the
environment and command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			if err = s.cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Println("Configuration is valid")
			return nil
		},
	}
}

// NewConfigShowCmd creates the command printing the effective configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Prints the effective configuration as YAML (or JSON with -o json). The API token is masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			shown := *s.cfg
			if shown.API.Token != "" {
				shown.API.Token = maskedToken
			}
			format := s.format
			if format == outputTable {
				format = outputYAML
			}
			return writeStructured(cmd.OutOrStdout(), format, &shown)
		},
	}
}
