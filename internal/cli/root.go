// Package cli implements the iotconsole command tree.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/os2iot/iotconsole/internal/config"
	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Names of the persistent flags.
const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagAPIURL = "api-url"
	flagToken  = "token"
	flagLang   = "lang"
	flagOutput = "output"
)

// NewRootCmd creates the root Cobra command for the iotconsole CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit environment
// lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "iotconsole",
		Short:         "Terminal console for the OS2IoT platform",
		Long:          "iotconsole lists, inspects and deletes users, LoRaWAN gateways, device profiles,\npayload decoders, data targets and device models of an OS2IoT backend.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				cmd.PrintErrf("Warning: %v\n", err)
			}

			configPath, _ := cmd.Flags().GetString(flagConfig)
			cfg, err := config.Load(configPath)
			if err != nil {
				cmd.PrintErrf("Warning: some configuration was ignored: %v\n", err)
			}
			if err = config.ApplyEnv(cfg, lookupEnv); err != nil {
				cmd.PrintErrf("Warning: %v\n", err)
			}
			applyFlagOverrides(cmd, cfg)
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result

			s, err := newSession(cmd, cfg)
			if err != nil {
				return err
			}
			cmd.SetContext(withSession(cmd.Context(), s))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	pf := cmd.PersistentFlags()
	pf.Bool(flagDebug, false, "enable debug logging")
	pf.String(flagConfig, "", "additional config file merged over ~/.iotconsole/config.yaml")
	pf.String(flagAPIURL, "", "backend API base URL (overrides config and "+config.EnvAPIURL+")")
	pf.String(flagToken, "", "bearer token (overrides "+config.EnvToken+")")
	pf.String(flagLang, "", "interface language: "+strings.Join(i18n.Languages(), " or "))
	pf.StringP(flagOutput, "o", "", "output format: table, json or yaml")

	cmd.AddCommand(
		newEntityCmd(usersEntity()),
		newGatewaysCmd(),
		newEntityCmd(deviceProfilesEntity()),
		newEntityCmd(payloadDecodersEntity()),
		newEntityCmd(dataTargetsEntity()),
		newEntityCmd(deviceModelsEntity()),
		NewSummaryCmd(),
		NewTUICmd(),
		newConfigCmd(),
		NewVersionCmd(),
		NewMockServerCmd(),
	)
	return cmd
}

// applyFlagOverrides copies explicitly set persistent flags into cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed(flagAPIURL) {
		cfg.API.BaseURL, _ = flags.GetString(flagAPIURL)
	}
	if flags.Changed(flagToken) {
		cfg.API.Token, _ = flags.GetString(flagToken)
	}
	if flags.Changed(flagLang) {
		cfg.Language, _ = flags.GetString(flagLang)
	}
	if flags.Changed(flagOutput) {
		cfg.Output.DefaultFormat, _ = flags.GetString(flagOutput)
	}
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

func requireArgs(n int, what string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("expected %s", what)
		}
		return nil
	}
}

const rootCmdExample = `  # List the first page of users, newest login first
  iotconsole users list --sort lastLogin:desc

  # List gateways of organization 3 as JSON
  iotconsole gateways list --organization-id 3 -o json

  # Show a gateway with its statistics
  iotconsole gateways show 7076ff0064030456

  # Delete a payload decoder without prompting
  iotconsole payload-decoders delete 12 --yes

  # Count every entity type
  iotconsole summary

  # Browse interactively in Danish
  iotconsole tui --lang da`
