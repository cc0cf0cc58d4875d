package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/os2iot/iotconsole/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// The file is written from the effective configuration, so --api-url and
// --lang given on the same command line are persisted. The token never is.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates ~/.iotconsole/config.yaml (or $IOTCONSOLE_HOME/config.yaml) from the
current defaults and any --api-url, --lang or --output flags given.`,
		Example: `  # Create configuration pointing at a backend
  iotconsole config init --api-url https://iot.example.dk/api/v1

  # Create configuration, overwriting existing
  iotconsole config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			path, err := config.FilePath()
			if err != nil {
				return err
			}

			// Check if config already exists and force isn't set
			if !force {
				if _, statErr := os.Stat(path); statErr == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				} else if !os.IsNotExist(statErr) {
					return fmt.Errorf("cannot access config path %s: %w", path, statErr)
				}
			}

			if err = s.cfg.Validate(); err != nil {
				return err
			}
			if err = config.EnsureConfigDir(); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err = s.cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}
