package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/config"
	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/pkg/version"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// ErrUnknownOutput is returned for an unsupported --output value.
var ErrUnknownOutput = errors.New("unknown output format")

// session is the per-invocation state shared by all commands.
type session struct {
	cfg    *config.Config
	tr     i18n.Translator
	format string

	clientOnce sync.Once
	client     *api.Client
	clientErr  error
}

type sessionKey struct{}

func newSession(cmd *cobra.Command, cfg *config.Config) (*session, error) {
	format := cfg.Output.DefaultFormat
	if format == "" {
		format = outputTable
	}
	switch format {
	case outputTable, outputJSON, outputYAML:
	default:
		return nil, fmt.Errorf("%w: %q (use table, json or yaml)", ErrUnknownOutput, format)
	}

	tr, err := i18n.New(cfg.Language)
	if err != nil {
		cmd.PrintErrf("Warning: %v, using English\n", err)
		tr = i18n.MustNew(i18n.English)
	}
	return &session{cfg: cfg, tr: tr, format: format}, nil
}

func withSession(ctx context.Context, s *session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

// sessionFrom returns the session installed by the root command.
func sessionFrom(cmd *cobra.Command) (*session, error) {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok || s == nil {
		return nil, errors.New("command context is not initialized")
	}
	return s, nil
}

// Client validates the configuration and returns the API client.
func (s *session) Client() (*api.Client, error) {
	s.clientOnce.Do(func() {
		if err := s.cfg.Validate(); err != nil {
			s.clientErr = err
			return
		}
		s.client, s.clientErr = api.NewClient(s.cfg.API.BaseURL,
			api.WithToken(s.cfg.API.Token),
			api.WithTimeout(s.cfg.API.Timeout()),
			api.WithLogger(logger),
			api.WithUserAgent("iotconsole/"+version.GetVersion()),
		)
	})
	return s.client, s.clientErr
}
