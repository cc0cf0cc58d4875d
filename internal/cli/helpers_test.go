package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/os2iot/iotconsole/internal/config"
	"github.com/os2iot/iotconsole/internal/mockapi"
)

// The demo backend keys gateways by row id, not by EUI.
const (
	demoGatewayID  = "1"
	demoGatewayEUI = "aa555a0000000000"
)

// newBackend starts the demo backend and returns it with its API base URL.
func newBackend(t *testing.T) (*mockapi.Server, string) {
	t.Helper()
	srv := mockapi.New(mockapi.DemoFixtures(time.Now()), zerolog.Nop())
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts.URL + mockapi.BasePath
}

// isolate points the config directory at a temp dir and silences logs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmdWithEnv("test", func(string) (string, bool) { return "", false })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// withTerminal makes confirmation prompts behave as if stdin were a terminal.
func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	prev := stdinIsTerminal
	stdinIsTerminal = func() bool { return tty }
	t.Cleanup(func() { stdinIsTerminal = prev })
}
