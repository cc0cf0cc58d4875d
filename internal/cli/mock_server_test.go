package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os2iot/iotconsole/internal/mockapi"
)

func TestServeMock_ServesUntilCancelled(t *testing.T) {
	logger = zerolog.Nop()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	srv := mockapi.New(mockapi.DemoFixtures(time.Now()), zerolog.Nop())
	go func() { done <- serveMock(ctx, cmd, srv, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + mockapi.BasePath + "/health")
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, mockapi.DefaultVersion, body["version"])

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("mock server did not stop")
	}
	assert.Contains(t, out.String(), "Serving mock API at http://"+ln.Addr().String()+mockapi.BasePath)
}

func TestMockServerCmd_IsHidden(t *testing.T) {
	assert.True(t, NewMockServerCmd().Hidden)
}
