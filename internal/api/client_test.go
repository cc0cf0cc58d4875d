package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/logging"
	"github.com/os2iot/iotconsole/internal/mockapi"
	"github.com/os2iot/iotconsole/internal/pagedtable"
)

func newTestClient(t *testing.T, opts ...api.Option) (*api.Client, *mockapi.Server, mockapi.Fixtures) {
	t.Helper()
	fixtures := mockapi.DemoFixtures(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	srv := mockapi.New(fixtures, zerolog.Nop())
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	opts = append([]api.Option{api.WithHTTPClient(ts.Client())}, opts...)
	c, err := api.NewClient(ts.URL+mockapi.BasePath, opts...)
	require.NoError(t, err)
	return c, srv, fixtures
}

func TestNewClient_RejectsBadScheme(t *testing.T) {
	_, err := api.NewClient("ftp://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported base url scheme")
}

func TestListUsers_EncodesQuery(t *testing.T) {
	c, srv, _ := newTestClient(t)

	res, err := c.ListUsers(context.Background(), pagedtable.PageRequest{
		Limit:         5,
		Offset:        5,
		SortColumn:    "name",
		SortDirection: pagedtable.SortDescending,
		Filter:        "1",
	})
	require.NoError(t, err)

	last, ok := srv.LastRequest()
	require.True(t, ok)
	q := last.Query()
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "5", q.Get("offset"))
	assert.Equal(t, "name", q.Get("orderOn"))
	assert.Equal(t, "DESC", q.Get("sort"))
	assert.Equal(t, "1", q.Get("permissionId"))

	// permission 1 grants three users, so the second page is empty
	assert.Equal(t, 3, res.TotalCount)
	assert.Empty(t, res.Rows)
}

func TestListUsers_AscendingWithoutFilter(t *testing.T) {
	c, srv, _ := newTestClient(t)

	res, err := c.ListUsers(context.Background(), pagedtable.PageRequest{
		Limit:         3,
		SortColumn:    "name",
		SortDirection: pagedtable.SortAscending,
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, 12, res.TotalCount)
	assert.Equal(t, "Alice", res.Rows[0].Name)

	last, _ := srv.LastRequest()
	assert.Equal(t, "ASC", last.Query().Get("sort"))
	assert.False(t, last.Query().Has("permissionId"))
}

func TestListDeviceProfiles_ChirpstackEnvelope(t *testing.T) {
	c, _, fixtures := newTestClient(t)

	res, err := c.ListDeviceProfiles(context.Background(), pagedtable.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
	assert.Equal(t, len(fixtures.DeviceProfiles), res.TotalCount)
}

func TestListDeviceProfiles_SendsNoFilter(t *testing.T) {
	c, srv, _ := newTestClient(t)

	_, err := c.ListDeviceProfiles(context.Background(), pagedtable.PageRequest{Limit: 2, Filter: "1"})
	require.NoError(t, err)

	last, _ := srv.LastRequest()
	assert.False(t, last.Query().Has(api.FilterOrganizationID))
}

func TestListDataTargets_FilterByApplication(t *testing.T) {
	c, srv, _ := newTestClient(t)

	res, err := c.ListDataTargets(context.Background(), pagedtable.PageRequest{Limit: 10, Filter: "1"})
	require.NoError(t, err)
	for _, dt := range res.Rows {
		require.NotNil(t, dt.Application)
		assert.Equal(t, 1, dt.Application.ID)
	}
	last, _ := srv.LastRequest()
	assert.Equal(t, "1", last.Query().Get("applicationId"))
}

func TestGetGateway(t *testing.T) {
	c, _, fixtures := newTestClient(t)
	gw := fixtures.Gateways[2]

	resp, err := c.GetGateway(context.Background(), gw.ID)
	require.NoError(t, err)
	assert.Equal(t, gw.Name, resp.Gateway.Name)
	assert.Len(t, resp.Stats, len(fixtures.GatewayStats[gw.ID]))
}

func TestGetGateway_NotFound(t *testing.T) {
	c, _, _ := newTestClient(t)

	_, err := c.GetGateway(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "gateway not found", apiErr.Message)
}

func TestDeleteGateway(t *testing.T) {
	c, _, fixtures := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.DeleteGateway(ctx, fixtures.Gateways[0].ID))

	res, err := c.ListGateways(ctx, pagedtable.PageRequest{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, len(fixtures.Gateways)-1, res.TotalCount)

	err = c.DeleteGateway(ctx, fixtures.Gateways[0].ID)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestDelete_RejectedBySuccessFlag(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	t.Cleanup(ts.Close)

	c, err := api.NewClient(ts.URL)
	require.NoError(t, err)

	err = c.DeletePayloadDecoder(context.Background(), "7")
	assert.ErrorIs(t, err, api.ErrDeleteRejected)
}

func TestServerFailure_Unauthorized(t *testing.T) {
	c, srv, _ := newTestClient(t)
	srv.FailNext("/payload-decoder", http.StatusUnauthorized)

	_, err := c.ListPayloadDecoders(context.Background(), pagedtable.PageRequest{Limit: 10})
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"data":[],"count":0}`))
	}))
	t.Cleanup(ts.Close)

	c, err := api.NewClient(ts.URL, api.WithToken("secret"), api.WithUserAgent("iotconsole-test"))
	require.NoError(t, err)

	ctx := logging.ContextWithTraceID(context.Background(), "01HTRACE")
	_, err = c.ListDeviceModels(ctx, pagedtable.PageRequest{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.Equal(t, "01HTRACE", got.Get("X-Request-ID"))
	assert.Equal(t, "iotconsole-test", got.Get("User-Agent"))
}

func TestRequestHeaders_GeneratesRequestID(t *testing.T) {
	var id string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"data":[],"count":0}`))
	}))
	t.Cleanup(ts.Close)

	c, err := api.NewClient(ts.URL)
	require.NoError(t, err)
	_, err = c.ListUsers(context.Background(), pagedtable.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, id, 26)
}

func TestNestJSErrorMessageArray(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":400,"message":["limit must be positive","offset invalid"]}`))
	}))
	t.Cleanup(ts.Close)

	c, err := api.NewClient(ts.URL)
	require.NoError(t, err)
	_, err = c.ListUsers(context.Background(), pagedtable.PageRequest{Limit: 1})

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "limit must be positive; offset invalid", apiErr.Message)
}

func TestFetcherAdapterCollapsesIntoFailedState(t *testing.T) {
	c, srv, _ := newTestClient(t)
	srv.FailNext("/chirpstack/gateway", http.StatusBadGateway)

	ctrl := pagedtable.New(api.GatewayFetcher(c), "")
	ticket, req, err := ctrl.Start()
	require.NoError(t, err)

	res, fetchErr := ctrl.Fetch(context.Background(), req)
	require.ErrorIs(t, fetchErr, pagedtable.ErrFetchFailed)
	require.True(t, ctrl.Complete(ticket, res, fetchErr))

	st := ctrl.State()
	assert.True(t, st.Failed)
	assert.False(t, st.Loading)
	assert.Zero(t, st.TotalCount)
}

func TestCheckCompatible(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"current", "1.4.0", false},
		{"minimum", api.MinServerVersion, false},
		{"prefixed", "v2.0.0", false},
		{"too old", "0.9.1", true},
		{"garbage", "latest", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := api.CheckCompatible(tt.version)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckServerVersion(t *testing.T) {
	c, _, _ := newTestClient(t)

	v, err := c.CheckServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mockapi.DefaultVersion, v.String())
}
