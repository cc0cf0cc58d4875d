package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/cli/pagination"
)

type userPage struct {
	Items      []api.User                `json:"items"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

func TestUsersList_JSONSortedAndPaged(t *testing.T) {
	isolate(t)
	_, url := newBackend(t)

	out, err := execute(t, "", "--api-url", url, "-o", "json",
		"users", "list", "--limit", "3", "--sort", "name:desc")
	require.NoError(t, err)

	var page userPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Lise", page.Items[0].Name)
	assert.Equal(t, "Karl", page.Items[1].Name)
	assert.Equal(t, "Jonna", page.Items[2].Name)
	assert.Equal(t, 12, page.Pagination.TotalItems)
	assert.Equal(t, 4, page.Pagination.TotalPages)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrevious)
}

func TestUsersList_PageFlagsBuildOffset(t *testing.T) {
	isolate(t)
	srv, url := newBackend(t)

	out, err := execute(t, "", "--api-url", url, "-o", "json",
		"users", "list", "--page", "2", "--page-size", "5", "--sort", "name")
	require.NoError(t, err)

	last, ok := srv.LastRequest()
	require.True(t, ok)
	q := last.Query()
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "5", q.Get("offset"))
	assert.Equal(t, "name", q.Get("orderOn"))
	assert.Equal(t, "ASC", q.Get("sort"))

	var page userPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Items, 5)
	assert.Equal(t, "Frida", page.Items[0].Name)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
}

func TestUsersList_PermissionFilter(t *testing.T) {
	isolate(t)
	srv, url := newBackend(t)

	out, err := execute(t, "", "--api-url", url, "-o", "json", "users", "list", "--permission-id", "2")
	require.NoError(t, err)

	last, _ := srv.LastRequest()
	assert.Equal(t, "2", last.Query().Get("permissionId"))

	var page userPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.Pagination.TotalItems)
}

func TestUsersList_DefaultPageSizeFromConfig(t *testing.T) {
	isolate(t)
	t.Setenv("IOTCONSOLE_PAGE_SIZE", "4")
	srv, url := newBackend(t)

	_, err := execute(t, "", "--api-url", url, "-o", "json", "users", "list")
	require.NoError(t, err)

	last, _ := srv.LastRequest()
	assert.Equal(t, "4", last.Query().Get("limit"))
}

func TestUsersList_TableOutput(t *testing.T) {
	isolate(t)
	_, url := newBackend(t)

	out, err := execute(t, "", "--api-url", url, "--lang", "en",
		"users", "list", "--limit", "2", "--sort", "name")
	require.NoError(t, err)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bent")
	assert.NotContains(t, out, "Camilla")
	assert.Contains(t, out, "Page 1 of 6")
	assert.Contains(t, out, "12 in total")
}

func TestUsersList_InvalidSortField(t *testing.T) {
	isolate(t)
	_, url := newBackend(t)

	_, err := execute(t, "", "--api-url", url, "users", "list", "--sort", "password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pagination.ErrInvalidSortField))
}

func TestUsersList_BackendFailure(t *testing.T) {
	isolate(t)
	srv, url := newBackend(t)
	srv.FailNext("/user", 500)

	_, err := execute(t, "", "--api-url", url, "users", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing users")
}

func TestDataTargetsList_RequiresApplication(t *testing.T) {
	isolate(t)
	_, url := newBackend(t)

	_, err := execute(t, "", "--api-url", url, "datatargets", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application-id")
}

func TestDataTargetsList_FiltersByApplication(t *testing.T) {
	isolate(t)
	_, url := newBackend(t)

	out, err := execute(t, "", "--api-url", url, "-o", "json", "datatargets", "list", "--application-id", "1")
	require.NoError(t, err)

	var page struct {
		Items      []api.DataTarget          `json:"items"`
		Pagination pagination.PaginationMeta `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.Pagination.TotalItems)
	for _, dt := range page.Items {
		require.NotNil(t, dt.Application)
		assert.Equal(t, 1, dt.Application.ID)
	}
}

func TestDeviceProfilesList_YAML(t *testing.T) {
	isolate(t)
	_, url := newBackend(t)

	out, err := execute(t, "", "--api-url", url, "-o", "yaml", "device-profiles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "items:")
	assert.Contains(t, out, "profile-a")
	assert.Contains(t, out, "total_items: 5")
}

func TestDeviceModels_HasNoDelete(t *testing.T) {
	cmd := newEntityCmd(deviceModelsEntity())
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"list"}, names)
}

func TestDelete_WithYes(t *testing.T) {
	isolate(t)
	_, url := newBackend(t)

	out, err := execute(t, "", "--api-url", url, "--lang", "en", "payload-decoders", "delete", "3", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 3")

	_, err = execute(t, "", "--api-url", url, "payload-decoders", "delete", "3", "--yes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNotFound))
}

func TestDelete_RequiresConfirmationWithoutTerminal(t *testing.T) {
	isolate(t)
	withTerminal(t, false)
	_, url := newBackend(t)

	_, err := execute(t, "", "--api-url", url, "gateways", "delete", demoGatewayID)
	require.ErrorIs(t, err, ErrConfirmationRequired)
}

func TestDelete_PromptDeclined(t *testing.T) {
	isolate(t)
	withTerminal(t, true)
	srv, url := newBackend(t)

	out, err := execute(t, "n\n", "--api-url", url, "--lang", "en", "gateways", "delete", demoGatewayID)
	require.ErrorIs(t, err, errAborted)
	assert.Contains(t, out, "Delete "+demoGatewayID+"?")
	assert.Empty(t, srv.Requests())
}

func TestDelete_PromptAccepted(t *testing.T) {
	isolate(t)
	withTerminal(t, true)
	_, url := newBackend(t)

	out, err := execute(t, "y\n", "--api-url", url, "--lang", "en", "gateways", "delete", demoGatewayID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+demoGatewayID)
}

func TestDelete_FailureIsReturned(t *testing.T) {
	isolate(t)
	srv, url := newBackend(t)
	srv.FailNext("/device-profiles/b1a2c3d4-0000-4000-8000-000000000001", 500)

	_, err := execute(t, "", "--api-url", url, "device-profiles", "delete",
		"b1a2c3d4-0000-4000-8000-000000000001", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deleting device-profiles")
}
