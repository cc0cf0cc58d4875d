package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/os2iot/iotconsole/internal/pagedtable"
)

// API paths.
const (
	pathUsers           = "user"
	pathGateways        = "chirpstack/gateway"
	pathDeviceProfiles  = "chirpstack/device-profiles"
	pathPayloadDecoders = "payload-decoder"
	pathDataTargets     = "data-target"
	pathDeviceModels    = "device-model"
)

// Filter query parameters, keyed by the opaque PageRequest.Filter value.
const (
	FilterPermissionID   = "permissionId"
	FilterOrganizationID = "organizationId"
	FilterApplicationID  = "applicationId"
)

// ListUsers returns one page of users. req.Filter restricts to a permission.
func (c *Client) ListUsers(ctx context.Context, req pagedtable.PageRequest) (pagedtable.PageResult[User], error) {
	return listPage[User](ctx, c, pathUsers, req, FilterPermissionID)
}

// DeleteUser removes the user with the given id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.deleteResource(ctx, pathUsers+"/"+url.PathEscape(id))
}

// ListGateways returns one page of gateways. req.Filter restricts to an organization.
func (c *Client) ListGateways(ctx context.Context, req pagedtable.PageRequest) (pagedtable.PageResult[Gateway], error) {
	return listPage[Gateway](ctx, c, pathGateways, req, FilterOrganizationID)
}

// GetGateway returns a gateway together with its traffic statistics.
func (c *Client) GetGateway(ctx context.Context, id string) (GatewayResponse, error) {
	var resp GatewayResponse
	if err := c.do(ctx, http.MethodGet, pathGateways+"/"+url.PathEscape(id), nil, &resp); err != nil {
		return GatewayResponse{}, err
	}
	if resp.Stats == nil {
		resp.Stats = []GatewayStats{}
	}
	return resp, nil
}

// DeleteGateway removes the gateway with the given id.
func (c *Client) DeleteGateway(ctx context.Context, id string) error {
	return c.deleteResource(ctx, pathGateways+"/"+url.PathEscape(id))
}

// ListDeviceProfiles returns one page of device profiles. The endpoint takes
// no filter, so req.Filter is ignored.
func (c *Client) ListDeviceProfiles(
	ctx context.Context,
	req pagedtable.PageRequest,
) (pagedtable.PageResult[DeviceProfile], error) {
	return listPage[DeviceProfile](ctx, c, pathDeviceProfiles, req, "")
}

// DeleteDeviceProfile removes the device profile with the given id.
func (c *Client) DeleteDeviceProfile(ctx context.Context, id string) error {
	return c.deleteResource(ctx, pathDeviceProfiles+"/"+url.PathEscape(id))
}

// ListPayloadDecoders returns one page of payload decoders.
func (c *Client) ListPayloadDecoders(
	ctx context.Context,
	req pagedtable.PageRequest,
) (pagedtable.PageResult[PayloadDecoder], error) {
	return listPage[PayloadDecoder](ctx, c, pathPayloadDecoders, req, FilterOrganizationID)
}

// DeletePayloadDecoder removes the payload decoder with the given id.
func (c *Client) DeletePayloadDecoder(ctx context.Context, id string) error {
	return c.deleteResource(ctx, pathPayloadDecoders+"/"+url.PathEscape(id))
}

// ListDataTargets returns one page of data targets. req.Filter restricts to an application.
func (c *Client) ListDataTargets(
	ctx context.Context,
	req pagedtable.PageRequest,
) (pagedtable.PageResult[DataTarget], error) {
	return listPage[DataTarget](ctx, c, pathDataTargets, req, FilterApplicationID)
}

// DeleteDataTarget removes the data target with the given id.
func (c *Client) DeleteDataTarget(ctx context.Context, id string) error {
	return c.deleteResource(ctx, pathDataTargets+"/"+url.PathEscape(id))
}

// ListDeviceModels returns one page of device models.
func (c *Client) ListDeviceModels(
	ctx context.Context,
	req pagedtable.PageRequest,
) (pagedtable.PageResult[DeviceModel], error) {
	return listPage[DeviceModel](ctx, c, pathDeviceModels, req, FilterOrganizationID)
}

// UserFetcher adapts ListUsers to a pagedtable.Fetcher.
func UserFetcher(c *Client) pagedtable.Fetcher[User] {
	return pagedtable.FetcherFunc[User](c.ListUsers)
}

// GatewayFetcher adapts ListGateways to a pagedtable.Fetcher.
func GatewayFetcher(c *Client) pagedtable.Fetcher[Gateway] {
	return pagedtable.FetcherFunc[Gateway](c.ListGateways)
}

// DeviceProfileFetcher adapts ListDeviceProfiles to a pagedtable.Fetcher.
func DeviceProfileFetcher(c *Client) pagedtable.Fetcher[DeviceProfile] {
	return pagedtable.FetcherFunc[DeviceProfile](c.ListDeviceProfiles)
}

// PayloadDecoderFetcher adapts ListPayloadDecoders to a pagedtable.Fetcher.
func PayloadDecoderFetcher(c *Client) pagedtable.Fetcher[PayloadDecoder] {
	return pagedtable.FetcherFunc[PayloadDecoder](c.ListPayloadDecoders)
}

// DataTargetFetcher adapts ListDataTargets to a pagedtable.Fetcher.
func DataTargetFetcher(c *Client) pagedtable.Fetcher[DataTarget] {
	return pagedtable.FetcherFunc[DataTarget](c.ListDataTargets)
}

// DeviceModelFetcher adapts ListDeviceModels to a pagedtable.Fetcher.
func DeviceModelFetcher(c *Client) pagedtable.Fetcher[DeviceModel] {
	return pagedtable.FetcherFunc[DeviceModel](c.ListDeviceModels)
}
