package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/os2iot/iotconsole/internal/api"
	"github.com/os2iot/iotconsole/internal/cli/pagination"
	"github.com/os2iot/iotconsole/internal/gateway"
	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/internal/pagedtable"
	"github.com/os2iot/iotconsole/internal/tui"
)

const timeLayout = "2006-01-02 15:04"

// filterSpec describes the scoping flag of an entity list.
type filterSpec struct {
	flag     string
	usage    string
	required bool
}

// entity binds one backend collection to its commands and table columns.
type entity[T any] struct {
	name     string
	aliases  []string
	titleKey string
	short    string
	filter   *filterSpec
	columns  []tui.Column[T]
	fetcher  func(c *api.Client) pagedtable.Fetcher[T]
	// remove is nil for read-only collections.
	remove func(c *api.Client) func(ctx context.Context, id string) error
	id     func(row T) string
	label  func(row T) string
}

// sortFields returns the --sort names accepted for e.
func (e entity[T]) sortFields() pagination.SortFields {
	fields := pagination.SortFields{}
	for _, c := range e.columns {
		if c.Sortable {
			fields = fields.With(c.Key, c.Key)
		}
	}
	return fields
}

func formatTime(t *time.Time, tr i18n.Translator) string {
	if t == nil || t.IsZero() {
		return tr.T(i18n.KeyNever)
	}
	return t.Local().Format(timeLayout)
}

func yesNo(b bool, tr i18n.Translator) string {
	if b {
		return tr.T(i18n.KeyYes)
	}
	return tr.T(i18n.KeyNo)
}

func activeLabel(b bool, tr i18n.Translator) string {
	if b {
		return tr.T(i18n.KeyActive)
	}
	return tr.T(i18n.KeyInactive)
}

func usersEntity() entity[api.User] {
	return entity[api.User]{
		name:     "users",
		aliases:  []string{"user"},
		titleKey: i18n.KeyMenuUsers,
		short:    "Manage console users",
		filter:   &filterSpec{flag: "permission-id", usage: "only users holding this permission"},
		columns: []tui.Column[api.User]{
			{Key: "name", TitleKey: i18n.KeyColName, Width: 24, Sortable: true,
				Value: func(u api.User, _ i18n.Translator) string { return u.Name }},
			{Key: "email", TitleKey: i18n.KeyColEmail, Width: 30, Sortable: true,
				Value: func(u api.User, _ i18n.Translator) string { return u.Email }},
			{Key: "active", TitleKey: i18n.KeyColStatus, Width: 10,
				Value: func(u api.User, tr i18n.Translator) string { return activeLabel(u.Active, tr) }},
			{Key: "lastLogin", TitleKey: i18n.KeyColLastLogin, Width: 18, Sortable: true,
				Value: func(u api.User, tr i18n.Translator) string { return formatTime(u.LastLogin, tr) }},
		},
		fetcher: api.UserFetcher,
		remove:  func(c *api.Client) func(context.Context, string) error { return c.DeleteUser },
		id:      func(u api.User) string { return strconv.Itoa(u.ID) },
		label:   func(u api.User) string { return u.Name },
	}
}

func gatewaysEntity() entity[api.Gateway] {
	return entity[api.Gateway]{
		name:     "gateways",
		aliases:  []string{"gateway", "gw"},
		titleKey: i18n.KeyMenuGateways,
		short:    "Manage LoRaWAN gateways",
		filter:   &filterSpec{flag: "organization-id", usage: "only gateways of this organization"},
		columns: []tui.Column[api.Gateway]{
			{Key: "name", TitleKey: i18n.KeyColName, Width: 24, Sortable: true,
				Value: func(g api.Gateway, _ i18n.Translator) string { return g.Name }},
			{Key: "gatewayId", TitleKey: i18n.KeyColGatewayID, Width: 18, Sortable: true,
				Value: func(g api.Gateway, _ i18n.Translator) string { return g.GatewayID }},
			{Key: "internalOrganizationName", TitleKey: i18n.KeyColOrganization, Width: 20, Sortable: true,
				Value: func(g api.Gateway, _ i18n.Translator) string { return g.InternalOrganizationName }},
			{Key: "lastSeenAt", TitleKey: i18n.KeyColLastSeen, Width: 18, Sortable: true,
				Value: func(g api.Gateway, tr i18n.Translator) string { return formatTime(g.LastSeenAt, tr) }},
			{Key: "status", TitleKey: i18n.KeyColStatus, Width: 10,
				Value: func(g api.Gateway, tr i18n.Translator) string {
					return activeLabel(gateway.IsActive(g, time.Now()), tr)
				}},
		},
		fetcher: api.GatewayFetcher,
		remove:  func(c *api.Client) func(context.Context, string) error { return c.DeleteGateway },
		id:      func(g api.Gateway) string { return g.ID },
		label:   func(g api.Gateway) string { return g.Name },
	}
}

func deviceProfilesEntity() entity[api.DeviceProfile] {
	return entity[api.DeviceProfile]{
		name:     "device-profiles",
		aliases:  []string{"device-profile", "profiles"},
		titleKey: i18n.KeyMenuDeviceProfiles,
		short:    "Manage LoRaWAN device profiles",
		columns: []tui.Column[api.DeviceProfile]{
			{Key: "name", TitleKey: i18n.KeyColName, Width: 28, Sortable: true,
				Value: func(p api.DeviceProfile, _ i18n.Translator) string { return p.Name }},
			{Key: "macVersion", TitleKey: i18n.KeyColMacVersion, Width: 12, Sortable: true,
				Value: func(p api.DeviceProfile, _ i18n.Translator) string { return p.MacVersion }},
			{Key: "regParamsRevision", TitleKey: i18n.KeyColRegParams, Width: 20,
				Value: func(p api.DeviceProfile, _ i18n.Translator) string { return p.RegParamsRevision }},
			{Key: "supportsJoin", TitleKey: i18n.KeyColSupportsJoin, Width: 6,
				Value: func(p api.DeviceProfile, tr i18n.Translator) string { return yesNo(p.SupportsJoin, tr) }},
		},
		fetcher: api.DeviceProfileFetcher,
		remove:  func(c *api.Client) func(context.Context, string) error { return c.DeleteDeviceProfile },
		id:      func(p api.DeviceProfile) string { return p.ID },
		label:   func(p api.DeviceProfile) string { return p.Name },
	}
}

func payloadDecodersEntity() entity[api.PayloadDecoder] {
	return entity[api.PayloadDecoder]{
		name:     "payload-decoders",
		aliases:  []string{"payload-decoder", "decoders"},
		titleKey: i18n.KeyMenuPayloadDecoders,
		short:    "Manage payload decoders",
		filter:   &filterSpec{flag: "organization-id", usage: "only decoders of this organization"},
		columns: []tui.Column[api.PayloadDecoder]{
			{Key: "id", TitleKey: i18n.KeyColID, Width: 6, Sortable: true,
				Value: func(d api.PayloadDecoder, _ i18n.Translator) string { return strconv.Itoa(d.ID) }},
			{Key: "name", TitleKey: i18n.KeyColName, Width: 32, Sortable: true,
				Value: func(d api.PayloadDecoder, _ i18n.Translator) string { return d.Name }},
			{Key: "updatedAt", TitleKey: i18n.KeyColUpdatedAt, Width: 18, Sortable: true,
				Value: func(d api.PayloadDecoder, tr i18n.Translator) string { return formatTime(d.UpdatedAt, tr) }},
		},
		fetcher: api.PayloadDecoderFetcher,
		remove:  func(c *api.Client) func(context.Context, string) error { return c.DeletePayloadDecoder },
		id:      func(d api.PayloadDecoder) string { return strconv.Itoa(d.ID) },
		label:   func(d api.PayloadDecoder) string { return d.Name },
	}
}

func dataTargetsEntity() entity[api.DataTarget] {
	return entity[api.DataTarget]{
		name:     "datatargets",
		aliases:  []string{"datatarget", "data-targets"},
		titleKey: i18n.KeyMenuDataTargets,
		short:    "Manage data targets of an application",
		filter:   &filterSpec{flag: "application-id", usage: "application owning the data targets", required: true},
		columns: []tui.Column[api.DataTarget]{
			{Key: "name", TitleKey: i18n.KeyColName, Width: 24, Sortable: true,
				Value: func(d api.DataTarget, _ i18n.Translator) string { return d.Name }},
			{Key: "type", TitleKey: i18n.KeyColType, Width: 10, Sortable: true,
				Value: func(d api.DataTarget, _ i18n.Translator) string { return string(d.Type) }},
			{Key: "url", TitleKey: i18n.KeyColURL, Width: 36,
				Value: func(d api.DataTarget, _ i18n.Translator) string { return d.URL }},
			{Key: "application", TitleKey: i18n.KeyColApplication, Width: 18,
				Value: func(d api.DataTarget, _ i18n.Translator) string {
					if d.Application == nil {
						return ""
					}
					return d.Application.Name
				}},
		},
		fetcher: api.DataTargetFetcher,
		remove:  func(c *api.Client) func(context.Context, string) error { return c.DeleteDataTarget },
		id:      func(d api.DataTarget) string { return strconv.Itoa(d.ID) },
		label:   func(d api.DataTarget) string { return d.Name },
	}
}

func deviceModelsEntity() entity[api.DeviceModel] {
	return entity[api.DeviceModel]{
		name:     "device-models",
		aliases:  []string{"device-model", "models"},
		titleKey: i18n.KeyMenuDeviceModels,
		short:    "List FIWARE device models",
		filter:   &filterSpec{flag: "organization-id", usage: "only models of this organization"},
		columns: []tui.Column[api.DeviceModel]{
			{Key: "id", TitleKey: i18n.KeyColID, Width: 6, Sortable: true,
				Value: func(m api.DeviceModel, _ i18n.Translator) string { return strconv.Itoa(m.ID) }},
			{Key: "name", TitleKey: i18n.KeyColName, Width: 24,
				Value: func(m api.DeviceModel, _ i18n.Translator) string { return m.Body.Name }},
			{Key: "brandName", TitleKey: i18n.KeyColBrand, Width: 14,
				Value: func(m api.DeviceModel, _ i18n.Translator) string { return m.Body.BrandName }},
			{Key: "modelName", TitleKey: i18n.KeyColModel, Width: 14,
				Value: func(m api.DeviceModel, _ i18n.Translator) string { return m.Body.ModelName }},
			{Key: "manufacturerName", TitleKey: i18n.KeyColManufacturer, Width: 16,
				Value: func(m api.DeviceModel, _ i18n.Translator) string { return m.Body.ManufacturerName }},
			{Key: "category", TitleKey: i18n.KeyColCategory, Width: 12,
				Value: func(m api.DeviceModel, _ i18n.Translator) string { return m.Body.Category }},
		},
		fetcher: api.DeviceModelFetcher,
		id:      func(m api.DeviceModel) string { return strconv.Itoa(m.ID) },
		label: func(m api.DeviceModel) string {
			return strings.TrimSpace(m.Body.Name)
		},
	}
}
