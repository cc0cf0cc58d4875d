package mockapi

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/os2iot/iotconsole/internal/api"
)

// DefaultVersion is reported by /health unless fixtures override it.
const DefaultVersion = "1.4.0"

// Fixtures is the in-memory data set served by a Server.
type Fixtures struct {
	Version         string
	Users           []api.User
	Gateways        []api.Gateway
	GatewayStats    map[string][]api.GatewayStats
	DeviceProfiles  []api.DeviceProfile
	PayloadDecoders []api.PayloadDecoder
	DataTargets     []api.DataTarget
	DeviceModels    []api.DeviceModel
	// UserPermissions maps a permission id to the user ids it grants.
	UserPermissions map[string][]int
}

func (f Fixtures) clone() Fixtures {
	out := Fixtures{
		Version:         f.Version,
		Users:           slices.Clone(f.Users),
		Gateways:        slices.Clone(f.Gateways),
		GatewayStats:    make(map[string][]api.GatewayStats, len(f.GatewayStats)),
		DeviceProfiles:  slices.Clone(f.DeviceProfiles),
		PayloadDecoders: slices.Clone(f.PayloadDecoders),
		DataTargets:     slices.Clone(f.DataTargets),
		DeviceModels:    slices.Clone(f.DeviceModels),
		UserPermissions: maps.Clone(f.UserPermissions),
	}
	if out.Version == "" {
		out.Version = DefaultVersion
	}
	for id, stats := range f.GatewayStats {
		out.GatewayStats[id] = slices.Clone(stats)
	}
	return out
}

// DemoFixtures returns a deterministic data set relative to now.
func DemoFixtures(now time.Time) Fixtures {
	f := Fixtures{
		Version:         DefaultVersion,
		GatewayStats:    make(map[string][]api.GatewayStats),
		UserPermissions: map[string][]int{"1": {1, 2, 3}, "2": {4, 5}},
	}

	names := []string{"Alice", "Bent", "Camilla", "Dorthe", "Erik", "Frida", "Gustav", "Hanne", "Ib", "Jonna", "Karl", "Lise"}
	for i, name := range names {
		login := now.Add(-time.Duration(i) * 24 * time.Hour)
		f.Users = append(f.Users, api.User{
			ID:          i + 1,
			Name:        name,
			Email:       fmt.Sprintf("%s@example.dk", name),
			Active:      i%4 != 3,
			GlobalAdmin: i == 0,
			LastLogin:   &login,
		})
	}

	for i := range 7 {
		seen := now.Add(-time.Duration(i*i) * time.Minute)
		id := fmt.Sprint(i + 1)
		orgID := 1 + i%2
		f.Gateways = append(f.Gateways, api.Gateway{
			ID:          id,
			GatewayID:   fmt.Sprintf("%016x", 0xaa555a0000000000+uint64(i)),
			Name:        fmt.Sprintf("gw-%02d", i+1),
			Description: fmt.Sprintf("Gateway %d", i+1),
			Location: api.Location{
				Latitude:  56.15 + float64(i)*0.01,
				Longitude: 10.20 + float64(i)*0.01,
				Altitude:  float64(20 + i),
			},
			LastSeenAt:               &seen,
			Tags:                     map[string]string{"site": fmt.Sprintf("site-%d", orgID)},
			InternalOrganizationID:   orgID,
			InternalOrganizationName: fmt.Sprintf("Organization %d", orgID),
		})
		var stats []api.GatewayStats
		for d := range 7 {
			stats = append(stats, api.GatewayStats{
				Timestamp:         now.Add(-time.Duration(d) * 24 * time.Hour).Truncate(24 * time.Hour),
				RxPacketsReceived: 100 + 10*d + i,
				TxPacketsEmitted:  20 + d,
			})
		}
		f.GatewayStats[id] = stats
	}

	macs := []string{"1.0.2", "1.0.3", "1.1.0"}
	for i := range 5 {
		f.DeviceProfiles = append(f.DeviceProfiles, api.DeviceProfile{
			ID:                fmt.Sprintf("b1a2c3d4-0000-4000-8000-%012d", i+1),
			Name:              fmt.Sprintf("profile-%c", 'a'+i),
			OrganizationID:    1,
			MacVersion:        macs[i%len(macs)],
			RegParamsRevision: "B",
			SupportsJoin:      i%2 == 0,
		})
	}

	for i := range 6 {
		created := now.Add(-time.Duration(i) * time.Hour)
		f.PayloadDecoders = append(f.PayloadDecoders, api.PayloadDecoder{
			ID:               i + 1,
			Name:             fmt.Sprintf("decoder-%d", i+1),
			DecodingFunction: "function decode(payload, metadata) { return {}; }",
			OrganizationID:   1 + i%2,
			CreatedAt:        &created,
			UpdatedAt:        &created,
		})
	}

	types := []api.DataTargetType{api.DataTargetHTTPPush, api.DataTargetFiware, api.DataTargetMQTT}
	for i := range 4 {
		f.DataTargets = append(f.DataTargets, api.DataTarget{
			ID:          i + 1,
			Name:        fmt.Sprintf("target-%d", i+1),
			Type:        types[i%len(types)],
			URL:         fmt.Sprintf("https://sink.example.dk/%d", i+1),
			Timeout:     30000,
			Application: &api.ApplicationRef{ID: 1 + i%2, Name: fmt.Sprintf("Application %d", 1+i%2)},
		})
	}

	f.DeviceModels = []api.DeviceModel{
		{ID: 1, Body: api.DeviceModelBody{
			Name: "Temperature sensor", Type: "DeviceModel", BrandName: "Acme", ModelName: "T-100",
			ManufacturerName: "Acme A/S", Category: "sensor", ControlledProperty: []string{"temperature"},
		}},
		{ID: 2, Body: api.DeviceModelBody{
			Name: "Water meter", Type: "DeviceModel", BrandName: "Flow", ModelName: "W-2",
			ManufacturerName: "Flow ApS", Category: "meter", ControlledProperty: []string{"waterConsumption"},
		}},
	}
	return f
}
