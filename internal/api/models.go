package api

import (
	"encoding/json"
	"time"
)

// User is a console user account.
type User struct {
	ID          int        `json:"id"                   yaml:"id"`
	Name        string     `json:"name"                 yaml:"name"`
	Email       string     `json:"email"                yaml:"email"`
	Active      bool       `json:"active"               yaml:"active"`
	GlobalAdmin bool       `json:"globalAdmin"          yaml:"globalAdmin"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"  yaml:"lastLogin,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"  yaml:"createdAt,omitempty"`
}

// Location is a WGS84 position.
type Location struct {
	Latitude  float64 `json:"latitude"  yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Altitude  float64 `json:"altitude"  yaml:"altitude"`
}

// Gateway is a LoRaWAN gateway registered in the network server.
type Gateway struct {
	ID                       string            `json:"id"                       yaml:"id"`
	GatewayID                string            `json:"gatewayId"                yaml:"gatewayId"`
	Name                     string            `json:"name"                     yaml:"name"`
	Description              string            `json:"description"              yaml:"description"`
	Location                 Location          `json:"location"                 yaml:"location"`
	LastSeenAt               *time.Time        `json:"lastSeenAt,omitempty"     yaml:"lastSeenAt,omitempty"`
	Tags                     map[string]string `json:"tags,omitempty"           yaml:"tags,omitempty"`
	InternalOrganizationID   int               `json:"internalOrganizationId"   yaml:"internalOrganizationId"`
	InternalOrganizationName string            `json:"internalOrganizationName" yaml:"internalOrganizationName"`
	CreatedAt                *time.Time        `json:"createdAt,omitempty"      yaml:"createdAt,omitempty"`
	UpdatedAt                *time.Time        `json:"updatedAt,omitempty"      yaml:"updatedAt,omitempty"`
}

// TagsString renders the tags as a JSON object, as shown on the detail page.
func (g Gateway) TagsString() string {
	if len(g.Tags) == 0 {
		return "{}"
	}
	data, err := json.Marshal(g.Tags)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// GatewayStats is one aggregation bucket of gateway traffic.
type GatewayStats struct {
	Timestamp         time.Time `json:"timestamp"         yaml:"timestamp"`
	RxPacketsReceived int       `json:"rxPacketsReceived" yaml:"rxPacketsReceived"`
	TxPacketsEmitted  int       `json:"txPacketsEmitted"  yaml:"txPacketsEmitted"`
	TxPacketsReceived int       `json:"txPacketsReceived" yaml:"txPacketsReceived"`
}

// GatewayResponse is the payload of the gateway detail endpoint.
type GatewayResponse struct {
	Gateway Gateway        `json:"gateway" yaml:"gateway"`
	Stats   []GatewayStats `json:"stats"   yaml:"stats"`
}

// DeviceProfile is a LoRaWAN device profile.
type DeviceProfile struct {
	ID                string     `json:"id"                  yaml:"id"`
	Name              string     `json:"name"                yaml:"name"`
	OrganizationID    int        `json:"organizationID"      yaml:"organizationID"`
	MacVersion        string     `json:"macVersion"          yaml:"macVersion"`
	RegParamsRevision string     `json:"regParamsRevision"   yaml:"regParamsRevision"`
	SupportsJoin      bool       `json:"supportsJoin"        yaml:"supportsJoin"`
	SupportsClassC    bool       `json:"supportsClassC"      yaml:"supportsClassC"`
	CreatedAt         *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// PayloadDecoder is a JavaScript decoding function applied to uplinks.
type PayloadDecoder struct {
	ID               int        `json:"id"                  yaml:"id"`
	Name             string     `json:"name"                yaml:"name"`
	DecodingFunction string     `json:"decodingFunction"    yaml:"decodingFunction"`
	OrganizationID   int        `json:"organizationId"      yaml:"organizationId"`
	CreatedAt        *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// DataTargetType enumerates where a data target forwards payloads.
type DataTargetType string

// Known data target types.
const (
	DataTargetHTTPPush DataTargetType = "HTTP_PUSH"
	DataTargetFiware   DataTargetType = "FIWARE"
	DataTargetMQTT     DataTargetType = "MQTT"
)

// ApplicationRef is the owning application of a data target.
type ApplicationRef struct {
	ID   int    `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// DataTarget forwards decoded payloads of an application.
type DataTarget struct {
	ID                  int             `json:"id"                            yaml:"id"`
	Name                string          `json:"name"                          yaml:"name"`
	Type                DataTargetType  `json:"type"                          yaml:"type"`
	URL                 string          `json:"url"                           yaml:"url"`
	Timeout             int             `json:"timeout"                       yaml:"timeout"`
	AuthorizationHeader string          `json:"authorizationHeader,omitempty" yaml:"authorizationHeader,omitempty"`
	Application         *ApplicationRef `json:"application,omitempty"         yaml:"application,omitempty"`
}

// DeviceModelBody is the FIWARE DeviceModel document.
type DeviceModelBody struct {
	ID                    string   `json:"id,omitempty"                    yaml:"id,omitempty"`
	Name                  string   `json:"name,omitempty"                  yaml:"name,omitempty"`
	Type                  string   `json:"type"                            yaml:"type"`
	BrandName             string   `json:"brandName,omitempty"             yaml:"brandName,omitempty"`
	ModelName             string   `json:"modelName,omitempty"             yaml:"modelName,omitempty"`
	ManufacturerName      string   `json:"manufacturerName,omitempty"      yaml:"manufacturerName,omitempty"`
	Category              string   `json:"category,omitempty"              yaml:"category,omitempty"`
	EnergyLimitationClass string   `json:"energyLimitationClass,omitempty" yaml:"energyLimitationClass,omitempty"`
	ControlledProperty    []string `json:"controlledProperty,omitempty"    yaml:"controlledProperty,omitempty"`
	SupportedUnits        []string `json:"supportedUnits,omitempty"        yaml:"supportedUnits,omitempty"`
	Function              []string `json:"function,omitempty"              yaml:"function,omitempty"`
	SupportedProtocol     []string `json:"supportedProtocol,omitempty"     yaml:"supportedProtocol,omitempty"`
}

// DeviceModel wraps a DeviceModelBody with its database id.
type DeviceModel struct {
	ID   int             `json:"id"   yaml:"id"`
	Body DeviceModelBody `json:"body" yaml:"body"`
}
