package i18n

// Message keys.
const (
	KeyAppTitle = "app.title"

	KeyMenuUsers           = "menu.users"
	KeyMenuGateways        = "menu.gateways"
	KeyMenuDeviceProfiles  = "menu.device-profiles"
	KeyMenuPayloadDecoders = "menu.payload-decoders"
	KeyMenuDataTargets     = "menu.data-targets"
	KeyMenuDeviceModels    = "menu.device-models"

	KeyColName         = "column.name"
	KeyColEmail        = "column.email"
	KeyColStatus       = "column.status"
	KeyColLastLogin    = "column.last-login"
	KeyColGatewayID    = "column.gateway-id"
	KeyColOrganization = "column.organization"
	KeyColLastSeen     = "column.last-seen"
	KeyColMacVersion   = "column.mac-version"
	KeyColRegParams    = "column.reg-params"
	KeyColSupportsJoin = "column.supports-join"
	KeyColID           = "column.id"
	KeyColUpdatedAt    = "column.updated-at"
	KeyColType         = "column.type"
	KeyColURL          = "column.url"
	KeyColApplication  = "column.application"
	KeyColBrand        = "column.brand"
	KeyColModel        = "column.model"
	KeyColManufacturer = "column.manufacturer"
	KeyColCategory     = "column.category"
	KeyColReceived     = "column.received"
	KeyColEmitted      = "column.emitted"
	KeyColTxReceived   = "column.tx-received"
	KeyColDate         = "column.date"
	KeyColCount        = "column.count"

	KeyActive   = "status.active"
	KeyInactive = "status.inactive"
	KeyYes      = "status.yes"
	KeyNo       = "status.no"
	KeyNever    = "status.never"

	KeyLoading       = "table.loading"
	KeyFetchFailed   = "table.fetch-failed"
	KeyEmpty         = "table.empty"
	KeyPageOf        = "table.page-of"
	KeyTotal         = "table.total"
	KeySortedBy      = "table.sorted-by"
	KeyUnsorted      = "table.unsorted"
	KeyAscending     = "table.ascending"
	KeyDescending    = "table.descending"
	KeyConfirmDelete = "table.confirm-delete"
	KeyDeleted       = "table.deleted"
	KeyDeleteFailed  = "table.delete-failed"
	KeyTableHelp     = "table.help"

	KeyDetailGateway     = "detail.gateway"
	KeyDetailDescription = "detail.description"
	KeyDetailLocation    = "detail.location"
	KeyDetailTags        = "detail.tags"
	KeyDetailStats       = "detail.stats"
	KeyDetailReceived    = "detail.chart-received"
	KeyDetailSent        = "detail.chart-sent"
	KeyDetailNoStats     = "detail.no-stats"
	KeyDetailHelp        = "detail.help"
	KeyMenuHelp          = "menu.help"
)

//nolint:gochecknoglobals // Static message tables.
var english = map[string]string{
	KeyAppTitle: "IoT console",

	KeyMenuUsers:           "Users",
	KeyMenuGateways:        "LoRaWAN gateways",
	KeyMenuDeviceProfiles:  "Device profiles",
	KeyMenuPayloadDecoders: "Payload decoders",
	KeyMenuDataTargets:     "Data targets",
	KeyMenuDeviceModels:    "Device models",

	KeyColName:         "Name",
	KeyColEmail:        "Email",
	KeyColStatus:       "Status",
	KeyColLastLogin:    "Last login",
	KeyColGatewayID:    "Gateway EUI",
	KeyColOrganization: "Organization",
	KeyColLastSeen:     "Last seen",
	KeyColMacVersion:   "MAC version",
	KeyColRegParams:    "Regional parameters",
	KeyColSupportsJoin: "OTAA",
	KeyColID:           "ID",
	KeyColUpdatedAt:    "Updated",
	KeyColType:         "Type",
	KeyColURL:          "URL",
	KeyColApplication:  "Application",
	KeyColBrand:        "Brand",
	KeyColModel:        "Model",
	KeyColManufacturer: "Manufacturer",
	KeyColCategory:     "Category",
	KeyColReceived:     "Packets received",
	KeyColEmitted:      "Packets sent",
	KeyColTxReceived:   "Sent packets acknowledged",
	KeyColDate:         "Date",
	KeyColCount:        "Count",

	KeyActive:   "Active",
	KeyInactive: "Inactive",
	KeyYes:      "Yes",
	KeyNo:       "No",
	KeyNever:    "Never",

	KeyLoading:       "Loading...",
	KeyFetchFailed:   "Could not load data",
	KeyEmpty:         "No results",
	KeyPageOf:        "Page %d of %d",
	KeyTotal:         "%d in total",
	KeySortedBy:      "sorted by %s (%s)",
	KeyUnsorted:      "unsorted",
	KeyAscending:     "ascending",
	KeyDescending:    "descending",
	KeyConfirmDelete: "Delete %s? (y/n)",
	KeyDeleted:       "Deleted %s",
	KeyDeleteFailed:  "Delete failed: %v",
	KeyTableHelp:     "←/→ page • s sort • S direction • +/- page size • r reload • enter open • d delete • esc back • q quit",

	KeyDetailGateway:     "Gateway %s",
	KeyDetailDescription: "Description",
	KeyDetailLocation:    "Location",
	KeyDetailTags:        "Tags",
	KeyDetailStats:       "Statistics",
	KeyDetailReceived:    "Received packets",
	KeyDetailSent:        "Sent packets",
	KeyDetailNoStats:     "No statistics",
	KeyDetailHelp:        "↑/↓ scroll • d delete • esc back • q quit",
	KeyMenuHelp:          "↑/↓ choose • enter open • q quit",
}

//nolint:gochecknoglobals // Static message tables.
var danish = map[string]string{
	KeyAppTitle: "IoT-konsol",

	KeyMenuUsers:           "Brugere",
	KeyMenuGateways:        "LoRaWAN-gateways",
	KeyMenuDeviceProfiles:  "Enhedsprofiler",
	KeyMenuPayloadDecoders: "Payload decoders",
	KeyMenuDataTargets:     "Datatargets",
	KeyMenuDeviceModels:    "Enhedsmodeller",

	KeyColName:         "Navn",
	KeyColEmail:        "E-mail",
	KeyColStatus:       "Status",
	KeyColLastLogin:    "Seneste login",
	KeyColGatewayID:    "Gateway-EUI",
	KeyColOrganization: "Organisation",
	KeyColLastSeen:     "Sidst set",
	KeyColMacVersion:   "MAC-version",
	KeyColRegParams:    "Regionale parametre",
	KeyColSupportsJoin: "OTAA",
	KeyColID:           "ID",
	KeyColUpdatedAt:    "Opdateret",
	KeyColType:         "Type",
	KeyColURL:          "URL",
	KeyColApplication:  "Applikation",
	KeyColBrand:        "Mærke",
	KeyColModel:        "Model",
	KeyColManufacturer: "Producent",
	KeyColCategory:     "Kategori",
	KeyColReceived:     "Modtagne pakker",
	KeyColEmitted:      "Sendte pakker",
	KeyColTxReceived:   "Kvitterede pakker",
	KeyColDate:         "Dato",
	KeyColCount:        "Antal",

	KeyActive:   "Aktiv",
	KeyInactive: "Inaktiv",
	KeyYes:      "Ja",
	KeyNo:       "Nej",
	KeyNever:    "Aldrig",

	KeyLoading:       "Henter...",
	KeyFetchFailed:   "Data kunne ikke hentes",
	KeyEmpty:         "Ingen resultater",
	KeyPageOf:        "Side %d af %d",
	KeyTotal:         "%d i alt",
	KeySortedBy:      "sorteret efter %s (%s)",
	KeyUnsorted:      "usorteret",
	KeyAscending:     "stigende",
	KeyDescending:    "faldende",
	KeyConfirmDelete: "Slet %s? (y/n)",
	KeyDeleted:       "%s er slettet",
	KeyDeleteFailed:  "Sletning fejlede: %v",
	KeyTableHelp:     "←/→ side • s sortér • S retning • +/- sidestørrelse • r genindlæs • enter åbn • d slet • esc tilbage • q afslut",

	KeyDetailGateway:     "Gateway %s",
	KeyDetailDescription: "Beskrivelse",
	KeyDetailLocation:    "Placering",
	KeyDetailTags:        "Tags",
	KeyDetailStats:       "Statistik",
	KeyDetailReceived:    "Modtagne pakker",
	KeyDetailSent:        "Sendte pakker",
	KeyDetailNoStats:     "Ingen statistik",
	KeyDetailHelp:        "↑/↓ rul • d slet • esc tilbage • q afslut",
	KeyMenuHelp:          "↑/↓ vælg • enter åbn • q afslut",
}
