// Package gateway holds presentation logic for LoRaWAN gateways that is
// independent of any particular front end.
package gateway

import (
	"slices"
	"time"

	"github.com/os2iot/iotconsole/internal/api"
)

// ActiveWindow is how recently a gateway must have been seen to count as active.
const ActiveWindow = 150 * time.Second

// chartLabelLayout matches the "dd MMM" labels of the stats table.
const chartLabelLayout = "02 Jan"

// IsActive reports whether g reported within ActiveWindow of now.
func IsActive(g api.Gateway, now time.Time) bool {
	if g.LastSeenAt == nil {
		return false
	}
	return now.Sub(*g.LastSeenAt) <= ActiveWindow
}

// SortStatsNewestFirst sorts stats in place by descending timestamp.
func SortStatsNewestFirst(stats []api.GatewayStats) {
	slices.SortStableFunc(stats, func(a, b api.GatewayStats) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}

// Series is one data set of a chart.
type Series struct {
	Name   string
	Values []int
}

// Charts are the received and sent packet series sharing one label axis.
type Charts struct {
	Labels   []string
	Received Series
	Sent     Series
}

// BuildCharts turns newest-first stats into oldest-first chart series.
// The input slice is not modified.
func BuildCharts(stats []api.GatewayStats) Charts {
	c := Charts{
		Labels:   make([]string, 0, len(stats)),
		Received: Series{Name: "received", Values: make([]int, 0, len(stats))},
		Sent:     Series{Name: "sent", Values: make([]int, 0, len(stats))},
	}
	for i := len(stats) - 1; i >= 0; i-- {
		s := stats[i]
		c.Received.Values = append(c.Received.Values, s.RxPacketsReceived)
		c.Sent.Values = append(c.Sent.Values, s.TxPacketsEmitted)
		c.Labels = append(c.Labels, s.Timestamp.UTC().Format(chartLabelLayout))
	}
	return c
}

// Marker describes a gateway pin on a map.
type Marker struct {
	Longitude                float64
	Latitude                 float64
	Name                     string
	Active                   bool
	ID                       string
	InternalOrganizationName string
}

// Coordinates returns the map marker for g as of now.
func Coordinates(g api.Gateway, now time.Time) Marker {
	return Marker{
		Longitude:                g.Location.Longitude,
		Latitude:                 g.Location.Latitude,
		Name:                     g.Name,
		Active:                   IsActive(g, now),
		ID:                       g.ID,
		InternalOrganizationName: g.InternalOrganizationName,
	}
}

// Max returns the largest value in s, or 0 for an empty series.
func (s Series) Max() int {
	if len(s.Values) == 0 {
		return 0
	}
	return slices.Max(s.Values)
}
