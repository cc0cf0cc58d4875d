package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Masterminds/semver/v3"
)

// MinServerVersion is the oldest backend release this client supports.
const MinServerVersion = "1.0.0"

const pathHealth = "health"

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status  string `json:"status"  yaml:"status"`
	Version string `json:"version" yaml:"version"`
}

// Health queries the backend health endpoint.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var hs HealthStatus
	if err := c.do(ctx, http.MethodGet, pathHealth, nil, &hs); err != nil {
		return HealthStatus{}, err
	}
	return hs, nil
}

// CheckServerVersion verifies that the backend satisfies MinServerVersion and
// returns the parsed server version.
func (c *Client) CheckServerVersion(ctx context.Context) (*semver.Version, error) {
	hs, err := c.Health(ctx)
	if err != nil {
		return nil, err
	}
	return CheckCompatible(hs.Version)
}

// CheckCompatible parses version and checks it against MinServerVersion.
func CheckCompatible(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("server reported invalid version %q: %w", version, err)
	}
	constraint, err := semver.NewConstraint(">= " + MinServerVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return v, fmt.Errorf("server version %s is older than the supported minimum %s", v, MinServerVersion)
	}
	return v, nil
}
