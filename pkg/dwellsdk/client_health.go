package dwellsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks whether the service process is up.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadiness checks whether the service and its dependencies are ready
// to serve traffic.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
