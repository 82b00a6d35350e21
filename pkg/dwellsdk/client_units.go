package dwellsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateUnit registers a new housing unit. Requires admin:write.
func (c *SDKClient) CreateUnit(ctx context.Context, req CreateUnitRequest) (*UnitResponse, error) {
	var out UnitResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/units", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUnit fetches a unit by id. Requires admin:read.
func (c *SDKClient) GetUnit(ctx context.Context, unitID string) (*UnitResponse, error) {
	var out UnitResponse
	path := "/v1/units/" + url.PathEscape(unitID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvites returns a page of a unit's invites, newest first. Requires
// invites:read.
func (c *SDKClient) ListInvites(ctx context.Context, unitID string, limit, offset int) (*InviteListResponse, error) {
	var out InviteListResponse
	path := "/v1/units/" + url.PathEscape(unitID) + "/invites" +
		"?limit=" + strconv.Itoa(limit) +
		"&offset=" + strconv.Itoa(offset)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUnitStats returns the invite rollup for a unit. Requires invites:read.
func (c *SDKClient) GetUnitStats(ctx context.Context, unitID string) (*UnitStatsResponse, error) {
	var out UnitStatsResponse
	path := "/v1/units/" + url.PathEscape(unitID) + "/invites/stats"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
