package dwellsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateInvite mints an invite token for a unit. Requires invites:write.
// The response carries the raw token; it is not retrievable afterwards.
func (c *SDKClient) CreateInvite(ctx context.Context, unitID string, req CreateInviteRequest) (*InviteResponse, error) {
	var out InviteResponse
	path := "/v1/units/" + url.PathEscape(unitID) + "/invites"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// PreviewInvite checks whether a token could currently be redeemed
// without consuming a use. Public endpoint.
func (c *SDKClient) PreviewInvite(ctx context.Context, token string) (*PreviewInviteResponse, error) {
	var out PreviewInviteResponse
	path := "/v1/invites/preview?token=" + url.QueryEscape(token)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RedeemInvite consumes one use of an invite, making the authenticated
// caller an active resident of the invite's unit.
func (c *SDKClient) RedeemInvite(ctx context.Context, req RedeemInviteRequest) (*RedeemInviteResponse, error) {
	var out RedeemInviteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/invites/redeem", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeInvite deactivates an invite. Already-consumed uses stay
// consumed. Requires invites:write.
func (c *SDKClient) RevokeInvite(ctx context.Context, inviteID string) error {
	path := "/v1/invites/" + url.PathEscape(inviteID) + "/revoke"
	return c.doJSON(ctx, http.MethodPost, path, nil, nil, http.StatusNoContent)
}

// DeleteInvite soft-deletes an invite, freeing its token for reuse.
// Requires invites:write.
func (c *SDKClient) DeleteInvite(ctx context.Context, inviteID string) error {
	path := "/v1/invites/" + url.PathEscape(inviteID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}
