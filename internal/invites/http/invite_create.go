package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dwellhq/dwell/internal/invites/domain"
	"github.com/dwellhq/dwell/internal/invites/service"
	"github.com/dwellhq/dwell/pkg/dwellsdk"
	"github.com/dwellhq/dwell/pkg/httpx"
)

type InviteCreateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Mint Invite
//	@Description	Mint an invite token for a unit. The raw token appears only in this response and is never retrievable again.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Unit ID"
//	@Param			request	body		dwellsdk.CreateInviteRequest	true	"Invite parameters"
//	@Success		201		{object}	dwellsdk.InviteResponse		"invite including raw token"
//	@Failure		400		{object}	dwellsdk.APIError			"code, message"
//	@Failure		404		{object}	dwellsdk.APIError			"code, message"
//	@Security		BearerAuth
//	@Router			/v1/units/{id}/invites [post].
func (h *InviteCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dwellsdk.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dwellsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.TTLDays <= 0 {
		dwellsdk.NewAPIError(http.StatusBadRequest, dwellsdk.ErrorCodeInvalidRequest,
			"ttl_days must be a positive integer").WriteError(w)
		return
	}

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		dwellsdk.ErrUnauthorized.WriteError(w)
		return
	}

	inv, err := h.InviteService.CreateInvite(
		ctx,
		r.PathValue("id"),
		req.Email,
		time.Duration(req.TTLDays)*24*time.Hour,
		req.MaxUses,
		userID,
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := inviteResponse(inv)
	resp.Token = inv.Token
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// inviteResponse converts a domain invite without exposing the token;
// callers that may reveal it set Token explicitly.
func inviteResponse(inv domain.Invite) dwellsdk.InviteResponse {
	return dwellsdk.InviteResponse{
		ID:        inv.ID,
		UnitID:    inv.UnitID,
		Email:     inv.Email,
		ExpiresAt: inv.ExpiresAt.Unix(),
		IsActive:  inv.IsActive,
		MaxUses:   inv.MaxUses,
		UsedCount: inv.UsedCount,
		Remaining: inv.Remaining(),
		CreatedBy: inv.CreatedBy,
		CreatedAt: inv.CreatedAt.Unix(),
	}
}
