package http

import (
	"encoding/json"
	"net/http"

	"github.com/dwellhq/dwell/internal/invites/service"
	"github.com/dwellhq/dwell/pkg/cryptox"
	"github.com/dwellhq/dwell/pkg/dwellsdk"
	"github.com/dwellhq/dwell/pkg/httpx"
)

type InviteRedeemHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Redeem Invite
//	@Description	Consume one use of an invite, making the authenticated caller an active resident of the invite's unit. An invite with N remaining uses accepts exactly N concurrent redemptions; losers of the capacity race receive the "exhausted" code.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dwellsdk.RedeemInviteRequest	true	"Invite token"
//	@Success		201		{object}	dwellsdk.RedeemInviteResponse	"resident, invite"
//	@Failure		400		{object}	dwellsdk.APIError				"code, message"
//	@Failure		404		{object}	dwellsdk.APIError				"code, message"
//	@Failure		409		{object}	dwellsdk.APIError				"exhausted or already_resident"
//	@Failure		410		{object}	dwellsdk.APIError				"expired or inactive"
//	@Failure		503		{object}	dwellsdk.APIError				"transient contention, retry"
//	@Security		BearerAuth
//	@Router			/v1/invites/redeem [post].
func (h *InviteRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dwellsdk.RedeemInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dwellsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Token == "" {
		dwellsdk.NewAPIError(http.StatusBadRequest, dwellsdk.ErrorCodeInvalidRequest,
			"token is required").WriteError(w)
		return
	}
	// Malformed tokens can't exist; reject before touching the store.
	if len(req.Token) != cryptox.InviteTokenLen {
		dwellsdk.NewAPIError(http.StatusNotFound, dwellsdk.ErrorCodeNotFound,
			"invite not found").WriteError(w)
		return
	}

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		dwellsdk.ErrUnauthorized.WriteError(w)
		return
	}

	resident, invite, err := h.InviteService.RedeemInvite(ctx, req.Token, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, dwellsdk.RedeemInviteResponse{
		Resident: dwellsdk.ResidentResponse{
			ID:        resident.ID,
			UserID:    resident.UserID,
			UnitID:    resident.UnitID,
			IsOwner:   resident.IsOwner,
			IsActive:  resident.IsActive,
			MovedInAt: resident.MovedInAt.Unix(),
		},
		Invite: inviteResponse(invite),
	})
}
