package http

import (
	"net/http"

	"github.com/dwellhq/dwell/internal/invites/domain"
	"github.com/dwellhq/dwell/internal/invites/service"
	"github.com/dwellhq/dwell/pkg/cryptox"
	"github.com/dwellhq/dwell/pkg/dwellsdk"
	"github.com/dwellhq/dwell/pkg/httpx"
)

type InvitePreviewHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Preview Invite
//	@Description	Check whether a token could currently be redeemed, without consuming a use or changing any state. The answer is advisory; redemption re-checks everything.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string							true	"Invite token"
//	@Success		200		{object}	dwellsdk.PreviewInviteResponse	"valid, reason, unit_id, expires_at, remaining"
//	@Failure		400		{object}	dwellsdk.APIError				"code, message"
//	@Router			/v1/invites/preview [get].
func (h *InvitePreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		dwellsdk.NewAPIError(http.StatusBadRequest, dwellsdk.ErrorCodeInvalidRequest,
			"token is required").WriteError(w)
		return
	}
	// Malformed tokens can't exist; answer without a store round trip.
	if len(token) != cryptox.InviteTokenLen {
		httpx.WriteJSON(w, http.StatusOK, dwellsdk.PreviewInviteResponse{
			Valid:  false,
			Reason: string(domain.ReasonNotFound),
		})
		return
	}

	inv, validity, err := h.InviteService.PreviewInvite(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := dwellsdk.PreviewInviteResponse{
		Valid:  validity.Valid,
		Reason: string(validity.Reason),
	}
	// Unknown tokens reveal nothing beyond the reason code.
	if validity.Reason != domain.ReasonNotFound {
		resp.UnitID = inv.UnitID
		resp.ExpiresAt = inv.ExpiresAt.Unix()
		resp.Remaining = inv.Remaining()
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
