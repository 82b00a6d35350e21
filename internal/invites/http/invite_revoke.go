package http

import (
	"net/http"

	"github.com/dwellhq/dwell/internal/invites/service"
)

type InviteRevokeHandler struct {
	InviteService *service.InviteService
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invite
//	@Description	Deactivate an invite. Uses already consumed stay consumed; only future redemptions are blocked. One-way.
//	@Tags			Invitations
//	@Param			id	path	string	true	"Invite ID"
//	@Success		204	"invite revoked"
//	@Failure		404	{object}	dwellsdk.APIError	"code, message"
//	@Security		BearerAuth
//	@Router			/v1/invites/{id}/revoke [post].
func (h *InviteRevokeHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.InviteService.RevokeInvite(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary		Delete Invite
//	@Description	Soft-delete an invite, freeing its token for reuse by future invites.
//	@Tags			Invitations
//	@Param			id	path	string	true	"Invite ID"
//	@Success		204	"invite deleted"
//	@Failure		404	{object}	dwellsdk.APIError	"code, message"
//	@Security		BearerAuth
//	@Router			/v1/invites/{id} [delete].
func (h *InviteRevokeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.InviteService.DeleteInvite(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
