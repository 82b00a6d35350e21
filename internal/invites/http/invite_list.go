package http

import (
	"net/http"
	"strconv"

	"github.com/dwellhq/dwell/internal/invites/service"
	"github.com/dwellhq/dwell/pkg/dwellsdk"
	"github.com/dwellhq/dwell/pkg/httpx"
)

type InviteListHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		List Invites
//	@Description	List a unit's invites, newest first. Tokens are never included.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id		path		string	true	"Unit ID"
//	@Param			limit	query		int		false	"Page size (default 20, max 100)"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	dwellsdk.InviteListResponse	"invites, limit, offset"
//	@Failure		404		{object}	dwellsdk.APIError			"code, message"
//	@Security		BearerAuth
//	@Router			/v1/units/{id}/invites [get].
func (h *InviteListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	invites, err := h.InviteService.ListInvites(r.Context(), r.PathValue("id"), limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := dwellsdk.InviteListResponse{
		Invites: make([]dwellsdk.InviteResponse, 0, len(invites)),
		Limit:   limit,
		Offset:  offset,
	}
	for _, inv := range invites {
		resp.Invites = append(resp.Invites, inviteResponse(inv))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
