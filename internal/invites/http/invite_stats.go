package http

import (
	"net/http"

	"github.com/dwellhq/dwell/internal/invites/service"
	"github.com/dwellhq/dwell/pkg/dwellsdk"
	"github.com/dwellhq/dwell/pkg/httpx"
)

type InviteStatsHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Unit Invite Stats
//	@Description	Point-in-time rollup of a unit's invites and active residents. Computed in a single query so concurrent redemptions cannot tear the counts.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string						true	"Unit ID"
//	@Success		200	{object}	dwellsdk.UnitStatsResponse	"invite and resident counters"
//	@Failure		404	{object}	dwellsdk.APIError			"code, message"
//	@Security		BearerAuth
//	@Router			/v1/units/{id}/invites/stats [get].
func (h *InviteStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	unitID := r.PathValue("id")

	stats, residents, err := h.InviteService.UnitStats(r.Context(), unitID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dwellsdk.UnitStatsResponse{
		UnitID:           unitID,
		TotalInvites:     stats.Total,
		ActiveInvites:    stats.Active,
		ExpiredInvites:   stats.Expired,
		ExhaustedInvites: stats.Exhausted,
		TotalUses:        stats.TotalUses,
		ActiveResidents:  residents,
	})
}
