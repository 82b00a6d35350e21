package http

import (
	"encoding/json"
	"net/http"

	"github.com/dwellhq/dwell/internal/invites/domain"
	"github.com/dwellhq/dwell/internal/invites/service"
	"github.com/dwellhq/dwell/pkg/dwellsdk"
	"github.com/dwellhq/dwell/pkg/httpx"
)

type UnitsHandler struct {
	UnitService *service.UnitService
}

// HandleCreate godoc
//
//	@Summary		Create Unit
//	@Description	Register a housing unit that invites can be minted against.
//	@Tags			Units
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dwellsdk.CreateUnitRequest	true	"Unit definition"
//	@Success		201		{object}	dwellsdk.UnitResponse		"id, name, created_at"
//	@Failure		400		{object}	dwellsdk.APIError			"code, message"
//	@Failure		401		{object}	dwellsdk.APIError			"code, message"
//	@Security		BearerAuth
//	@Router			/v1/units [post].
func (h *UnitsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dwellsdk.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dwellsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Name == "" {
		dwellsdk.NewAPIError(http.StatusBadRequest, dwellsdk.ErrorCodeInvalidRequest,
			"name is required").WriteError(w)
		return
	}

	unit, err := h.UnitService.CreateUnit(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, unitResponse(unit))
}

// HandleGet godoc
//
//	@Summary		Get Unit
//	@Description	Fetch a housing unit by id.
//	@Tags			Units
//	@Produce		json
//	@Param			id	path		string					true	"Unit ID"
//	@Success		200	{object}	dwellsdk.UnitResponse	"id, name, created_at"
//	@Failure		404	{object}	dwellsdk.APIError		"code, message"
//	@Security		BearerAuth
//	@Router			/v1/units/{id} [get].
func (h *UnitsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	unit, err := h.UnitService.GetUnit(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, unitResponse(unit))
}

func unitResponse(u domain.Unit) dwellsdk.UnitResponse {
	return dwellsdk.UnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Unix(),
	}
}
