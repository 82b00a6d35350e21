package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dwellhq/dwell/internal/invites/service"
	"github.com/dwellhq/dwell/pkg/dwellsdk"
	"github.com/dwellhq/dwell/pkg/slogx"
)

// writeServiceError maps service-layer errors onto the API error
// envelope. Redemption outcomes get distinct codes so clients can tell a
// lost capacity race (terminal) from contention (retryable).
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInviteRequest),
		errors.Is(err, service.ErrInvalidUnitRequest):
		dwellsdk.ErrInvalidRequest.WriteError(w)

	case errors.Is(err, service.ErrUnitNotFound):
		dwellsdk.NewAPIError(http.StatusNotFound, dwellsdk.ErrorCodeNotFound,
			"unit not found").WriteError(w)

	case errors.Is(err, service.ErrInviteNotFound):
		dwellsdk.NewAPIError(http.StatusNotFound, dwellsdk.ErrorCodeNotFound,
			"invite not found").WriteError(w)

	case errors.Is(err, service.ErrInviteInactive):
		dwellsdk.NewAPIError(http.StatusGone, dwellsdk.ErrorCodeInactive,
			"invite has been revoked").WriteError(w)

	case errors.Is(err, service.ErrInviteExpired):
		dwellsdk.NewAPIError(http.StatusGone, dwellsdk.ErrorCodeExpired,
			"invite has expired").WriteError(w)

	case errors.Is(err, service.ErrInviteExhausted):
		dwellsdk.NewAPIError(http.StatusConflict, dwellsdk.ErrorCodeExhausted,
			"invite has no uses remaining").WriteError(w)

	case errors.Is(err, service.ErrAlreadyResident):
		dwellsdk.NewAPIError(http.StatusConflict, dwellsdk.ErrorCodeAlreadyResident,
			"user is already a resident of this unit").WriteError(w)

	case errors.Is(err, service.ErrStoreBusy),
		errors.Is(err, context.DeadlineExceeded):
		dwellsdk.ErrUnavailable.WriteError(w)

	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		dwellsdk.ErrServerError.WriteError(w)
	}
}
