/*
Package dwellsdk provides a client SDK for the Dwell invites service.

# Overview

The SDK wraps the service's HTTP API: managing housing units, minting
invite tokens against them, and redeeming those tokens to take up
residency. Management operations require a bearer token; preview is
public.

Create a client and call operations directly:

	client := dwellsdk.NewSDKClient("https://invites.example.com")
	client.SetToken(accessToken)

	// Register a unit (requires admin:write)
	unit, err := client.CreateUnit(ctx, dwellsdk.CreateUnitRequest{Name: "Apartment 12"})

	// Mint an invite for it (requires invites:write)
	invite, err := client.CreateInvite(ctx, unit.ID, dwellsdk.CreateInviteRequest{
		TTLDays: 7,
		MaxUses: dwellsdk.Int64(5),
	})

	// Anyone holding the token can check it without consuming a use
	preview, err := client.PreviewInvite(ctx, invite.Token)

	// Redeem it (requires authentication; the caller becomes the resident)
	redeemed, err := client.RedeemInvite(ctx, dwellsdk.RedeemInviteRequest{Token: invite.Token})

# Error Handling

Failed requests return *APIError carrying the HTTP status and the
service's stable error code, so callers discriminate by code rather than
parsing message text:

	_, err := client.RedeemInvite(ctx, req)
	var apiErr *dwellsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == dwellsdk.ErrorCodeExhausted {
		// invite has no uses left
	}

# Concurrency

Redemption is safe to call from any number of clients at once: the
service guarantees an invite with N remaining uses accepts exactly N
concurrent redemptions. Losers of a capacity race receive
ErrorCodeExhausted; callers hitting contention timeouts receive
ErrorCodeUnavailable and may retry.
*/
package dwellsdk
