package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dwellhq/dwell/internal/invites/service"
	"github.com/dwellhq/dwell/internal/invites/store"
	"github.com/dwellhq/dwell/pkg/httpx"
	"github.com/dwellhq/dwell/pkg/jwtx"
	"github.com/dwellhq/dwell/pkg/slogx"

	_ "github.com/dwellhq/dwell/api/invites" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	UnitService   *service.UnitService
	InviteService *service.InviteService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUnits()
	r.registerInvites()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Dwell Invites Service API
//	@version		0.1.0
//	@description	Invite token management for housing units: minting, preview, and
//	@description	capacity-safe concurrent redemption. An invite with N remaining uses
//	@description	accepts exactly N concurrent redemptions.
//
//	@contact.name				Dwell Team
//	@contact.url				https://github.com/dwellhq/dwell
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUnits() {
	h := &UnitsHandler{UnitService: r.UnitService}

	// POST /v1/units - admin operation, moderate limit
	r.Mux.Handle("POST /v1/units",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /v1/units/{id} - admin read, lenient limit
	r.Mux.Handle("GET /v1/units/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:read", "invites:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerInvites() {
	createHandler := &InviteCreateHandler{InviteService: r.InviteService}
	listHandler := &InviteListHandler{InviteService: r.InviteService}
	statsHandler := &InviteStatsHandler{InviteService: r.InviteService}
	previewHandler := &InvitePreviewHandler{InviteService: r.InviteService}
	redeemHandler := &InviteRedeemHandler{InviteService: r.InviteService}
	revokeHandler := &InviteRevokeHandler{InviteService: r.InviteService}

	// POST /v1/units/{id}/invites - minting is privileged, moderate limit
	r.Mux.Handle("POST /v1/units/{id}/invites",
		httpx.Chain(createHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /v1/units/{id}/invites - listing, lenient limit
	r.Mux.Handle("GET /v1/units/{id}/invites",
		httpx.Chain(listHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /v1/units/{id}/invites/stats - rollup, lenient limit
	r.Mux.Handle("GET /v1/units/{id}/invites/stats",
		httpx.Chain(statsHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /v1/invites/preview - public token check, strict limit by IP to
	// slow token guessing
	r.Mux.Handle("GET /v1/invites/preview",
		httpx.Chain(previewHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/invites/redeem - any authenticated user, strict limit by IP
	r.Mux.Handle("POST /v1/invites/redeem",
		httpx.Chain(redeemHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/invites/{id}/revoke - privileged, moderate limit
	r.Mux.Handle("POST /v1/invites/{id}/revoke",
		httpx.Chain(http.HandlerFunc(revokeHandler.HandleRevoke),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// DELETE /v1/invites/{id} - privileged, moderate limit
	r.Mux.Handle("DELETE /v1/invites/{id}",
		httpx.Chain(http.HandlerFunc(revokeHandler.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
