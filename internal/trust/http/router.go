package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/internal/trust/service"
	"github.com/aussiebroadwan/trustgate/internal/trust/store"
	"github.com/aussiebroadwan/trustgate/pkg/httpx"
	"github.com/aussiebroadwan/trustgate/pkg/rolex"
	"github.com/aussiebroadwan/trustgate/pkg/slogx"

	_ "github.com/aussiebroadwan/trustgate/api/trust" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	core         *service.Core
	store        store.Store
	documents    store.Documents
	cookies      httpx.CookieConfig
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
}

func NewRouter(
	core *service.Core,
	st store.Store,
	docs store.Documents,
	cookies httpx.CookieConfig,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		core:         core,
		store:        st,
		documents:    docs,
		cookies:      cookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerAuth()
	r.registerRoles()
	r.registerDocuments()
	r.registerParams()
	r.registerPayments()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Trustgate API
//	@version		0.1.0
//	@description	Security primitives for the procurement backend: bearer credentials, role checks,
//	@description	obfuscated identifiers, encrypted parameters, signed download links and payment
//	@description	webhook verification.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/trustgate
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HMAC signed access token. Format: "Bearer {token}". The access_token cookie is also accepted.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticator validates access credentials. The returned error is the
// internal cause, which AuthnMiddleware only logs.
func (r *Router) authenticator() httpx.Authenticator {
	return httpx.AuthenticatorFunc(func(_ context.Context, token string) (httpx.Principal, error) {
		id, err := r.core.Credentials.ValidateAccess(token)
		if err != nil {
			return httpx.Principal{}, domain.CauseOf(err)
		}
		return httpx.Principal{
			SubjectID: id.SubjectID,
			Role:      id.Role,
			ExpiresAt: id.ExpiresAt,
			Extra:     id.Extra,
		}, nil
	})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.documents),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerAuth() {
	me := &MeHandler{Identifiers: r.core.Identifiers}
	logout := &LogoutHandler{Cookies: r.cookies}

	// GET /v1/auth/me - token inspection, lenient limit per subject
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(me,
			httpx.AuthnMiddleware(r.authenticator()),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)

	// POST /v1/auth/logout - clears cookies, works without a valid credential
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logout,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{Authorizer: r.core.Authorizer}

	r.Mux.Handle("GET /v1/roles",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.authenticator()),
			httpx.RequireRole(r.core.Authorizer, rolex.Hierarchical, rolex.Admin),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDocuments() {
	h := &DocumentsHandler{
		Identifiers:  r.core.Identifiers,
		Capabilities: r.core.Capabilities,
		Authorizer:   r.core.Authorizer,
		Documents:    r.documents,
	}

	r.Mux.Handle("GET /v1/documents",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.authenticator()),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)

	// Minting a link is an owner or admin operation
	r.Mux.Handle("POST /v1/documents/{id}/signed-url",
		httpx.Chain(http.HandlerFunc(h.HandleSignedURL),
			httpx.AuthnMiddleware(r.authenticator()),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)

	// The capability in the query is the only authorization. Limited per
	// document and client so one leaked link cannot be hammered.
	r.Mux.Handle("GET "+service.DocumentDownloadPrefix+"{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDownload),
			httpx.RateLimitMiddleware(httpx.LenientLimit,
				httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.PathValueKeyExtractor("id")),
			),
		),
	)
}

func (r *Router) registerParams() {
	h := &ParamsHandler{Params: r.core.Params}

	r.Mux.Handle("POST /v1/params/seal",
		httpx.Chain(http.HandlerFunc(h.HandleSeal),
			httpx.AuthnMiddleware(r.authenticator()),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/params/open",
		httpx.Chain(http.HandlerFunc(h.HandleOpen),
			httpx.AuthnMiddleware(r.authenticator()),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPayments() {
	h := &PaymentWebhookHandler{Payments: r.core.Payments}

	// Provider callback, strict limit since every request is a signature check
	r.Mux.Handle("POST /v1/payments/webhook",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}
