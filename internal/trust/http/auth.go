package http

import (
	"net/http"

	"github.com/aussiebroadwan/trustgate/internal/trust/service"
	"github.com/aussiebroadwan/trustgate/pkg/httpx"
	"github.com/aussiebroadwan/trustgate/pkg/trustsdk"
)

type MeHandler struct {
	Identifiers *service.IdentifierService
}

// ServeHTTP describes the caller's credential.
//
//	@Summary		Inspect the current credential
//	@Description	Returns the obfuscated subject id, role and expiry of the presented access token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	trustsdk.MeResponse		"id, role, expires_at"
//	@Failure		401	{object}	trustsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.PrincipalFrom(r.Context())
	if !ok {
		trustsdk.ErrInvalidToken.WriteError(w)
		return
	}

	publicID, err := h.Identifiers.Encode(p.SubjectID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, trustsdk.MeResponse{
		ID:        publicID,
		Role:      p.Role.String(),
		ExpiresAt: p.ExpiresAt.UTC(),
	})
}

type LogoutHandler struct {
	Cookies httpx.CookieConfig
}

// ServeHTTP expires the auth cookies.
//
//	@Summary		Log out
//	@Description	Expires the access_token and refresh_token cookies. Bearer tokens stay valid until they expire.
//	@Tags			Auth
//	@Success		204	"Cookies cleared"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.ClearAuthCookies(w, h.Cookies)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
