package http

import (
	"net/http"

	"github.com/aussiebroadwan/trustgate/internal/trust/service"
	"github.com/aussiebroadwan/trustgate/pkg/httpx"
	"github.com/aussiebroadwan/trustgate/pkg/trustsdk"
)

type RolesHandler struct {
	Authorizer *service.Authorizer
}

// ServeHTTP lists the role hierarchy.
//
//	@Summary		List role levels
//	@Description	Returns every role with its level. Requires the admin role or higher.
//	@Tags			Roles
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	trustsdk.RolesResponse	"role name to level"
//	@Failure		401	{object}	trustsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	trustsdk.ErrorResponse	"Insufficient role"
//	@Router			/v1/roles [get].
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, trustsdk.RolesResponse{Roles: h.Authorizer.Levels()})
}
