package http

import (
	"net/http"

	"github.com/aussiebroadwan/trustgate/internal/trust/service"
	"github.com/aussiebroadwan/trustgate/pkg/httpx"
	"github.com/aussiebroadwan/trustgate/pkg/trustsdk"
)

type ParamsHandler struct {
	Params *service.ParamService
}

// HandleSeal encrypts a parameter payload.
//
//	@Summary		Seal parameters
//	@Description	Encrypts a JSON object into an opaque URL-safe token.
//	@Tags			Params
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		trustsdk.SealRequest	true	"Payload"
//	@Success		200		{object}	trustsdk.SealResponse	"Token"
//	@Failure		400		{object}	trustsdk.ErrorResponse	"Invalid request"
//	@Failure		401		{object}	trustsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/params/seal [post].
func (h *ParamsHandler) HandleSeal(w http.ResponseWriter, r *http.Request) {
	var req trustsdk.SealRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Payload == nil {
		trustsdk.NewAPIError(http.StatusBadRequest, trustsdk.ErrorCodeInvalidRequest, "payload is required").WriteError(w)
		return
	}

	token, err := h.Params.Seal(req.Payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, trustsdk.SealResponse{Token: token})
}

// HandleOpen decrypts a token produced by HandleSeal.
//
//	@Summary		Open parameters
//	@Description	Decrypts a token from /v1/params/seal. Any tampering yields the same error.
//	@Tags			Params
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		trustsdk.OpenRequest	true	"Token"
//	@Success		200		{object}	trustsdk.OpenResponse	"Payload"
//	@Failure		400		{object}	trustsdk.ErrorResponse	"Invalid request or decryption failed"
//	@Failure		401		{object}	trustsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/params/open [post].
func (h *ParamsHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	var req trustsdk.OpenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	payload, err := h.Params.Open(req.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, trustsdk.OpenResponse{Payload: payload})
}
